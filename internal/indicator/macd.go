package indicator

import "math"

// MACDSeries holds the three MACD lines, aligned to the input series.
type MACDSeries struct {
	DIF       []float64
	DEA       []float64
	Histogram []float64
}

// MACD computes DIF = EMA(fast) - EMA(slow), DEA = EMA of the DIF
// subsequence, and histogram = (DIF - DEA) * 2. The DEA is seeded with the
// first DIF value rather than a windowed average; this deliberately differs
// from the EMA warm-up seed and must not be "fixed", since all downstream
// values depend on it. Produces no output unless len(data) >= slow + signal.
func MACD(data []float64, fast, slow, signal int) MACDSeries {
	if fast <= 0 || slow <= fast || signal <= 0 || len(data) < slow+signal {
		return MACDSeries{}
	}
	fastEMA := EMA(data, fast)
	slowEMA := EMA(data, slow)

	dif := make([]float64, len(data))
	dea := make([]float64, len(data))
	hist := make([]float64, len(data))
	for i := 0; i < slow-1; i++ {
		dif[i] = math.NaN()
		dea[i] = math.NaN()
		hist[i] = math.NaN()
	}

	multiplier := 2.0 / float64(signal+1)
	var prevDEA float64
	for i := slow - 1; i < len(data); i++ {
		d := fastEMA[i] - slowEMA[i]
		dif[i] = d
		if i == slow-1 {
			prevDEA = d
		} else {
			prevDEA = (d-prevDEA)*multiplier + prevDEA
		}
		dea[i] = prevDEA
		hist[i] = (d - prevDEA) * 2
	}
	return MACDSeries{DIF: dif, DEA: dea, Histogram: hist}
}
