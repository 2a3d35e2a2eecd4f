package indicator

import "math"

// BollingerSeries holds the three Bollinger bands, aligned to the input.
type BollingerSeries struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// BollingerBands computes the middle band as SMA(period) and the upper/lower
// bands at k population standard deviations (divide by period, not period-1)
// over the same trailing window.
func BollingerBands(data []float64, period int, k float64) BollingerSeries {
	middle := SMA(data, period)
	if middle == nil {
		return BollingerSeries{}
	}
	upper := make([]float64, len(data))
	lower := make([]float64, len(data))
	for i := range data {
		if i < period-1 {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		mean := middle[i]
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := data[j] - mean
			variance += diff * diff
		}
		stddev := math.Sqrt(variance / float64(period))
		upper[i] = mean + k*stddev
		lower[i] = mean - k*stddev
	}
	return BollingerSeries{Middle: middle, Upper: upper, Lower: lower}
}
