package indicator

import "math"

// KDJSeries holds the K, D and J lines, aligned to the input.
type KDJSeries struct {
	K []float64
	D []float64
	J []float64
}

// KDJ computes the stochastic K/D/J lines. RSV is the position of the close
// within the trailing period's high/low range, defined as 50 when the range
// is zero. K and D are 1/3-weighted smoothings seeded at 50; J = 3K - 2D.
func KDJ(high, low, close []float64, period int) KDJSeries {
	n := len(close)
	if period <= 0 || n < period || len(high) != n || len(low) != n {
		return KDJSeries{}
	}
	k := make([]float64, n)
	d := make([]float64, n)
	j := make([]float64, n)

	prevK, prevD := 50.0, 50.0
	for i := 0; i < n; i++ {
		if i < period-1 {
			k[i] = math.NaN()
			d[i] = math.NaN()
			j[i] = math.NaN()
			continue
		}
		highest := high[i-period+1]
		lowest := low[i-period+1]
		for m := i - period + 2; m <= i; m++ {
			if high[m] > highest {
				highest = high[m]
			}
			if low[m] < lowest {
				lowest = low[m]
			}
		}
		rsv := 50.0
		if highest != lowest {
			rsv = (close[i] - lowest) / (highest - lowest) * 100
		}
		kv := (2.0/3.0)*prevK + (1.0/3.0)*rsv
		dv := (2.0/3.0)*prevD + (1.0/3.0)*kv
		k[i] = kv
		d[i] = dv
		j[i] = 3*kv - 2*dv
		prevK, prevD = kv, dv
	}
	return KDJSeries{K: k, D: d, J: j}
}

// WilliamsR computes Williams %R over a trailing period, defined as -50 when
// the high/low range is zero. Values lie in [-100, 0].
func WilliamsR(high, low, close []float64, period int) []float64 {
	n := len(close)
	if period <= 0 || n < period || len(high) != n || len(low) != n {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		highest := high[i-period+1]
		lowest := low[i-period+1]
		for m := i - period + 2; m <= i; m++ {
			if high[m] > highest {
				highest = high[m]
			}
			if low[m] < lowest {
				lowest = low[m]
			}
		}
		if highest == lowest {
			out[i] = -50
		} else {
			out[i] = (highest - close[i]) / (highest - lowest) * -100
		}
	}
	return out
}
