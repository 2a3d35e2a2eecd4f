package indicator

import "math"

// OBV computes the on-balance volume: a cumulative sum starting at 0 that
// adds the bar's volume on an up-close, subtracts it on a down-close, and is
// unchanged on a flat close.
func OBV(close, volume []float64) []float64 {
	if len(close) == 0 || len(volume) != len(close) {
		return nil
	}
	out := make([]float64, len(close))
	out[0] = 0
	for i := 1; i < len(close); i++ {
		switch {
		case close[i] > close[i-1]:
			out[i] = out[i-1] + volume[i]
		case close[i] < close[i-1]:
			out[i] = out[i-1] - volume[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// ATR computes the average true range as SMA(period) over the true-range
// series. The first bar's true range is high-low only, since there is no
// previous close.
func ATR(high, low, close []float64, period int) []float64 {
	n := len(close)
	if period <= 0 || n < period || len(high) != n || len(low) != n {
		return nil
	}
	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		if i == 0 {
			tr[i] = high[i] - low[i]
			continue
		}
		t := high[i] - low[i]
		if v := math.Abs(high[i] - close[i-1]); v > t {
			t = v
		}
		if v := math.Abs(low[i] - close[i-1]); v > t {
			t = v
		}
		tr[i] = t
	}
	return SMA(tr, period)
}
