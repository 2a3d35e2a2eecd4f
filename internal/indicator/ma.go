// Package indicator holds the pure technical-indicator math. Every function
// is deterministic and side-effect free: it returns a series aligned to its
// input, with math.NaN() marking entries inside the warm-up window. Degenerate
// input (empty series, period longer than the series) yields a nil result,
// never a panic.
package indicator

import "math"

// Undefined is the warm-up placeholder value.
func Undefined() float64 { return math.NaN() }

// Defined reports whether v is an actual indicator value rather than a
// warm-up placeholder.
func Defined(v float64) bool { return !math.IsNaN(v) }

// SMA computes the simple moving average over a trailing window.
// The first period-1 entries are undefined.
func SMA(data []float64, period int) []float64 {
	if period <= 0 || len(data) < period {
		return nil
	}
	out := make([]float64, len(data))
	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= period {
			sum -= data[i-period]
		}
		if i < period-1 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the exponential moving average with multiplier 2/(period+1).
// The seed at index period-1 is the running simple average of the first
// period values; earlier entries are undefined.
func EMA(data []float64, period int) []float64 {
	if period <= 0 || len(data) < period {
		return nil
	}
	out := make([]float64, len(data))
	multiplier := 2.0 / float64(period+1)

	// Warm-up: incremental simple average over the first period values.
	ema := data[0]
	for i := 1; i < period; i++ {
		ema = (ema*float64(i) + data[i]) / float64(i+1)
	}
	for i := 0; i < period-1; i++ {
		out[i] = math.NaN()
	}
	out[period-1] = ema

	for i := period; i < len(data); i++ {
		ema = (data[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}
