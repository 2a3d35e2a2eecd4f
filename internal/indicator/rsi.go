package indicator

import "math"

// RSI computes the Wilder-smoothed relative strength index. The seed average
// gain/loss is a simple mean over the first period deltas, so the first
// defined value sits at index period. When the average loss is zero the RSI
// is defined as 100; the division is special-cased, not left to IEEE
// infinity propagation.
func RSI(data []float64, period int) []float64 {
	if period <= 0 || len(data) < period+1 {
		return nil
	}
	out := make([]float64, len(data))
	for i := 0; i < period; i++ {
		out[i] = math.NaN()
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := data[i] - data[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(data); i++ {
		change := data[i] - data[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
