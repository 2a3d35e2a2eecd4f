package indicator

// Convergence describes how tightly a set of moving averages is bunched at
// one point in time.
type Convergence struct {
	Ratio      float64 // (max - min) / mean * 100
	Converging bool    // Ratio <= threshold (boundary inclusive)
	MAValues   []float64
}

// MAConvergence computes the convergence state of several SMAs per aligned
// index. The output is aligned to the suffix of the input where every MA is
// defined, i.e. it has len(data) - max(periods) + 1 entries.
func MAConvergence(data []float64, periods []int, threshold float64) []Convergence {
	if len(periods) == 0 {
		return nil
	}
	maxPeriod := periods[0]
	for _, p := range periods[1:] {
		if p > maxPeriod {
			maxPeriod = p
		}
	}
	if maxPeriod <= 0 || len(data) < maxPeriod {
		return nil
	}

	mas := make([][]float64, len(periods))
	for i, p := range periods {
		mas[i] = SMA(data, p)
		if mas[i] == nil {
			return nil
		}
	}

	out := make([]Convergence, 0, len(data)-maxPeriod+1)
	for i := maxPeriod - 1; i < len(data); i++ {
		values := make([]float64, len(mas))
		maxMA, minMA, sum := mas[0][i], mas[0][i], 0.0
		for m, ma := range mas {
			v := ma[i]
			values[m] = v
			sum += v
			if v > maxMA {
				maxMA = v
			}
			if v < minMA {
				minMA = v
			}
		}
		mean := sum / float64(len(mas))
		ratio := (maxMA - minMA) / mean * 100
		out = append(out, Convergence{
			Ratio:      ratio,
			Converging: ratio <= threshold,
			MAValues:   values,
		})
	}
	return out
}

// LatestConvergence returns the most recent convergence state, or false when
// there is not enough data.
func LatestConvergence(data []float64, periods []int, threshold float64) (Convergence, bool) {
	series := MAConvergence(data, periods, threshold)
	if len(series) == 0 {
		return Convergence{}, false
	}
	return series[len(series)-1], true
}

// Direction is the position of a price relative to a moving average.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
	DirectionOn    Direction = "on"
)

// Proximity describes how close a price sits to a moving average.
type Proximity struct {
	Distance    float64 // percent distance from the MA
	Near        bool    // Distance <= threshold
	WithinRange bool    // Distance <= threshold/2
	Direction   Direction
}

// MAProximity measures the percent distance between a price and an MA value.
func MAProximity(price, maValue, threshold float64) Proximity {
	distance := abs((price-maValue)/maValue) * 100
	dir := DirectionOn
	if price > maValue {
		dir = DirectionAbove
	} else if price < maValue {
		dir = DirectionBelow
	}
	return Proximity{
		Distance:    distance,
		Near:        distance <= threshold,
		WithinRange: distance <= threshold/2,
		Direction:   dir,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Crossover reports whether a value crossed the target between two
// observations. The crossing is strict on both sides: a previous value
// sitting exactly on the target does not count as having crossed.
func Crossover(previous, current, target float64, dir Direction) bool {
	switch dir {
	case DirectionAbove:
		return previous < target && current > target
	case DirectionBelow:
		return previous > target && current < target
	default:
		return false
	}
}
