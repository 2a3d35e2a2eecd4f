package indicator

import "StockSentry/internal/model"

// Default parameters applied when a rule omits them, matching the common
// charting conventions the rest of this package documents.
const (
	DefaultRSIPeriod           = 14
	DefaultKDJPeriod           = 9
	DefaultMACDFast            = 12
	DefaultMACDSlow            = 26
	DefaultMACDSignal          = 9
	DefaultBollingerPeriod     = 20
	DefaultBollingerK          = 2.0
	DefaultConvergenceLimit    = 2.0
	DefaultProximityThresholdP = 2.0
)

// DefaultConvergencePeriods is the MA set used when a convergence rule does
// not name its own periods.
var DefaultConvergencePeriods = []int{5, 10, 20}

// LatestValue computes the most recent value of the indicator described by
// spec over the given bars. The dispatch over indicator kinds is exhaustive;
// ok is false when the series is too short for the indicator's warm-up
// window or the spec is incomplete for its kind.
func LatestValue(bars []model.OHLCV, spec model.IndicatorSpec) (value float64, ok bool) {
	if len(bars) == 0 {
		return 0, false
	}
	closes := model.Closes(bars)

	switch spec.Kind {
	case model.KindMA:
		if spec.Period <= 0 {
			return 0, false
		}
		return lastDefined(SMA(closes, spec.Period))

	case model.KindEMA:
		if spec.Period <= 0 {
			return 0, false
		}
		return lastDefined(EMA(closes, spec.Period))

	case model.KindRSI:
		period := spec.Period
		if period <= 0 {
			period = DefaultRSIPeriod
		}
		return lastDefined(RSI(closes, period))

	case model.KindMACD:
		series := MACD(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
		return lastDefined(series.Histogram)

	case model.KindBOLL:
		period := spec.Period
		if period <= 0 {
			period = DefaultBollingerPeriod
		}
		bands := BollingerBands(closes, period, DefaultBollingerK)
		return lastDefined(bands.Middle)

	case model.KindKDJ:
		period := spec.Period
		if period <= 0 {
			period = DefaultKDJPeriod
		}
		series := KDJ(model.Highs(bars), model.Lows(bars), closes, period)
		return lastDefined(series.K)

	case model.KindPrice:
		return closes[len(closes)-1], true

	case model.KindVolume:
		return bars[len(bars)-1].Volume, true

	case model.KindMAConvergence:
		periods := spec.Periods
		if len(periods) == 0 {
			periods = DefaultConvergencePeriods
		}
		threshold := spec.Threshold
		if threshold <= 0 {
			threshold = DefaultConvergenceLimit
		}
		conv, found := LatestConvergence(closes, periods, threshold)
		if !found {
			return 0, false
		}
		return conv.Ratio, true

	case model.KindMAProximity:
		if spec.Period <= 0 {
			return 0, false
		}
		maValue, found := lastDefined(SMA(closes, spec.Period))
		if !found {
			return 0, false
		}
		threshold := spec.Threshold
		if threshold <= 0 {
			threshold = DefaultProximityThresholdP
		}
		return MAProximity(closes[len(closes)-1], maValue, threshold).Distance, true
	}
	return 0, false
}

func lastDefined(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	v := series[len(series)-1]
	if !Defined(v) {
		return 0, false
	}
	return v, true
}
