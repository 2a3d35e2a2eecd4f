package engine

import (
	"context"
	"log"
	"math"

	"StockSentry/internal/indicator"
	"StockSentry/internal/model"
)

// equalToleranceP is the percent-of-target tolerance for EQUAL price rules.
const equalToleranceP = 0.001

// evaluate decides whether a rule matches at the current quote. The returned
// indicatorValue is the number the trigger reports (price for price rules,
// the computed indicator otherwise). A rule that cannot be evaluated this
// cycle — missing history, warm-up too short — simply does not match.
func (e *Engine) evaluate(ctx context.Context, rule model.AlertRule, quote model.Quote) (matched bool, indicatorValue float64) {
	if rule.Indicator.Kind == model.KindPrice {
		return e.evaluatePrice(rule, quote)
	}

	bars := e.provider.GetHistory(ctx, rule.Symbol, e.cfg.HistoryRange)
	if len(bars) == 0 {
		log.Printf("[WARN] no history for %s, skipping rule %s", rule.Symbol, rule.ID)
		return false, 0
	}
	bars = model.PatchLastBar(bars, quote.Price)

	switch rule.Condition {
	case model.CondAbove, model.CondBelow:
		value, ok := indicator.LatestValue(bars, rule.Indicator)
		if !ok {
			return false, 0
		}
		// Remember the value even for stateless conditions so a later
		// crossover rule edit starts from a real observation.
		e.memory.Swap(rule.Indicator.Key(rule.Symbol), value)
		if rule.Condition == model.CondAbove {
			return value > rule.TargetValue, value
		}
		return value < rule.TargetValue, value

	case model.CondCrossAbove, model.CondCrossBelow:
		return e.evaluateCross(rule, quote, bars)

	case model.CondConverging, model.CondDiverging:
		return e.evaluateConvergence(rule, bars)

	case model.CondNear, model.CondWithinRange:
		return e.evaluateProximity(rule, quote, bars)
	}
	return false, 0
}

// evaluatePrice handles rules on the raw live price; no history is fetched.
func (e *Engine) evaluatePrice(rule model.AlertRule, quote model.Quote) (bool, float64) {
	price := quote.Price

	switch rule.Condition {
	case model.CondAbove:
		return price > rule.TargetValue, price

	case model.CondBelow:
		return price < rule.TargetValue, price

	case model.CondEqual:
		return math.Abs(price-rule.TargetValue) <= math.Abs(rule.TargetValue)*equalToleranceP, price

	case model.CondPercentChange:
		if quote.Open <= 0 {
			return false, price
		}
		change := math.Abs(price-quote.Open) / quote.Open * 100
		return change >= rule.TargetValue, change

	case model.CondCrossAbove, model.CondCrossBelow:
		previous, seen := e.memory.Swap(rule.Indicator.Key(rule.Symbol), price)
		if !seen {
			return false, price // cold start: observe, never fire
		}
		return indicator.Crossover(previous, price, rule.TargetValue, crossDirection(rule.Condition)), price
	}
	return false, price
}

// evaluateCross handles CROSS_ABOVE / CROSS_BELOW on an indicator. Two
// shapes exist: with a target the indicator itself crosses the target level;
// without one, on an overlay indicator, the live price crosses the
// indicator line.
func (e *Engine) evaluateCross(rule model.AlertRule, quote model.Quote, bars []model.OHLCV) (bool, float64) {
	dir := crossDirection(rule.Condition)
	value, ok := indicator.LatestValue(bars, rule.Indicator)
	if !ok {
		return false, 0
	}

	if rule.HasTarget {
		previous, seen := e.memory.Swap(rule.Indicator.Key(rule.Symbol), value)
		if !seen {
			return false, value
		}
		return indicator.Crossover(previous, value, rule.TargetValue, dir), value
	}

	// Overlay form: the moving line is the target, the price is the mover.
	previous, seen := e.memory.Swap("price_"+rule.Indicator.Key(rule.Symbol), quote.Price)
	if !seen {
		return false, value
	}
	return indicator.Crossover(previous, quote.Price, value, dir), value
}

// evaluateConvergence fires CONVERGING on the transition into the bunched
// state and DIVERGING on the transition out of it, never on a steady state.
func (e *Engine) evaluateConvergence(rule model.AlertRule, bars []model.OHLCV) (bool, float64) {
	periods := rule.Indicator.Periods
	if len(periods) == 0 {
		periods = indicator.DefaultConvergencePeriods
	}
	threshold := rule.Indicator.Threshold
	if threshold <= 0 {
		threshold = indicator.DefaultConvergenceLimit
	}

	conv, found := indicator.LatestConvergence(model.Closes(bars), periods, threshold)
	if !found {
		return false, 0
	}

	previous, seen := e.memory.SwapState(rule.Indicator.Key(rule.Symbol), conv.Converging)
	if !seen {
		return false, conv.Ratio // cold start: observe, never fire
	}
	if rule.Condition == model.CondConverging {
		return !previous && conv.Converging, conv.Ratio
	}
	return previous && !conv.Converging, conv.Ratio
}

// evaluateProximity handles NEAR and WITHIN_RANGE against the rule's MA.
// Both are stateless: they describe where the price sits right now.
func (e *Engine) evaluateProximity(rule model.AlertRule, quote model.Quote, bars []model.OHLCV) (bool, float64) {
	maValue, ok := indicator.LatestValue(bars, model.IndicatorSpec{Kind: model.KindMA, Period: rule.Indicator.Period})
	if !ok {
		return false, 0
	}
	threshold := rule.Indicator.Threshold
	if threshold <= 0 {
		threshold = indicator.DefaultProximityThresholdP
	}
	prox := indicator.MAProximity(quote.Price, maValue, threshold)
	if rule.Condition == model.CondNear {
		return prox.Near, prox.Distance
	}
	return prox.WithinRange, prox.Distance
}

func crossDirection(c model.Condition) indicator.Direction {
	if c == model.CondCrossAbove {
		return indicator.DirectionAbove
	}
	return indicator.DirectionBelow
}
