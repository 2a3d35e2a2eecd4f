package engine

import (
	"fmt"
	"strconv"
	"strings"

	"StockSentry/internal/indicator"
	"StockSentry/internal/model"
)

// buildMessage renders the human-readable trigger line. Every message names
// the symbol and the current price.
func buildMessage(rule model.AlertRule, quote model.Quote, indicatorValue float64) string {
	label := describeIndicator(rule.Indicator)
	price := quote.Price

	switch rule.Condition {
	case model.CondAbove:
		if rule.Indicator.Kind == model.KindPrice {
			return fmt.Sprintf("🔥 %s price $%.2f is above $%.2f", rule.Symbol, price, rule.TargetValue)
		}
		return fmt.Sprintf("🔥 %s %s %.2f is above %.2f (price $%.2f)", rule.Symbol, label, indicatorValue, rule.TargetValue, price)

	case model.CondBelow:
		if rule.Indicator.Kind == model.KindPrice {
			return fmt.Sprintf("📉 %s price $%.2f is below $%.2f", rule.Symbol, price, rule.TargetValue)
		}
		return fmt.Sprintf("📉 %s %s %.2f is below %.2f (price $%.2f)", rule.Symbol, label, indicatorValue, rule.TargetValue, price)

	case model.CondCrossAbove:
		if rule.Indicator.Kind == model.KindPrice || !rule.HasTarget {
			return fmt.Sprintf("🚀 %s price $%.2f crossed above %s", rule.Symbol, price, crossTargetLabel(rule, label, indicatorValue))
		}
		return fmt.Sprintf("🚀 %s %s crossed above %.2f (price $%.2f)", rule.Symbol, label, rule.TargetValue, price)

	case model.CondCrossBelow:
		if rule.Indicator.Kind == model.KindPrice || !rule.HasTarget {
			return fmt.Sprintf("⚠️ %s price $%.2f crossed below %s", rule.Symbol, price, crossTargetLabel(rule, label, indicatorValue))
		}
		return fmt.Sprintf("⚠️ %s %s crossed below %.2f (price $%.2f)", rule.Symbol, label, rule.TargetValue, price)

	case model.CondEqual:
		return fmt.Sprintf("🎯 %s price $%.2f reached the $%.2f target", rule.Symbol, price, rule.TargetValue)

	case model.CondPercentChange:
		return fmt.Sprintf("⚡ %s price $%.2f moved %.1f%% from today's open", rule.Symbol, price, indicatorValue)

	case model.CondConverging:
		return fmt.Sprintf("🎯 %s %s converged to %.2f%% (price $%.2f)", rule.Symbol, label, indicatorValue, price)

	case model.CondDiverging:
		return fmt.Sprintf("💥 %s %s diverging, spread %.2f%% (price $%.2f)", rule.Symbol, label, indicatorValue, price)

	case model.CondNear:
		return fmt.Sprintf("📍 %s price $%.2f is %.2f%% from %s", rule.Symbol, price, indicatorValue, label)

	case model.CondWithinRange:
		return fmt.Sprintf("📊 %s price $%.2f holding within %.2f%% of %s", rule.Symbol, price, indicatorValue, label)
	}
	return fmt.Sprintf("%s %s %s at price $%.2f", rule.Symbol, label, rule.Condition, price)
}

// crossTargetLabel names what the price crossed: a plain dollar level for
// price rules, the indicator line for overlay rules.
func crossTargetLabel(rule model.AlertRule, label string, indicatorValue float64) string {
	if rule.Indicator.Kind == model.KindPrice {
		return fmt.Sprintf("$%.2f", rule.TargetValue)
	}
	return fmt.Sprintf("%s (%.2f)", label, indicatorValue)
}

// describeIndicator renders an indicator spec the way charting tools name it.
func describeIndicator(spec model.IndicatorSpec) string {
	switch spec.Kind {
	case model.KindMA:
		return fmt.Sprintf("MA%d", spec.Period)
	case model.KindEMA:
		return fmt.Sprintf("EMA%d", spec.Period)
	case model.KindRSI:
		return fmt.Sprintf("RSI(%d)", periodOr(spec.Period, indicator.DefaultRSIPeriod))
	case model.KindMACD:
		return "MACD"
	case model.KindBOLL:
		return fmt.Sprintf("BOLL(%d)", periodOr(spec.Period, indicator.DefaultBollingerPeriod))
	case model.KindKDJ:
		return fmt.Sprintf("KDJ(%d)", periodOr(spec.Period, indicator.DefaultKDJPeriod))
	case model.KindPrice:
		return "price"
	case model.KindVolume:
		return "volume"
	case model.KindMAConvergence:
		periods := spec.Periods
		if len(periods) == 0 {
			periods = indicator.DefaultConvergencePeriods
		}
		parts := make([]string, len(periods))
		for i, p := range periods {
			parts[i] = strconv.Itoa(p)
		}
		return fmt.Sprintf("MA(%s)", strings.Join(parts, ","))
	case model.KindMAProximity:
		return fmt.Sprintf("MA%d", spec.Period)
	}
	return string(spec.Kind)
}

func periodOr(p, fallback int) int {
	if p > 0 {
		return p
	}
	return fallback
}
