// Package alert holds the in-memory alert-rule registry: validated CRUD plus
// the trigger bookkeeping the monitor engine records against.
package alert

import (
	"fmt"

	"StockSentry/internal/model"
)

// Validate checks that a rule submission carries every field its indicator
// kind and condition require. A rule failing validation is rejected at
// registration time and never enters the store.
func Validate(r *model.AlertRule) error {
	if r.Symbol == "" {
		return fmt.Errorf("rule validation: symbol is required")
	}
	if !r.Indicator.Kind.Valid() {
		return fmt.Errorf("rule validation: unknown indicator kind %q", r.Indicator.Kind)
	}
	if !r.Condition.Valid() {
		return fmt.Errorf("rule validation: unknown condition %q", r.Condition)
	}

	switch r.Indicator.Kind {
	case model.KindMA, model.KindEMA, model.KindMAProximity:
		if r.Indicator.Period <= 0 {
			return fmt.Errorf("rule validation: %s requires a positive period", r.Indicator.Kind)
		}
	case model.KindMAConvergence:
		for _, p := range r.Indicator.Periods {
			if p <= 0 {
				return fmt.Errorf("rule validation: %s periods must be positive", r.Indicator.Kind)
			}
		}
	case model.KindRSI, model.KindKDJ, model.KindBOLL:
		if r.Indicator.Period < 0 {
			return fmt.Errorf("rule validation: %s period must not be negative", r.Indicator.Kind)
		}
	case model.KindMACD, model.KindPrice, model.KindVolume:
		// No period required.
	}

	switch r.Condition {
	case model.CondAbove, model.CondBelow:
		if !r.HasTarget {
			return fmt.Errorf("rule validation: %s requires a target value", r.Condition)
		}
	case model.CondEqual, model.CondPercentChange:
		if r.Indicator.Kind != model.KindPrice {
			return fmt.Errorf("rule validation: %s applies to PRICE rules only", r.Condition)
		}
		if !r.HasTarget {
			return fmt.Errorf("rule validation: %s requires a target value", r.Condition)
		}
	case model.CondCrossAbove, model.CondCrossBelow:
		// Overlay indicators cross the price line itself; everything else
		// needs an explicit level to cross.
		if !r.HasTarget && !r.Indicator.Kind.Overlay() {
			return fmt.Errorf("rule validation: %s on %s requires a target value", r.Condition, r.Indicator.Kind)
		}
	case model.CondConverging, model.CondDiverging:
		if r.Indicator.Kind != model.KindMAConvergence {
			return fmt.Errorf("rule validation: %s applies to MA_CONVERGENCE rules only", r.Condition)
		}
	case model.CondNear, model.CondWithinRange:
		if r.Indicator.Kind != model.KindMAProximity {
			return fmt.Errorf("rule validation: %s applies to MA_PROXIMITY rules only", r.Condition)
		}
	}
	return nil
}
