package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IndicatorKind enumerates the indicators a rule can watch.
type IndicatorKind string

const (
	KindMA            IndicatorKind = "MA"
	KindEMA           IndicatorKind = "EMA"
	KindRSI           IndicatorKind = "RSI"
	KindMACD          IndicatorKind = "MACD"
	KindBOLL          IndicatorKind = "BOLL"
	KindKDJ           IndicatorKind = "KDJ"
	KindPrice         IndicatorKind = "PRICE"
	KindVolume        IndicatorKind = "VOLUME"
	KindMAConvergence IndicatorKind = "MA_CONVERGENCE"
	KindMAProximity   IndicatorKind = "MA_PROXIMITY"
)

// Valid reports whether k is one of the enumerated kinds.
func (k IndicatorKind) Valid() bool {
	switch k {
	case KindMA, KindEMA, KindRSI, KindMACD, KindBOLL, KindKDJ,
		KindPrice, KindVolume, KindMAConvergence, KindMAProximity:
		return true
	}
	return false
}

// Overlay reports whether the indicator is drawn on the price axis,
// i.e. the live price crossing it is meaningful.
func (k IndicatorKind) Overlay() bool {
	return k == KindMA || k == KindEMA || k == KindBOLL
}

// Condition enumerates the trigger conditions a rule can use.
type Condition string

const (
	CondAbove         Condition = "ABOVE"
	CondBelow         Condition = "BELOW"
	CondCrossAbove    Condition = "CROSS_ABOVE"
	CondCrossBelow    Condition = "CROSS_BELOW"
	CondEqual         Condition = "EQUAL"
	CondPercentChange Condition = "PERCENT_CHANGE"
	CondConverging    Condition = "CONVERGING"
	CondDiverging     Condition = "DIVERGING"
	CondNear          Condition = "NEAR"
	CondWithinRange   Condition = "WITHIN_RANGE"
)

// Valid reports whether c is one of the enumerated conditions.
func (c Condition) Valid() bool {
	switch c {
	case CondAbove, CondBelow, CondCrossAbove, CondCrossBelow, CondEqual,
		CondPercentChange, CondConverging, CondDiverging, CondNear, CondWithinRange:
		return true
	}
	return false
}

// IndicatorSpec configures which indicator a rule watches.
type IndicatorSpec struct {
	Kind      IndicatorKind `json:"kind" yaml:"kind"`
	Period    int           `json:"period,omitempty" yaml:"period,omitempty"`
	Periods   []int         `json:"periods,omitempty" yaml:"periods,omitempty"`
	Threshold float64       `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// Key returns a stable identifier for the spec, used to key previous-value
// memory per (symbol, kind, period spec).
func (s IndicatorSpec) Key(symbol string) string {
	if len(s.Periods) > 0 {
		parts := make([]string, len(s.Periods))
		for i, p := range s.Periods {
			parts[i] = strconv.Itoa(p)
		}
		return fmt.Sprintf("%s_%s_%s", symbol, s.Kind, strings.Join(parts, "_"))
	}
	return fmt.Sprintf("%s_%s_%d", symbol, s.Kind, s.Period)
}

// AlertRule is a user-defined trigger condition on one symbol.
type AlertRule struct {
	ID            string        `json:"id" yaml:"id"`
	Symbol        string        `json:"symbol" yaml:"symbol"`
	Name          string        `json:"name,omitempty" yaml:"name,omitempty"`
	Indicator     IndicatorSpec `json:"indicator" yaml:"indicator"`
	Condition     Condition     `json:"condition" yaml:"condition"`
	TargetValue   float64       `json:"targetValue,omitempty" yaml:"targetValue,omitempty"`
	HasTarget     bool          `json:"hasTarget" yaml:"hasTarget"`
	Active        bool          `json:"active" yaml:"active"`
	CreatedAt     time.Time     `json:"createdAt" yaml:"createdAt,omitempty"`
	LastTriggered time.Time     `json:"lastTriggered,omitempty" yaml:"lastTriggered,omitempty"`
	TriggerCount  int           `json:"triggerCount" yaml:"triggerCount,omitempty"`
}

// AlertTrigger is the event emitted when a rule fires.
type AlertTrigger struct {
	AlertID        string
	Symbol         string
	CurrentPrice   float64
	IndicatorValue float64
	Condition      Condition
	Message        string
	Timestamp      time.Time
}

// MonitorStatus is a point-in-time summary of the engine.
type MonitorStatus struct {
	Running        bool
	Symbols        []string
	TotalAlerts    int
	ActiveAlerts   int
	TriggeredToday int
	LastUpdate     time.Time
}
