// Package sink delivers alert triggers to downstream consumers. Sinks are
// invoked synchronously from the engine's evaluation cycle; a failing sink is
// logged and contained, never allowed to disturb the engine or other sinks.
package sink

import "StockSentry/internal/model"

// TriggerSink receives each alert trigger the engine emits.
type TriggerSink interface {
	Name() string
	Notify(trigger model.AlertTrigger) error
}

// Func adapts a plain function into a TriggerSink.
type Func func(trigger model.AlertTrigger) error

func (f Func) Name() string                            { return "func" }
func (f Func) Notify(trigger model.AlertTrigger) error { return f(trigger) }
