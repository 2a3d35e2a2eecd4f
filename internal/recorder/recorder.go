// Package recorder persists alert rules and trigger history so the monitor
// survives restarts with its rules and bookkeeping intact.
package recorder

import "StockSentry/internal/model"

// Recorder persists rules and trigger history.
type Recorder interface {
	// SaveRule inserts or replaces the stored copy of a rule.
	SaveRule(rule model.AlertRule) error
	// DeleteRule removes a rule and keeps its trigger history.
	DeleteRule(id string) error
	// LoadRules returns every stored rule, oldest first.
	LoadRules() ([]model.AlertRule, error)
	// RecordTrigger appends to trigger history and refreshes the rule's
	// trigger bookkeeping.
	RecordTrigger(trigger model.AlertTrigger) error
	Close() error
}
