package recorder

import "StockSentry/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) SaveRule(_ model.AlertRule) error         { return nil }
func (n *NoopRecorder) DeleteRule(_ string) error                { return nil }
func (n *NoopRecorder) LoadRules() ([]model.AlertRule, error)    { return nil, nil }
func (n *NoopRecorder) RecordTrigger(_ model.AlertTrigger) error { return nil }
func (n *NoopRecorder) Close() error                             { return nil }
