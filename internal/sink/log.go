package sink

import (
	"log"

	"StockSentry/internal/model"
)

// LogSink writes every trigger to the process log.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (l *LogSink) Name() string { return "log" }

func (l *LogSink) Notify(trigger model.AlertTrigger) error {
	log.Printf("[INFO] alert triggered: %s", trigger.Message)
	return nil
}
