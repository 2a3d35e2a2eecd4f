package sink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockSentry/internal/model"
)

func TestFormatTrigger(t *testing.T) {
	out := FormatTrigger(model.AlertTrigger{
		AlertID:      "r1",
		Symbol:       "IONQ",
		CurrentPrice: 49,
		Condition:    model.CondBelow,
		Message:      "📉 IONQ price $49.00 is below $50.00",
		Timestamp:    time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC),
	})
	assert.Contains(t, out, "IONQ price $49.00")
	assert.Contains(t, out, "r1")
	assert.Contains(t, out, "2026-08-28 15:30")
}

func TestFormatRules(t *testing.T) {
	assert.Equal(t, "No alert rules registered.", FormatRules(nil))

	out := FormatRules([]model.AlertRule{{
		Symbol:        "AAPL",
		Indicator:     model.IndicatorSpec{Kind: model.KindRSI, Period: 14},
		Condition:     model.CondBelow,
		TargetValue:   30,
		HasTarget:     true,
		Active:        true,
		TriggerCount:  2,
		LastTriggered: time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "RSI")
	assert.Contains(t, out, "30.00")
	assert.Contains(t, out, "fired 2×")
}

func TestFormatStatus(t *testing.T) {
	out := FormatStatus(model.MonitorStatus{
		Running:      true,
		Symbols:      []string{"AAPL", "IONQ"},
		TotalAlerts:  3,
		ActiveAlerts: 2,
	})
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "AAPL, IONQ")
	assert.Contains(t, out, "3 total, 2 active")
}

func TestFuncSink(t *testing.T) {
	var got model.AlertTrigger
	s := Func(func(tr model.AlertTrigger) error {
		got = tr
		return nil
	})
	assert.Equal(t, "func", s.Name())
	assert.NoError(t, s.Notify(model.AlertTrigger{AlertID: "x"}))
	assert.Equal(t, "x", got.AlertID)
}
