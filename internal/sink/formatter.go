package sink

import (
	"fmt"
	"strings"

	"StockSentry/internal/model"
)

// FormatTrigger formats a trigger for Telegram delivery.
func FormatTrigger(trigger model.AlertTrigger) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>StockSentry Alert</b> | %s\n\n", trigger.Timestamp.Format("2006-01-02 15:04")))
	b.WriteString(trigger.Message)
	b.WriteString(fmt.Sprintf("\n\nRule: %s | Condition: %s", trigger.AlertID, trigger.Condition))
	return b.String()
}

// FormatStatus formats the engine's status report for display.
func FormatStatus(status model.MonitorStatus) string {
	var b strings.Builder
	b.WriteString("📊 <b>Monitor Status</b>\n\n")
	if status.Running {
		b.WriteString("State: running\n")
	} else {
		b.WriteString("State: stopped\n")
	}
	b.WriteString(fmt.Sprintf("Watched symbols: %s\n", strings.Join(status.Symbols, ", ")))
	b.WriteString(fmt.Sprintf("Rules: %d total, %d active\n", status.TotalAlerts, status.ActiveAlerts))
	b.WriteString(fmt.Sprintf("Triggered today: %d\n", status.TriggeredToday))
	b.WriteString(fmt.Sprintf("Last update: %s\n", status.LastUpdate.Format("2006-01-02 15:04:05")))
	return b.String()
}

// FormatRules formats the rule list for display.
func FormatRules(rules []model.AlertRule) string {
	if len(rules) == 0 {
		return "No alert rules registered."
	}
	var b strings.Builder
	b.WriteString("🔔 <b>Alert Rules</b>\n\n")
	for _, r := range rules {
		state := "off"
		if r.Active {
			state = "on"
		}
		b.WriteString(fmt.Sprintf("• [%s] %s %s %s", state, r.Symbol, r.Indicator.Kind, r.Condition))
		if r.HasTarget {
			b.WriteString(fmt.Sprintf(" %.2f", r.TargetValue))
		}
		if r.TriggerCount > 0 {
			b.WriteString(fmt.Sprintf(" (fired %d×, last %s)", r.TriggerCount, r.LastTriggered.Format("01-02 15:04")))
		}
		b.WriteString("\n")
	}
	return b.String()
}
