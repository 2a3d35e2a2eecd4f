package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockSentry/internal/model"
)

// SQLiteRecorder persists rules and trigger history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so status queries can read while the monitor writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alert_rules (
			id             TEXT PRIMARY KEY,
			symbol         TEXT NOT NULL,
			name           TEXT,
			kind           TEXT NOT NULL,
			period         INTEGER,
			periods        TEXT,
			threshold      REAL,
			condition      TEXT NOT NULL,
			target_value   REAL,
			has_target     INTEGER NOT NULL,
			active         INTEGER NOT NULL,
			created_at     INTEGER NOT NULL,
			last_triggered INTEGER,
			trigger_count  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rules_symbol ON alert_rules(symbol)`,

		`CREATE TABLE IF NOT EXISTS trigger_history (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			alert_id        TEXT NOT NULL,
			symbol          TEXT NOT NULL,
			timestamp       INTEGER NOT NULL,
			price           REAL,
			indicator_value REAL,
			condition       TEXT,
			message         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triggers_ts ON trigger_history(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_triggers_alert ON trigger_history(alert_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) SaveRule(rule model.AlertRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var lastTriggered int64
	if !rule.LastTriggered.IsZero() {
		lastTriggered = rule.LastTriggered.Unix()
	}
	_, err := r.db.Exec(`INSERT OR REPLACE INTO alert_rules
		(id, symbol, name, kind, period, periods, threshold,
		 condition, target_value, has_target, active,
		 created_at, last_triggered, trigger_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rule.ID, rule.Symbol, rule.Name,
		string(rule.Indicator.Kind), rule.Indicator.Period,
		joinPeriods(rule.Indicator.Periods), rule.Indicator.Threshold,
		string(rule.Condition), rule.TargetValue, boolInt(rule.HasTarget), boolInt(rule.Active),
		rule.CreatedAt.Unix(), lastTriggered, rule.TriggerCount,
	)
	return err
}

func (r *SQLiteRecorder) DeleteRule(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM alert_rules WHERE id = ?`, id)
	return err
}

func (r *SQLiteRecorder) LoadRules() ([]model.AlertRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, symbol, name, kind, period, periods, threshold,
		condition, target_value, has_target, active, created_at, last_triggered, trigger_count
		FROM alert_rules ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var rules []model.AlertRule
	for rows.Next() {
		var (
			rule          model.AlertRule
			kind, cond    string
			periods       sql.NullString
			hasTarget     int
			active        int
			createdAt     int64
			lastTriggered sql.NullInt64
		)
		if err := rows.Scan(&rule.ID, &rule.Symbol, &rule.Name, &kind,
			&rule.Indicator.Period, &periods, &rule.Indicator.Threshold,
			&cond, &rule.TargetValue, &hasTarget, &active,
			&createdAt, &lastTriggered, &rule.TriggerCount); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rule.Indicator.Kind = model.IndicatorKind(kind)
		rule.Indicator.Periods = splitPeriods(periods.String)
		rule.Condition = model.Condition(cond)
		rule.HasTarget = hasTarget != 0
		rule.Active = active != 0
		rule.CreatedAt = time.Unix(createdAt, 0)
		if lastTriggered.Valid && lastTriggered.Int64 > 0 {
			rule.LastTriggered = time.Unix(lastTriggered.Int64, 0)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *SQLiteRecorder) RecordTrigger(trigger model.AlertTrigger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.Exec(`INSERT INTO trigger_history
		(alert_id, symbol, timestamp, price, indicator_value, condition, message)
		VALUES (?,?,?,?,?,?,?)`,
		trigger.AlertID, trigger.Symbol, trigger.Timestamp.Unix(),
		trigger.CurrentPrice, trigger.IndicatorValue,
		string(trigger.Condition), trigger.Message,
	); err != nil {
		return fmt.Errorf("insert trigger: %w", err)
	}

	_, err := r.db.Exec(`UPDATE alert_rules
		SET last_triggered = ?, trigger_count = trigger_count + 1
		WHERE id = ?`,
		trigger.Timestamp.Unix(), trigger.AlertID,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func joinPeriods(periods []int) string {
	if len(periods) == 0 {
		return ""
	}
	parts := make([]string, len(periods))
	for i, p := range periods {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func splitPeriods(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	periods := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		periods = append(periods, n)
	}
	return periods
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
