// Package engine runs the alert-evaluation loop: it periodically pulls
// active rules from the store, fetches quotes, computes indicators, applies
// crossover/convergence/proximity detection against remembered prior values,
// enforces the trigger cooldown and publishes triggers to the registered
// sinks.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"StockSentry/internal/alert"
	"StockSentry/internal/model"
	"StockSentry/internal/schedule"
	"StockSentry/internal/sink"
)

// QuoteProvider is the data-source strategy the engine evaluates against.
// *quote.Provider is the production implementation.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) *model.Quote
	GetHistory(ctx context.Context, symbol, rng string) []model.OHLCV
}

// Config tunes the evaluation loop.
type Config struct {
	Interval     time.Duration // time between cycles
	HistoryRange string        // history range fetched for indicator rules
	Cooldown     time.Duration // minimum gap between triggers of one rule
	Debounce     time.Duration // minimum gap between evaluations of one symbol
	BatchSize    int           // concurrent quote fetches per batch
	BatchDelay   time.Duration // pause between quote batches
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.HistoryRange == "" {
		c.HistoryRange = "6mo"
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 5 * time.Minute
	}
	if c.Debounce <= 0 {
		c.Debounce = 30 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 3
	}
	if c.BatchDelay <= 0 {
		c.BatchDelay = time.Second
	}
}

// Engine is the monitoring state machine. It is either stopped or running;
// start and stop are idempotent. At most one evaluation cycle executes at a
// time.
type Engine struct {
	store    *alert.Store
	provider QuoteProvider
	sinks    []sink.TriggerSink
	cfg      Config

	mu      sync.Mutex
	running bool
	task    *schedule.Repeating
	cancel  context.CancelFunc

	cycleMu sync.Mutex // single-flight guard for cycles

	memory        *valueMemory
	lastEvaluated map[string]time.Time // per-symbol debounce stamps
	lastUpdate    time.Time

	limiter *rate.Limiter
	nowFn   func() time.Time
}

// New creates an Engine over the given store and provider. Triggers are
// published synchronously to every sink.
func New(store *alert.Store, provider QuoteProvider, cfg Config, sinks ...sink.TriggerSink) *Engine {
	cfg.applyDefaults()
	return &Engine{
		store:         store,
		provider:      provider,
		sinks:         sinks,
		cfg:           cfg,
		memory:        newValueMemory(),
		lastEvaluated: make(map[string]time.Time),
		limiter:       rate.NewLimiter(rate.Every(cfg.BatchDelay), 1),
		nowFn:         time.Now,
	}
}

// Start transitions the engine to running: it kicks off an immediate
// evaluation cycle and schedules periodic cycles. A no-op when already
// running.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		log.Println("[INFO] monitor already running")
		return
	}
	e.running = true
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.task = schedule.NewRepeating(e.cfg.Interval, func() { e.RunCycle(ctx) })
	e.mu.Unlock()

	log.Printf("[INFO] monitor started, interval %v", e.cfg.Interval)
	go e.RunCycle(ctx)
	e.task.Start()
}

// Stop transitions the engine to stopped: no further cycles start, and a
// cycle already in flight finishes its network calls but skips trigger
// bookkeeping. A no-op when already stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		log.Println("[INFO] monitor not running")
		return
	}
	e.running = false
	e.cancel()
	e.task.Stop()
	log.Println("[INFO] monitor stopped")
}

// Running reports whether the engine is in the running state.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// RunCycle executes one evaluation cycle. If a cycle is already in flight
// the call is dropped rather than overlapped.
func (e *Engine) RunCycle(ctx context.Context) {
	if !e.cycleMu.TryLock() {
		log.Println("[WARN] evaluation cycle still in flight, skipping")
		return
	}
	defer e.cycleMu.Unlock()
	e.runCycle(ctx)
}

func (e *Engine) runCycle(ctx context.Context) {
	rules := e.store.Active()
	if len(rules) == 0 {
		return // nothing active: no network calls at all
	}

	symbols := distinctSymbols(rules)
	log.Printf("[INFO] evaluating %d rules across %d symbols", len(rules), len(symbols))

	quotes := e.fetchQuotes(ctx, symbols)
	e.mu.Lock()
	e.lastUpdate = e.nowFn()
	e.mu.Unlock()

	for _, rule := range rules {
		quote, ok := quotes[rule.Symbol]
		if !ok {
			continue // fetch failure for this symbol, isolated
		}
		if e.debounced(rule.Symbol) {
			continue
		}
		e.checkRule(ctx, rule, quote)
	}
}

// fetchQuotes pulls quotes for the distinct symbol set in batches, pacing
// between batches to respect upstream rate limits. Every batch takes a
// limiter token, including the first: the bucket refills while the engine is
// idle, and the first batch must consume that token or the second batch
// would sail through without waiting.
func (e *Engine) fetchQuotes(ctx context.Context, symbols []string) map[string]model.Quote {
	quotes := make(map[string]model.Quote, len(symbols))
	var mu sync.Mutex

	for start := 0; start < len(symbols); start += e.cfg.BatchSize {
		if err := e.limiter.Wait(ctx); err != nil {
			return quotes
		}
		end := start + e.cfg.BatchSize
		if end > len(symbols) {
			end = len(symbols)
		}
		g, gctx := errgroup.WithContext(ctx)
		for _, symbol := range symbols[start:end] {
			symbol := symbol
			g.Go(func() error {
				if q := e.provider.GetQuote(gctx, symbol); q != nil {
					mu.Lock()
					quotes[symbol] = *q
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()
	}
	return quotes
}

// debounced reports whether the symbol was evaluated too recently, stamping
// it otherwise. The stamp is per symbol, not per rule, so redundant history
// fetches are avoided when several rules watch one symbol.
func (e *Engine) debounced(symbol string) bool {
	now := e.nowFn()
	if last, ok := e.lastEvaluated[symbol]; ok && now.Sub(last) < e.cfg.Debounce {
		return true
	}
	e.lastEvaluated[symbol] = now
	return false
}

// checkRule evaluates one rule and fires it on a match, containing any
// evaluation panic so the rest of the cycle proceeds.
func (e *Engine) checkRule(ctx context.Context, rule model.AlertRule, quote model.Quote) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] rule %s evaluation panicked: %v", rule.ID, r)
		}
	}()

	matched, indicatorValue := e.evaluate(ctx, rule, quote)
	if !matched {
		return
	}
	e.fire(ctx, rule, quote, indicatorValue)
}

// fire applies the cooldown and, if it passes, records the trigger and
// publishes it to every sink. A stop issued mid-cycle suppresses the
// side-effecting tail.
func (e *Engine) fire(ctx context.Context, rule model.AlertRule, quote model.Quote, indicatorValue float64) {
	if ctx.Err() != nil {
		return // stopped mid-cycle: no bookkeeping after stop
	}
	now := e.nowFn()

	// Re-read the rule: the cycle works on a snapshot and the store owns
	// the authoritative trigger bookkeeping.
	current, ok := e.store.Get(rule.ID)
	if !ok {
		return // removed mid-cycle
	}
	if !current.LastTriggered.IsZero() && now.Sub(current.LastTriggered) < e.cfg.Cooldown {
		return // in cooldown: no trigger, no bookkeeping
	}

	e.store.RecordTrigger(rule.ID, now)
	trigger := model.AlertTrigger{
		AlertID:        rule.ID,
		Symbol:         rule.Symbol,
		CurrentPrice:   quote.Price,
		IndicatorValue: indicatorValue,
		Condition:      rule.Condition,
		Message:        buildMessage(rule, quote, indicatorValue),
		Timestamp:      now,
	}
	e.publish(trigger)
}

// publish delivers a trigger to every sink, containing per-sink failures.
func (e *Engine) publish(trigger model.AlertTrigger) {
	for _, s := range e.sinks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[ERROR] sink %s panicked: %v", s.Name(), r)
				}
			}()
			if err := s.Notify(trigger); err != nil {
				log.Printf("[ERROR] sink %s failed: %v", s.Name(), err)
			}
		}()
	}
}

// Status returns a point-in-time summary of the engine and its rules.
func (e *Engine) Status() model.MonitorStatus {
	rules := e.store.All()
	seen := make(map[string]bool)
	var symbols []string
	active := 0
	triggeredToday := 0
	now := e.nowFn()
	for _, r := range rules {
		if r.Active {
			active++
			if !seen[r.Symbol] {
				seen[r.Symbol] = true
				symbols = append(symbols, r.Symbol)
			}
		}
		if sameDay(r.LastTriggered, now) {
			triggeredToday++
		}
	}

	e.mu.Lock()
	running := e.running
	lastUpdate := e.lastUpdate
	e.mu.Unlock()

	return model.MonitorStatus{
		Running:        running,
		Symbols:        symbols,
		TotalAlerts:    len(rules),
		ActiveAlerts:   active,
		TriggeredToday: triggeredToday,
		LastUpdate:     lastUpdate,
	}
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func distinctSymbols(rules []model.AlertRule) []string {
	seen := make(map[string]bool, len(rules))
	var symbols []string
	for _, r := range rules {
		if !seen[r.Symbol] {
			seen[r.Symbol] = true
			symbols = append(symbols, r.Symbol)
		}
	}
	return symbols
}
