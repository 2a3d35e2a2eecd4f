package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"StockSentry/internal/alert"
	"StockSentry/internal/config"
	"StockSentry/internal/engine"
	"StockSentry/internal/quote"
	"StockSentry/internal/recorder"
	"StockSentry/internal/schedule"
	"StockSentry/internal/sink"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockSentry starting...")

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Quote sources in fallback order: gateway first when configured, then
	// the public sources.
	var sources []quote.Source
	if cfg.Gateway.BaseURL != "" {
		sources = append(sources, quote.NewGatewaySource(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Proxy))
	}
	sources = append(sources, quote.NewYahooSource(cfg.Proxy))
	if cfg.AlphaVantage.APIKey != "" {
		sources = append(sources, quote.NewAlphaVantageSource(cfg.AlphaVantage.APIKey, cfg.Proxy))
	}
	provider := quote.NewProvider(sources...)
	for _, s := range sources {
		log.Printf("[INFO] quote source registered: %s", s.Name())
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Rule store: persisted rules first, then any new ones from config.
	store := alert.NewStore()
	persisted, err := rec.LoadRules()
	if err != nil {
		log.Printf("[WARN] load persisted rules: %v", err)
	}
	if n := store.Rehydrate(persisted); n > 0 {
		log.Printf("[INFO] restored %d persisted rules", n)
	}
	for _, r := range cfg.Alerts {
		if _, ok := store.Get(r.ID); ok {
			continue // already restored from the database
		}
		added, err := store.Add(r)
		if err != nil {
			log.Printf("[WARN] skipping configured alert for %s: %v", r.Symbol, err)
			continue
		}
		if err := rec.SaveRule(added); err != nil {
			log.Printf("[WARN] persist configured alert %s: %v", added.ID, err)
		}
	}

	// Sinks: process log always, trigger history always, Telegram when
	// configured.
	sinks := []sink.TriggerSink{
		sink.NewLogSink(),
		sink.Func(rec.RecordTrigger),
	}
	var tg *sink.TelegramSink
	if cfg.Telegram.BotToken != "" {
		tg = sink.NewTelegramSink(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sinks = append(sinks, tg)
	}

	// Init engine
	eng := engine.New(store, provider, engine.Config{
		Interval:     cfg.Monitor.Interval.Std(),
		Cooldown:     cfg.Monitor.Cooldown.Std(),
		HistoryRange: cfg.Monitor.HistoryRange,
	}, sinks...)
	eng.Start()
	defer eng.Stop()

	// Periodic quote-cache cleanup
	cleanup := schedule.NewRepeating(10*time.Minute, provider.ClearExpiredCache)
	cleanup.Start()
	defer cleanup.Stop()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start Telegram polling
	if tg != nil {
		go tg.StartPolling(ctx, commandHandler(eng, store, provider))
		log.Println("[INFO] Telegram polling started")
	}

	log.Println("[INFO] StockSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockSentry stopped")
}

// commandHandler wires the Telegram command surface to the engine.
func commandHandler(eng *engine.Engine, store *alert.Store, provider *quote.Provider) sink.CommandHandler {
	return func(command string) string {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return ""
		}
		switch fields[0] {
		case "/status":
			return sink.FormatStatus(eng.Status())
		case "/alerts":
			return sink.FormatRules(store.All())
		case "/check":
			go eng.RunCycle(context.Background())
			return "Evaluation cycle started."
		case "/price":
			if len(fields) < 2 {
				return "Usage: /price SYMBOL"
			}
			symbol := strings.ToUpper(fields[1])
			q := provider.GetQuote(context.Background(), symbol)
			if q == nil {
				return fmt.Sprintf("No quote available for %s.", symbol)
			}
			return fmt.Sprintf("%s $%.2f (open $%.2f)", q.Symbol, q.Price, q.Open)
		case "/start":
			eng.Start()
			return "Monitor started."
		case "/stop":
			eng.Stop()
			return "Monitor stopped."
		case "/help":
			return "Commands: /status /alerts /check /price /start /stop"
		default:
			return fmt.Sprintf("Unknown command %q. Try /help.", command)
		}
	}
}
