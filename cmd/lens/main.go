package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"PortfolioLens/internal/cache"
	"PortfolioLens/internal/collector"
	"PortfolioLens/internal/config"
	"PortfolioLens/internal/notifier"
	"PortfolioLens/internal/recorder"
	"PortfolioLens/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PortfolioLens starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

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

	// Init feeds
	var source collector.SourceFeed
	var prices collector.PriceFeed
	if cfg.Feeds.AccountPath != "" {
		ff := &collector.FileFeed{
			TradeLogPath:      cfg.Feeds.TradeLogPath,
			AccountPath:       cfg.Feeds.AccountPath,
			ExecutionsPath:    cfg.Feeds.ExecutionsPath,
			ClosePricesPath:   cfg.Feeds.ClosePricesPath,
			CurrentPricesPath: cfg.Feeds.CurrentPricesPath,
		}
		source, prices = ff, ff
	} else {
		mf := &collector.MockFeed{}
		source, prices = mf, mf
	}
	log.Printf("[INFO] source feed: %s", source.Name())

	// Init collector
	c := cache.New()
	col := collector.NewCollector(source, prices, c, cfg.Leverage.Ratios, cfg.Feeds.ClosePriceDays)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, c, tn, rec, cfg.LeverageTables())
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.ReloadCron, cfg.Schedule.RolloverCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh cycle now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] PortfolioLens is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] PortfolioLens stopped")
}
