package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"orderpulse/internal/binance"
	"orderpulse/internal/config"
	"orderpulse/internal/logger"
	"orderpulse/internal/monitor"
	"orderpulse/internal/telegram"
	"orderpulse/internal/universe"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	strategy := monitor.DefaultConfig()

	client := binance.NewClient(
		cfg.Binance.SpotAPIURL,
		cfg.Binance.FuturesAPIURL,
		cfg.Binance.Timeout,
		binance.ClientConfig{
			MaxAttempts:       strategy.MaxRetries,
			DefaultRetryAfter: strategy.DefaultRetryAfter,
		},
	)

	cache := universe.New(client)

	var notifier monitor.Notifier
	if cfg.Telegram.Enabled {
		telegramClient, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		notifier = telegramClient
		logger.Info("Telegram client initialized successfully")
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	mon := monitor.New(client, client, cache, notifier, strategy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, stopping...")
		cancel()
	}()

	// The cache starts empty; until this first refresh succeeds no alert can
	// fire, which is the intended cold-start behavior.
	if err := cache.Refresh(ctx); err != nil {
		logger.Error("Initial symbol universe refresh failed: %v", err)
	} else {
		logger.Info("Symbol universe loaded: %d futures symbols", cache.Size())
	}

	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc(cfg.Universe.RefreshSchedule, func() {
		if err := cache.Refresh(ctx); err != nil {
			logger.Error("Scheduled symbol universe refresh failed: %v", err)
		} else {
			logger.Info("Symbol universe refreshed: %d futures symbols", cache.Size())
		}
	}); err != nil {
		logger.Fatal("Failed to schedule universe refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("Starting scan loop (interval: %v, depth: %d, change threshold: %.1f%%, notional threshold: $%.0f)",
		strategy.PollInterval,
		strategy.OrderBookDepth,
		strategy.PercentChangeThreshold,
		strategy.ImbalanceNotionalThreshold,
	)

	ticker := time.NewTicker(strategy.PollInterval)
	defer ticker.Stop()

	// A slow cycle must not overlap the next one: DedupState has a single
	// writer only as long as one cycle runs at a time.
	var inFlight atomic.Bool
	runCycle := func() {
		if !inFlight.CompareAndSwap(false, true) {
			logger.Warn("Previous cycle still in flight, skipping this tick")
			return
		}
		go func() {
			defer inFlight.Store(false)
			if err := mon.RunCycle(ctx); err != nil {
				logger.Error("Scan cycle failed: %v", err)
			}
		}()
	}

	runCycle()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Service stopped")
			return
		case <-ticker.C:
			runCycle()
		}
	}
}
