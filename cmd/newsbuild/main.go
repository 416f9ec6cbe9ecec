package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news_builder/internal/aggregator"
	"news_builder/internal/config"
	"news_builder/internal/db"
	"news_builder/internal/extract"
	"news_builder/internal/fetcher"
	"news_builder/internal/logger"
	"news_builder/internal/metrics"
	"news_builder/internal/models"
	"news_builder/internal/publisher"
	"news_builder/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config (defaults are used when empty)")
	outPath := flag.String("out", "", "override output_path from config")
	flag.Parse()

	logger.Init()

	// Загрузка конфигурации
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Log.Fatalf("Config load error: %v", err)
		}
		cfg = loaded
	}
	if *outPath != "" {
		cfg.OutputPath = *outPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("Config validation error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	start := time.Now()
	count, err := run(ctx, cfg, m)
	m.ObserveDuration(time.Since(start))
	if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
		logger.Log.Warnf("Metrics write error: %v", werr)
	}
	if err != nil {
		stop()
		logger.Log.WithError(err).Error("News build failed")
		os.Exit(1)
	}

	logger.Log.WithFields(map[string]interface{}{
		"path":  cfg.OutputPath,
		"items": count,
	}).Infof("OK -> %s (%d items)", cfg.OutputPath, count)
}

func run(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (int, error) {
	ex, err := extract.New(cfg.Parser)
	if err != nil {
		return 0, err
	}

	client := fetcher.NewClient(fetcher.Options{
		UserAgent:  cfg.UserAgent,
		Accept:     cfg.Accept,
		MirrorBase: cfg.MirrorBase,
		Timeout:    cfg.Timeout(),
		Interval:   cfg.RequestInterval(),
	}, ex)
	wrk := worker.NewWorker(client, ex, cfg.DefaultSource, m)
	agg := aggregator.New(wrk, aggregator.Options{
		Window:   cfg.Window(),
		MaxItems: cfg.MaxItems,
	})

	now := time.Now()
	res, err := agg.Run(ctx, cfg.Feeds, now)
	if err != nil {
		return 0, err
	}

	if err := publisher.New(cfg.OutputPath).Publish(res); err != nil {
		return 0, err
	}
	m.ObservePublish(len(res.Items), now)

	if cfg.DatabaseURL != "" {
		archive(ctx, cfg.DatabaseURL, res)
	}
	return len(res.Items), nil
}

// archive складывает выдачу в PostgreSQL. Ошибка архива не отменяет уже опубликованный файл.
func archive(ctx context.Context, dsn string, res *models.AggregateResult) {
	database, err := db.NewDB(ctx, dsn)
	if err != nil {
		logger.Log.Warnf("DB connection error: %v", err)
		return
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		logger.Log.Warnf("DB schema error: %v", err)
		return
	}
	runID, err := database.SaveResult(ctx, res)
	if err != nil {
		logger.Log.Warnf("Archive save error: %v", err)
		return
	}
	logger.Log.WithField("run_id", runID).Debug("Result archived")
}
