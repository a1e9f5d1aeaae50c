package cmd

import (
	"fmt"
	"io"
	"strings"

	"release-sync/core/config"
	"release-sync/core/database"
	"release-sync/core/logger"
	"release-sync/core/storage"
	"release-sync/feature/alerts"
	"release-sync/feature/feeds"
	"release-sync/feature/journal"
	"release-sync/feature/updater"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the wired application shared by every command.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	updater  *updater.Updater
	source   feeds.Source
	recorder *journal.Recorder
	db       *gorm.DB
}

// loadConfig loads and validates the configuration.
func loadConfig(override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup wires logger, feeds, journal and alerts. Report lines go to out.
func setup(cfg *config.Config, out io.Writer) (*runtime, error) {
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	rt := &runtime{cfg: cfg, logger: logg}

	var client storage.Client
	if strings.HasPrefix(cfg.Catalog.FeedDir, feeds.BucketScheme) {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
	}
	source, err := feeds.New(cfg.Catalog.FeedDir, client, cfg.Storage.RetryAttempts, logg)
	if err != nil {
		return nil, err
	}
	rt.source = source

	// The journal is optional; a broken database never blocks an update.
	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, journal disabled", zap.Error(err))
		} else if rec, err := journal.NewRecorder(db, cfg.Database.AutoMigrate); err != nil {
			logg.Warn("Journal unavailable", zap.Error(err))
			_ = database.Close(db)
		} else {
			rt.db = db
			rt.recorder = rec
			logg.Info("Run journal enabled", zap.String("driver", cfg.Database.Driver))
		}
	}

	sinks := []alerts.Sink{alerts.NewWriter(out)}
	if gh := alerts.NewGitHubOutput(cfg.Alerts.GitHubOutput, cfg.Alerts.OutputName); gh.Enabled() {
		sinks = append(sinks, gh)
	}
	if cfg.Alerts.TelegramToken != "" {
		tg, err := alerts.NewTelegram(cfg.Alerts.TelegramToken, cfg.Alerts.TelegramChatID)
		if err != nil {
			logg.Warn("Telegram alerts disabled", zap.Error(err))
		} else {
			sinks = append(sinks, tg)
		}
	}

	deps := updater.Dependencies{
		ProductDir: cfg.Catalog.ProductDir,
		Feeds:      source,
		Alerts:     alerts.NewMulti(logg, sinks...),
		Logger:     logg,
	}
	if rt.recorder != nil {
		deps.Journal = rt.recorder
	}
	rt.updater = updater.New(deps, updater.Options{
		DryRun:        cfg.Catalog.DryRun,
		RecencyWindow: cfg.Catalog.RecencyWindow(),
	})
	return rt, nil
}

// history returns the journal reader, or nil when the journal is disabled.
func (rt *runtime) history() updater.History {
	if rt.recorder == nil {
		return nil
	}
	return rt.recorder
}

func (rt *runtime) close() {
	if rt.db != nil {
		if err := database.Close(rt.db); err != nil {
			rt.logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	_ = rt.logger.Sync()
}
