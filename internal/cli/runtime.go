package cli

import (
	"fmt"
	"time"

	"github.com/terraincognita07/bloom/internal/config"
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

type appRuntime struct {
	config   *config.Config
	database *gorm.DB
	now      func() time.Time
	days     *services.DayService
	settings *services.SettingsService
	stats    *services.StatsService
	tags     *services.TagService
	backup   *services.BackupService
}

func openRuntime(opts *rootOptions) (*appRuntime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config init failed: %w", err)
	}
	cfg.ApplyOverrides(opts.dbPath, opts.timezone)

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	days := services.NewDayService(repositories.DayLogs, cfg.Location)
	settings := services.NewSettingsService(repositories.Settings, cfg.Location)
	stats := services.NewStatsService(days, settings, cfg.Location)

	return &appRuntime{
		config:   cfg,
		database: database,
		now:      opts.now,
		days:     days,
		settings: settings,
		stats:    stats,
		tags:     services.NewTagService(days),
		backup:   services.NewBackupService(stats, repositories.Settings, cfg.Location),
	}, nil
}

func (rt *appRuntime) Close() error {
	return db.Close(rt.database)
}

func (rt *appRuntime) currentTime() time.Time {
	return rt.now().In(rt.config.Location)
}

func (rt *appRuntime) parseDay(raw string) (time.Time, error) {
	day, ok := services.ParseDay(raw, rt.config.Location)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return day, nil
}

func withRuntime(opts *rootOptions, run func(rt *appRuntime) error) error {
	rt, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()
	return run(rt)
}
