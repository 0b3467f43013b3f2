package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/Zachkp/showcase/internal/backend"
	"github.com/Zachkp/showcase/internal/cache"
	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/gallery"
	"github.com/Zachkp/showcase/internal/services"
	"github.com/Zachkp/showcase/internal/store"
)

// app holds the long-lived dependencies shared by every command.
type app struct {
	store    *store.Store
	redis    *redis.Client
	watcher  *gallery.OverridesWatcher
	showcase *services.Showcase
	logger   *log.Logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	a := &app{logger: logger}

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.store = st

	client, err := backend.NewClient(backend.Options{
		BaseURL:      cfg.APIBaseURL,
		ProjectsPath: cfg.ProjectsPath,
		SkillsPath:   cfg.SkillsPath,
		Cookie:       cfg.APICookie,
		Timeout:      cfg.APITimeout,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		a.redis = redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := a.redis.Ping(pingCtx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; reads fall back to the backend")
		}
		cancel()
	}
	shared := cache.New(client, a.redis, cfg.CacheTTL)

	if cfg.SkillCategoriesFile != "" {
		w, err := gallery.WatchOverrides(ctx, cfg.SkillCategoriesFile, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.watcher = w
		logger.WithFields(log.Fields{
			"file":   cfg.SkillCategoriesFile,
			"skills": w.Current().Len(),
		}).Info("skill category overrides loaded")
	}

	a.showcase = services.New(services.Options{
		Source:    shared,
		Snapshots: st,
		Evicter:   shared,
		Overrides: a.watcher.Current,
		TTL:       cfg.CacheTTL,
		Logger:    logger,
	})
	return a, nil
}

// Close releases everything newApp opened.
func (a *app) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.WithError(err).Warn("close overrides watcher")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WithError(err).Warn("close redis")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.WithError(err).Warn("close store")
		}
	}
}
