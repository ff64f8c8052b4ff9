package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/splice/config"
	"github.com/bnema/splice/internal/adapter/converter/ffmpeg"
	"github.com/bnema/splice/internal/adapter/converter/vidio"
	"github.com/bnema/splice/internal/adapter/export"
	"github.com/bnema/splice/internal/adapter/http/validation"
	"github.com/bnema/splice/internal/adapter/storage/jsonfile"
	pebblecache "github.com/bnema/splice/internal/adapter/storage/pebble"
	sqlitestore "github.com/bnema/splice/internal/adapter/storage/sqlite"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
	"github.com/bnema/splice/internal/service"
)

// app holds the wired services shared by every subcommand.
type app struct {
	cfg       *config.Config
	converter *ffmpeg.Converter
	store     port.RunStore
	events    *service.EventBus
	merges    *service.MergeService
	closers   []io.Closer
}

func newApp(cfg *config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	a := &app{
		cfg:       cfg,
		converter: ffmpeg.NewConverter(cfg.FFmpegPath, cfg.FFprobePath),
		events:    service.NewEventBus(),
	}

	var prober port.MediaProber = a.converter
	if cfg.ProbeBackend == config.ProbeVidio {
		prober = vidio.NewProber()
	}
	if cfg.DurationCache {
		cache, err := pebblecache.Open(filepath.Join(cfg.DataDir, "durations"))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open duration cache: %w", err)
		}
		a.closers = append(a.closers, cache)
		prober = service.NewCachedProber(prober, cache)
	}

	switch cfg.Store {
	case config.StoreJSON:
		store, err := jsonfile.NewStore(cfg.DataDir)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open run store: %w", err)
		}
		a.store = store
	default:
		store, err := sqlitestore.NewStore(cfg.DataDir)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open run store: %w", err)
		}
		a.closers = append(a.closers, store)
		a.store = store
	}

	coord := service.NewCoordinator(prober, a.converter, a.converter, serviceOptions(cfg))
	a.merges = service.NewMergeService(coord, a.store, a.events, export.New(cfg.Export))
	a.merges.SetInputCheck(validation.CheckVideoFile)

	logger.Debug.Printf("store=%s probe=%s policy=%s data=%s", cfg.Store, cfg.ProbeBackend, cfg.ProbePolicy, cfg.DataDir)
	return a, nil
}

func serviceOptions(cfg *config.Config) service.Options {
	return service.Options{
		Policy:            cfg.ProbePolicy,
		Profile:           cfg.Profile,
		NormalizeWeight:   cfg.NormalizeWeight,
		PollInterval:      cfg.PollInterval,
		WorkDir:           cfg.WorkDir,
		KeepIntermediates: cfg.KeepIntermediates,
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logger.Warn.Printf("close: %v", err)
		}
	}
	a.closers = nil
}
