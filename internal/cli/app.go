package cli

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ilawal010/Clerk/internal/config"
	"github.com/ilawal010/Clerk/internal/intake"
	"github.com/ilawal010/Clerk/internal/logging"
	"github.com/ilawal010/Clerk/internal/memo"
	"github.com/ilawal010/Clerk/internal/store"
	"github.com/ilawal010/Clerk/internal/workflow"
)

// app is everything a command needs, opened per invocation.
type app struct {
	cfg     *config.Config
	store   *store.Store
	service *workflow.Service
	logger  *zap.Logger
}

// openApp loads config, builds the logger, and opens the record store.
func openApp(opts *RootOptions) (*app, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}

	logger := opts.hooks.logger
	if logger == nil {
		logger, err = logging.New(cfg.Logging, opts.Verbose)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to initialize logger", err)
		}
	}

	layout := intake.Layout{Root: cfg.DataDir}
	if err := layout.Ensure(); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to prepare data directory", err)
	}

	st, err := store.Open(cfg.DatabaseFile())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	logger.Debug("store opened", zap.String("path", cfg.DatabaseFile()))

	var stamper intake.Stamper
	if cfg.StampPDFs {
		stamper = opts.hooks.stamper
		if stamper == nil {
			stamper = intake.PDFStamper{}
		}
	}

	svcOpts := []workflow.Option{workflow.WithLogger(logger)}
	if opts.hooks.clock != nil {
		svcOpts = append(svcOpts, workflow.WithClock(opts.hooks.clock))
	}
	if opts.hooks.rand != nil {
		svcOpts = append(svcOpts, workflow.WithRand(opts.hooks.rand))
	}

	svc := workflow.NewService(
		st,
		intake.NewFiles(layout, stamper),
		memo.NewDirectory(cfg.Departments),
		memo.NewNumberGenerator(cfg.NumberPrefix),
		svcOpts...,
	)

	return &app{cfg: cfg, store: st, service: svc, logger: logger}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() error {
	_ = a.logger.Sync()
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// relPath shows paths relative to the data directory when possible.
func (a *app) relPath(path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(a.cfg.DataDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
