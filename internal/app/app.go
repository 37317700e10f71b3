package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/kv"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/persist"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/ui"
)

// Options configure a folio session. Empty fields fall back to the config
// file.
type Options struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Ephemeral  bool // keep state in memory and write nothing to disk
}

// Env holds everything a folio session needs, opened and wired.
type Env struct {
	Config config.Config
	Store  *state.Store
	Logger logging.Logger

	closers []io.Closer
}

// Open loads configuration and builds the storage, logger and state store.
// Callers must Close the returned Env.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dir := strings.TrimSpace(opts.DataDir); dir != "" {
		cfg = cfg.WithDataDir(dir)
	}
	if backend := strings.ToLower(strings.TrimSpace(opts.Backend)); backend != "" {
		cfg.Backend = backend
	}
	if opts.Ephemeral {
		cfg.Backend = kv.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := &Env{Config: cfg}

	var logger *logging.SlogLogger
	if opts.Ephemeral {
		logger = logging.Discard()
	} else {
		l, closer, err := logging.OpenFile(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
		if err != nil {
			return nil, err
		}
		logger = l
		env.closers = append(env.closers, closer)
	}
	env.Logger = logger

	store, err := kv.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	// Storage closes before the log file.
	env.closers = append([]io.Closer{store}, env.closers...)

	env.Store = state.New(state.Options{
		Adapter:       persist.New(store),
		Encoder:       imageref.FileEncoder{MaxBytes: cfg.MaxImageBytes},
		Logger:        logger.With("component", "state"),
		UploadWorkers: cfg.UploadWorkers,
	})
	logger.Debug(context.Background(), "session opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return env, nil
}

// Close releases storage and the log file.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run boots the folio TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartRetrier(ctx, env.Store, defaultRetryInterval)

	logPath := env.Config.LogFile
	if opts.Ephemeral {
		logPath = ""
	}
	return ui.Run(ui.Options{
		Context: ctx,
		Store:   env.Store,
		Encoder: imageref.FileEncoder{MaxBytes: env.Config.MaxImageBytes},
		LogPath: logPath,
	})
}
