package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/amanthanvi/bloom/internal/app"
	"github.com/amanthanvi/bloom/internal/config"
	logpkg "github.com/amanthanvi/bloom/internal/log"
	"github.com/amanthanvi/bloom/internal/storage"
	"github.com/mattn/go-isatty"
)

var (
	loadConfigFn  = config.Load
	openStorageFn = storage.Open
	nowFn         = time.Now
	logOutput     io.Writer = os.Stderr
	isInteractive           = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}
)

// session is everything a command needs once config and storage are open.
type session struct {
	cfg     config.Config
	backend storage.Backend
	service *app.StorageService
	logger  *slog.Logger
}

func withService(cmdCtx context.Context, deps commandDeps, fn func(context.Context, session) error) error {
	cfg, err := loadConfig(deps.globals)
	if err != nil {
		return mapCommandError(fmt.Errorf("load config: %w", err))
	}

	logger, logCloser, err := logpkg.New(logpkg.Options{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	}, logOutput)
	if err != nil {
		return mapCommandError(fmt.Errorf("init logger: %w", err))
	}
	defer logCloser.Close()

	storageOpts := storage.Options{
		Backend:    cfg.Storage.Backend,
		Path:       cfg.Storage.Path,
		SyncWrites: cfg.Storage.SyncWrites,
	}
	if cfg.Logging.File != "" {
		storageOpts.Logger = logger.With("component", "badger")
	}
	backend, err := openStorageFn(storageOpts)
	if err != nil {
		return mapCommandError(fmt.Errorf("open storage: %w", err))
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			logger.Warn("close storage", "error", closeErr)
		}
	}()

	service := app.NewStorageService(backend, app.ServiceOptions{
		Clock:  nowFn,
		Logger: logger,
	})
	return mapCommandError(fn(cmdCtx, session{
		cfg:     cfg,
		backend: backend,
		service: service,
		logger:  logger,
	}))
}

func loadConfig(globals *GlobalOptions) (config.Config, error) {
	loadOpts := config.LoadOptions{}
	if globals != nil {
		loadOpts.ConfigPath = strings.TrimSpace(globals.ConfigPath)
		if dataDir := strings.TrimSpace(globals.DataDir); dataDir != "" {
			loadOpts.Flags.DataDir = &dataDir
		}
		if backend := strings.TrimSpace(globals.Backend); backend != "" {
			loadOpts.Flags.StorageBackend = &backend
		}
	}
	cfg, _, err := loadConfigFn(loadOpts)
	return cfg, err
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func boolToState(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

// printf writes human output unless --quiet is set.
func printf(deps commandDeps, format string, args ...any) error {
	if deps.globals.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(deps.out, format, args...)
	return err
}
