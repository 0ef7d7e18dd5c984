// Package internal provides the App struct that wires the task-cli
// components together and initializes the CLI layer.
package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/valter-silva-au/task-cli/internal/cli"
	"github.com/valter-silva-au/task-cli/internal/core"
	"github.com/valter-silva-au/task-cli/internal/logging"
	"github.com/valter-silva-au/task-cli/internal/storage"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

// DefaultTaskFile is the task file name used when no storage path is configured.
const DefaultTaskFile = "tasks.yaml"

// App holds the service dependencies for task-cli.
type App struct {
	ConfigMgr core.ConfigurationManager
	Config    *models.Config
	Logger    zerolog.Logger

	Store   storage.TaskStore
	TaskMgr core.TaskManager
}

// NewApp loads configuration, applies flag overrides and wires the store and
// task manager into the CLI package. Logs are written to logOut.
func NewApp(opts cli.Options, logOut io.Writer) (*App, error) {
	app := &App{}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(core.ConfigOptions{
		ConfigFile:         opts.ConfigFile,
		ConfigDir:          ResolveConfigDir(),
		DefaultStoragePath: DefaultStoragePath(),
	})
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.StoragePath != "" {
		cfg.StoragePath = opts.StoragePath
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(opts.LogLevel)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	app.Config = cfg

	// --- Logging ---
	logger, err := logging.New(cfg.LogLevel, logOut)
	if err != nil {
		return nil, err
	}
	app.Logger = logger
	if used := app.ConfigMgr.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("loaded config")
	}

	// --- Storage and core ---
	app.Store = storage.NewTaskStore(cfg.StoragePath, logging.Component(logger, "storage"))
	app.TaskMgr = core.NewTaskManager(app.Store, logging.Component(logger, "core"))

	// --- Wire CLI ---
	cli.TaskMgr = app.TaskMgr
	cli.Logger = logger
	cli.StoragePath = cfg.StoragePath

	return app, nil
}

// Init is the cli.AppFactory used by main.
func Init(opts cli.Options) error {
	_, err := NewApp(opts, os.Stderr)
	return err
}

// DefaultStoragePath returns tasks.yaml next to the running executable, or in
// the current directory when the executable cannot be located.
func DefaultStoragePath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultTaskFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultTaskFile)
}

// ResolveConfigDir determines where .taskcli.yaml is looked up. It checks the
// TASKCLI_HOME env var, then walks up from the current directory, then falls
// back to the user config directory.
func ResolveConfigDir() string {
	if home := os.Getenv("TASKCLI_HOME"); home != "" {
		return home
	}

	if dir, err := os.Getwd(); err == nil {
		for {
			if _, err := os.Stat(filepath.Join(dir, core.ConfigName+".yaml")); err == nil {
				return dir
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cfgDir, "task-cli")
}
