package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

const (
	// ConfigName is the base name of the optional config file (.taskcli.yaml).
	ConfigName = ".taskcli"

	// EnvPrefix prefixes environment overrides, e.g. TASKCLI_STORAGE_PATH.
	EnvPrefix = "TASKCLI"

	// DefaultLogLevel keeps normal command output free of log lines.
	DefaultLogLevel = "warn"
)

// ConfigurationManager defines the interface for loading and validating
// task-cli configuration.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
	ConfigFileUsed() string
}

// ConfigOptions controls where configuration is read from.
type ConfigOptions struct {
	// ConfigFile is an explicit config file path. It must exist when set.
	ConfigFile string
	// ConfigDir is searched for .taskcli.yaml when ConfigFile is empty.
	ConfigDir string
	// DefaultStoragePath is used when no other source sets storage_path.
	DefaultStoragePath string
}

type viperConfigManager struct {
	opts ConfigOptions
	used string
}

// NewConfigurationManager creates a ConfigurationManager backed by Viper.
// Precedence: environment > config file > defaults. Command-line flags are
// applied on top by the caller.
func NewConfigurationManager(opts ConfigOptions) ConfigurationManager {
	return &viperConfigManager{opts: opts}
}

func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("storage_path", cm.opts.DefaultStoragePath)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cm.opts.ConfigFile != "" {
		v.SetConfigFile(cm.opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cm.opts.ConfigFile, err)
		}
	} else if cm.opts.ConfigDir != "" {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(cm.opts.ConfigDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading %s in %s: %w", ConfigName, cm.opts.ConfigDir, err)
			}
		}
	}
	cm.used = v.ConfigFileUsed()

	return &models.Config{
		StoragePath: v.GetString("storage_path"),
		LogLevel:    strings.ToLower(v.GetString("log_level")),
	}, nil
}

// ConfigFileUsed returns the path of the config file read by the last
// LoadConfig call, or "" when defaults and environment were enough.
func (cm *viperConfigManager) ConfigFileUsed() string {
	return cm.used
}

// ValidateConfig reports every invalid field at once.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	return criterio.ValidateStruct(
		criterio.Run("storage_path", cfg.StoragePath, validateStoragePath),
		criterio.Run("log_level", cfg.LogLevel, validateLogLevel),
	)
}

func validateStoragePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("must not be empty")
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

func validateLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}
