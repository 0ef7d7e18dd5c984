package models

// Config holds settings resolved at startup from defaults, the optional
// .taskcli.yaml file, TASKCLI_* environment variables and command-line flags.
type Config struct {
	StoragePath string `yaml:"storage_path" mapstructure:"storage_path"`
	LogLevel    string `yaml:"log_level" mapstructure:"log_level"`
}
