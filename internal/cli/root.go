package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// Options carries the global flag values used to build the app.
type Options struct {
	ConfigFile  string
	StoragePath string
	LogLevel    string
}

// AppFactory builds and wires the services for a command invocation.
type AppFactory func(opts Options) error

var appFactory AppFactory

// SetAppFactory registers the function that initializes package-level
// services once global flags are parsed.
func SetAppFactory(f AppFactory) {
	appFactory = f
}

// skipInitAnnotation marks commands that never touch the task file.
const skipInitAnnotation = "task-cli/skip-init"

var globalOpts Options

var rootCmd = &cobra.Command{
	Use:   "task-cli",
	Short: "Track tasks from the command line",
	Long: `task-cli keeps a list of tasks in a single YAML file and moves them
through the todo -> in-progress -> done lifecycle.

Each command loads the task file, applies one change and writes it back
atomically. The file location comes from --storage, TASKCLI_STORAGE_PATH,
the storage_path key in .taskcli.yaml, or defaults to tasks.yaml next to
the executable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appFactory == nil || skipsInit(cmd) {
			return nil
		}
		if err := appFactory(globalOpts); err != nil {
			return fmt.Errorf("initializing task-cli: %w", err)
		}
		return nil
	},
}

// skipsInit reports whether cmd or one of its parents never needs the task
// file. Shell completion scripts and help are generated without it.
func skipsInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipInitAnnotation] == "true" {
			return true
		}
		if c.Name() == "completion" || c.Name() == "help" {
			return true
		}
	}
	return false
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipInitAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "task-cli %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.ConfigFile, "config", "", "Path to a config file (default: .taskcli.yaml in the config directory)")
	flags.StringVar(&globalOpts.StoragePath, "storage", "", "Path to the task file (overrides config and TASKCLI_STORAGE_PATH)")
	flags.StringVar(&globalOpts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
