package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/internal/core"
)

// parseTaskID converts a positional argument into a task ID.
func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, &core.ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a number", arg)}
	}
	if id <= 0 {
		return 0, &core.ValidationError{Field: "id", Message: fmt.Sprintf("must be a positive integer, got %d", id)}
	}
	return id, nil
}

// argsBetween is like cobra.RangeArgs with hi < 0 meaning unbounded. It
// reports a ValidationError so the process exits with the validation code.
func argsBetween(lo, hi int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || (hi >= 0 && len(args) > hi) {
			return &core.ValidationError{Message: strings.TrimSpace(fmt.Sprintf("usage: %s %s", cmd.CommandPath(), usage))}
		}
		return nil
	}
}

func requireTaskMgr() error {
	if TaskMgr == nil {
		return fmt.Errorf("task manager not initialized")
	}
	return nil
}
