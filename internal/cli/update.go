package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

var updateCmd = &cobra.Command{
	Use:   "update <id> <description...>",
	Short: "Change the description of a task",
	Long: `Replace the description of an existing task. The status and created_at
timestamp are kept; updated_at is refreshed.`,
	Example:           `  task-cli update 1 Buy groceries and cook dinner`,
	Args:              argsBetween(2, -1, "<id> <description...>"),
	ValidArgsFunction: completeTaskIDs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTaskMgr(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		var task *models.Task
		err = withProgress(cmd.ErrOrStderr(), "Updating task...", func() error {
			var updateErr error
			task, updateErr = TaskMgr.UpdateTask(id, strings.Join(args[1:], " "))
			return updateErr
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task %d updated: %s\n", task.ID, task.Description)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
