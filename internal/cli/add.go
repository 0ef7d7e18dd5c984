package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

var addCmd = &cobra.Command{
	Use:   "add <id> <description...>",
	Short: "Add a new task",
	Long: `Add a new task with the given ID and description. The description is
every remaining argument joined by a single space. New tasks start in todo.`,
	Example: `  task-cli add 1 Buy groceries
  task-cli add 2 "Write the quarterly report"`,
	Args: argsBetween(2, -1, "<id> <description...>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTaskMgr(); err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		var task *models.Task
		err = withProgress(cmd.ErrOrStderr(), "Adding task...", func() error {
			var addErr error
			task, addErr = TaskMgr.AddTask(id, strings.Join(args[1:], " "))
			return addErr
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task %d added: %s\n", task.ID, task.Description)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
