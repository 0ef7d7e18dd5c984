package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

// newMarkCmd builds a mark-<status> command.
func newMarkCmd(status models.TaskStatus) *cobra.Command {
	return &cobra.Command{
		Use:               fmt.Sprintf("mark-%s <id>", status),
		Short:             fmt.Sprintf("Mark a task as %s", status),
		Args:              argsBetween(1, 1, "<id>"),
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
			err = withProgress(cmd.ErrOrStderr(), "Updating status...", func() error {
				var markErr error
				task, markErr = TaskMgr.MarkTask(id, status)
				return markErr
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked as %s\n", task.ID, task.Status)
			return nil
		},
	}
}

var (
	markInProgressCmd = newMarkCmd(models.StatusInProgress)
	markDoneCmd       = newMarkCmd(models.StatusDone)
	markTodoCmd       = newMarkCmd(models.StatusTodo)
)

func init() {
	rootCmd.AddCommand(markInProgressCmd, markDoneCmd, markTodoCmd)
}
