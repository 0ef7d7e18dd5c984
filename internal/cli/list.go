package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/internal/core"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

const listTimeLayout = "2006-01-02 15:04"

var listCmd = &cobra.Command{
	Use:   "list [todo|in-progress|done|all]",
	Short: "List tasks, optionally filtered by status",
	Long: `List tasks in the order they were added. Pass a status to show only
tasks with that status. The status is case-insensitive and defaults to all.`,
	Example: `  task-cli list
  task-cli list in-progress`,
	Args:              argsBetween(0, 1, "[todo|in-progress|done|all]"),
	ValidArgsFunction: completeStatusFilters,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTaskMgr(); err != nil {
			return err
		}

		filter := models.FilterAll
		if len(args) == 1 {
			parsed, err := models.ParseStatusFilter(args[0])
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return &core.ValidationError{Field: "status", Message: fmt.Sprintf("%q is not one of todo, in-progress, done, all", args[0])}
			}
			filter = parsed
		}

		var tasks []models.Task
		err := withProgress(cmd.ErrOrStderr(), "Loading tasks...", func() error {
			var listErr error
			tasks, listErr = TaskMgr.ListTasks(filter)
			return listErr
		})
		if err != nil {
			return err
		}

		renderTaskList(cmd.OutOrStdout(), tasks, filter)
		return nil
	},
}

func renderTaskList(w io.Writer, tasks []models.Task, filter models.StatusFilter) {
	if len(tasks) == 0 {
		if filter == models.FilterAll {
			fmt.Fprintln(w, "No tasks found.")
		} else {
			fmt.Fprintf(w, "No tasks with status %q.\n", filter)
		}
		return
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Description,
			string(t.Status),
			formatTime(t.CreatedAt),
			formatTime(t.UpdatedAt),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Description", "Status", "Created", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 2 && row >= 0 && row < len(tasks) {
				return styleForStatus(tasks[row].Status).Padding(0, 1)
			}
			return cell
		})

	fmt.Fprintln(w, tbl.Render())
	fmt.Fprintf(w, "Total: %d task(s)\n", len(tasks))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(listTimeLayout)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
