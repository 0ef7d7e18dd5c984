package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

// completeTaskIDs returns task IDs for shell completion of the first
// positional argument.
func completeTaskIDs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || TaskMgr == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	tasks, err := TaskMgr.ListTasks(models.FilterAll)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, strconv.Itoa(task.ID)+"\t"+task.Description)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// completeStatusFilters returns the accepted list filters.
func completeStatusFilters(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	values := make([]string, 0, len(models.StatusFilterValues))
	for _, f := range models.StatusFilterValues {
		values = append(values, string(f))
	}
	return values, cobra.ShellCompDirectiveNoFileComp
}
