package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/internal/logging"
	taskmcp "github.com/valter-silva-au/task-cli/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the task-cli MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the task-cli MCP server on stdio",
	Long: `Start the task-cli MCP server on stdio transport.

The server exposes the task file as MCP tools that AI assistants can call:
list_tasks, get_task, add_task, update_task, delete_task, set_task_status.`,
	Args: argsBetween(0, 0, ""),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTaskMgr(); err != nil {
			return err
		}

		srv := taskmcp.NewServer(TaskMgr, logging.Component(Logger, "mcp"), appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
