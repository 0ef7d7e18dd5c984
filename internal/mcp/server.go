// Package mcp provides an MCP (Model Context Protocol) server that exposes
// task operations as tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/valter-silva-au/task-cli/internal/core"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

// Server wraps a TaskManager and exposes it as MCP tools.
type Server struct {
	server  *gomcp.Server
	taskMgr core.TaskManager
	logger  zerolog.Logger
}

// NewServer creates a new MCP server backed by taskMgr.
func NewServer(taskMgr core.TaskManager, logger zerolog.Logger, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		taskMgr: taskMgr,
		logger:  logger,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "task-cli", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskOutput struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type listTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"filter tasks by status (todo, in-progress, done, all). Defaults to all."`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type taskIDInput struct {
	ID int `json:"id" jsonschema:"the numeric task ID"`
}

type taskInput struct {
	ID          int    `json:"id" jsonschema:"the numeric task ID"`
	Description string `json:"description" jsonschema:"the task description"`
}

type setTaskStatusInput struct {
	ID     int    `json:"id" jsonschema:"the numeric task ID"`
	Status string `json:"status" jsonschema:"the new status (todo, in-progress, done)"`
}

type messageOutput struct {
	Message string `json:"message"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks in insertion order with an optional status filter.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get a single task by its numeric ID.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Add a new task with a caller-chosen unique ID. New tasks start in todo.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task",
		Description: "Replace the description of an existing task.",
	}, s.handleUpdateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "set_task_status",
		Description: "Set a task's status. Valid statuses: todo, in-progress, done.",
	}, s.handleSetTaskStatus)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.taskMgr.ListTasks(models.StatusFilter(input.Status))
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i := range tasks {
		out.Tasks[i] = taskToOutput(&tasks[i])
	}
	return nil, out, nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.taskMgr.GetTask(input.ID)
	if err != nil {
		return errorResult(fmt.Sprintf("getting task %d: %s", input.ID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input taskInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.taskMgr.AddTask(input.ID, input.Description)
	if err != nil {
		return errorResult(fmt.Sprintf("adding task %d: %s", input.ID, err)), taskOutput{}, nil
	}
	s.logger.Debug().Int("id", task.ID).Msg("task added via mcp")
	return nil, taskToOutput(task), nil
}

func (s *Server) handleUpdateTask(_ context.Context, _ *gomcp.CallToolRequest, input taskInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.taskMgr.UpdateTask(input.ID, input.Description)
	if err != nil {
		return errorResult(fmt.Sprintf("updating task %d: %s", input.ID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, messageOutput, error) {
	if err := s.taskMgr.DeleteTask(input.ID); err != nil {
		return errorResult(fmt.Sprintf("deleting task %d: %s", input.ID, err)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %d deleted", input.ID)}, nil
}

func (s *Server) handleSetTaskStatus(_ context.Context, _ *gomcp.CallToolRequest, input setTaskStatusInput) (*gomcp.CallToolResult, taskOutput, error) {
	status, err := models.ParseStatus(input.Status)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}

	task, err := s.taskMgr.MarkTask(input.ID, status)
	if err != nil {
		return errorResult(fmt.Sprintf("setting status of task %d: %s", input.ID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

// --- Helpers ---

func taskToOutput(t *models.Task) taskOutput {
	return taskOutput{
		ID:          t.ID,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
