// Package core contains the task lifecycle rules and configuration loading
// for task-cli. Every operation loads the full collection, applies a single
// change and writes the collection back.
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

// TaskStore is the persistence contract the task manager depends on.
type TaskStore interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}

// TaskManager defines the interface for task lifecycle operations.
type TaskManager interface {
	AddTask(id int, description string) (*models.Task, error)
	UpdateTask(id int, description string) (*models.Task, error)
	DeleteTask(id int) error
	MarkTask(id int, status models.TaskStatus) (*models.Task, error)
	ListTasks(filter models.StatusFilter) ([]models.Task, error)
	GetTask(id int) (*models.Task, error)
}

// TaskManagerOption customizes a TaskManager.
type TaskManagerOption func(*taskManager)

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) TaskManagerOption {
	return func(tm *taskManager) {
		tm.now = now
	}
}

type taskManager struct {
	store  TaskStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewTaskManager creates a TaskManager on top of the given store. ID
// uniqueness is enforced here; the store only persists what it is given.
func NewTaskManager(store TaskStore, logger zerolog.Logger, opts ...TaskManagerOption) TaskManager {
	tm := &taskManager{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

func (tm *taskManager) AddTask(id int, description string) (*models.Task, error) {
	description, err := validateInput(id, description)
	if err != nil {
		return nil, err
	}

	tasks, err := tm.store.Load()
	if err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}
	if indexOf(tasks, id) >= 0 {
		return nil, &ConflictError{ID: id}
	}

	now := tm.now()
	task := models.Task{
		ID:          id,
		Description: description,
		Status:      models.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tasks = append(tasks, task)

	if err := tm.store.Save(tasks); err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}

	tm.logger.Info().Int("id", id).Msg("task added")
	return &task, nil
}

func (tm *taskManager) UpdateTask(id int, description string) (*models.Task, error) {
	description, err := validateInput(id, description)
	if err != nil {
		return nil, err
	}

	return tm.mutate("updating task", id, func(t *models.Task) {
		t.Description = description
	})
}

func (tm *taskManager) DeleteTask(id int) error {
	if err := validateID(id); err != nil {
		return err
	}

	tasks, err := tm.store.Load()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	idx := indexOf(tasks, id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}

	remaining := make([]models.Task, 0, len(tasks)-1)
	remaining = append(remaining, tasks[:idx]...)
	remaining = append(remaining, tasks[idx+1:]...)

	if err := tm.store.Save(remaining); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	tm.logger.Info().Int("id", id).Msg("task deleted")
	return nil
}

// MarkTask sets the status of a task. Marking a task with its current status
// still refreshes updated_at.
func (tm *taskManager) MarkTask(id int, status models.TaskStatus) (*models.Task, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("%q is not one of todo, in-progress, done", status)}
	}

	return tm.mutate("marking task", id, func(t *models.Task) {
		t.Status = status
	})
}

// ListTasks returns the tasks matching filter in their stored order.
func (tm *taskManager) ListTasks(filter models.StatusFilter) ([]models.Task, error) {
	if filter != "" {
		parsed, err := models.ParseStatusFilter(string(filter))
		if err != nil {
			return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("%q is not one of todo, in-progress, done, all", filter)}
		}
		filter = parsed
	}

	tasks, err := tm.store.Load()
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	if filter == "" || filter == models.FilterAll {
		return tasks, nil
	}

	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t.Status) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (tm *taskManager) GetTask(id int) (*models.Task, error) {
	tasks, err := tm.store.Load()
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}
	task := tasks[idx]
	return &task, nil
}

// mutate applies fn to the task with the given ID, bumps updated_at and
// persists the collection.
func (tm *taskManager) mutate(op string, id int, fn func(*models.Task)) (*models.Task, error) {
	tasks, err := tm.store.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}

	task := &tasks[idx]
	fn(task)
	task.UpdatedAt = tm.nextUpdatedAt(task.UpdatedAt)

	if err := tm.store.Save(tasks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tm.logger.Info().Int("id", id).Str("status", string(task.Status)).Msg(op)
	result := *task
	return &result, nil
}

// nextUpdatedAt returns a timestamp strictly after prev.
func (tm *taskManager) nextUpdatedAt(prev time.Time) time.Time {
	now := tm.now()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}

func indexOf(tasks []models.Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func validateID(id int) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Message: fmt.Sprintf("must be a positive integer, got %d", id)}
	}
	return nil
}

func validateInput(id int, description string) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", &ValidationError{Field: "description", Message: "must not be empty"}
	}
	return description, nil
}
