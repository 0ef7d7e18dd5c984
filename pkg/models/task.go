package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the current lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// Statuses lists every valid TaskStatus in lifecycle order.
var Statuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known lifecycle states.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts user input into a TaskStatus, ignoring case and
// surrounding whitespace.
func ParseStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q, must be one of: todo, in-progress, done", s)
	}
	return status, nil
}

// StatusFilter selects tasks by status when listing. FilterAll matches every task.
type StatusFilter string

const FilterAll StatusFilter = "all"

// StatusFilterValues lists every accepted filter value.
var StatusFilterValues = []StatusFilter{
	StatusFilter(StatusTodo),
	StatusFilter(StatusInProgress),
	StatusFilter(StatusDone),
	FilterAll,
}

// ParseStatusFilter converts user input into a StatusFilter. Empty input
// means FilterAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return FilterAll, nil
	}
	for _, f := range StatusFilterValues {
		if StatusFilter(normalized) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid status %q, must be one of: todo, in-progress, done, all", s)
}

// Matches reports whether a task with the given status passes the filter.
func (f StatusFilter) Matches(status TaskStatus) bool {
	return f == FilterAll || f == "" || TaskStatus(f) == status
}

// Task is a trackable unit of work. ID is assigned by the user and must be
// unique within the collection.
type Task struct {
	ID          int        `yaml:"id" json:"id"`
	Description string     `yaml:"description" json:"description"`
	Status      TaskStatus `yaml:"status" json:"status"`
	CreatedAt   time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `yaml:"updated_at" json:"updated_at"`
}
