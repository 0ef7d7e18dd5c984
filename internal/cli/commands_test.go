package cli

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/valter-silva-au/task-cli/internal/core"
	"github.com/valter-silva-au/task-cli/internal/storage"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

// --- add ---

func TestAdd_JoinsDescriptionAndPersists(t *testing.T) {
	path := useTempTaskFile(t)

	stdout, _, err := runCLI(t, "add", "1", "Buy", "groceries")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "Task 1 added: Buy groceries\n" {
		t.Errorf("stdout = %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading task file: %v", err)
	}
	if !strings.Contains(string(data), `description: "Buy groceries"`) {
		t.Errorf("task file missing description:\n%s", data)
	}
	if !strings.Contains(string(data), "status: todo") {
		t.Errorf("new task should be todo:\n%s", data)
	}
}

func TestAdd_DuplicateID(t *testing.T) {
	useTempTaskFile(t)
	mustAdd(t, 1, "first")

	stdout, _, err := runCLI(t, "add", "1", "second")
	var conflict *core.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ExitCode(err) != ExitConflict {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitConflict)
	}
	if stdout != "" {
		t.Errorf("nothing should be printed on conflict, got %q", stdout)
	}

	task, _ := TaskMgr.GetTask(1)
	if task.Description != "first" {
		t.Errorf("existing task overwritten: %q", task.Description)
	}
}

func TestAdd_InvalidArguments(t *testing.T) {
	useTempTaskFile(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing description", []string{"add", "1"}},
		{"no arguments", []string{"add"}},
		{"non-numeric id", []string{"add", "one", "task"}},
		{"zero id", []string{"add", "0", "task"}},
		{"negative id", []string{"add", "--", "-3", "task"}},
		{"blank description", []string{"add", "1", "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			var validation *core.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ExitCode(err) != ExitValidation {
				t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitValidation)
			}
		})
	}

	tasks, err := TaskMgr.ListTasks(models.FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("invalid adds should not create tasks, got %d", len(tasks))
	}
}

// --- update ---

func TestUpdate_ChangesDescriptionOnly(t *testing.T) {
	useTempTaskFile(t)
	mustAdd(t, 2, "draft")
	mustMark(t, 2, models.StatusInProgress)
	before, _ := TaskMgr.GetTask(2)

	stdout, _, err := runCLI(t, "update", "2", "final", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "Task 2 updated: final version\n" {
		t.Errorf("stdout = %q", stdout)
	}

	after, _ := TaskMgr.GetTask(2)
	if after.Status != models.StatusInProgress {
		t.Errorf("status changed to %s", after.Status)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("created_at changed")
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updated_at did not advance")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	useTempTaskFile(t)

	_, _, err := runCLI(t, "update", "9", "nothing")
	if ExitCode(err) != ExitNotFound {
		t.Fatalf("ExitCode = %d, want %d (err: %v)", ExitCode(err), ExitNotFound, err)
	}
	if err.Error() != "task 9 not found" {
		t.Errorf("error = %q", err.Error())
	}
}

// --- delete ---

func TestDelete_RemovesTask(t *testing.T) {
	useTempTaskFile(t)
	mustAdd(t, 1, "a")
	mustAdd(t, 2, "b")
	mustAdd(t, 3, "c")

	stdout, _, err := runCLI(t, "delete", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "Task 2 deleted\n" {
		t.Errorf("stdout = %q", stdout)
	}

	tasks, _ := TaskMgr.ListTasks(models.FilterAll)
	if len(tasks) != 2 || tasks[0].ID != 1 || tasks[1].ID != 3 {
		t.Errorf("unexpected remaining tasks: %+v", tasks)
	}
}

func TestDelete_NotFoundAndArgs(t *testing.T) {
	useTempTaskFile(t)

	_, _, err := runCLI(t, "delete", "4")
	if ExitCode(err) != ExitNotFound {
		t.Errorf("missing id: ExitCode = %d, want %d", ExitCode(err), ExitNotFound)
	}

	_, _, err = runCLI(t, "delete", "1", "2")
	if ExitCode(err) != ExitValidation {
		t.Errorf("extra args: ExitCode = %d, want %d", ExitCode(err), ExitValidation)
	}
}

// --- mark ---

func TestMarkCommands(t *testing.T) {
	useTempTaskFile(t)
	mustAdd(t, 5, "ship it")

	steps := []struct {
		cmd    string
		status models.TaskStatus
	}{
		{"mark-in-progress", models.StatusInProgress},
		{"mark-done", models.StatusDone},
		{"mark-todo", models.StatusTodo},
		{"mark-done", models.StatusDone},
	}

	for _, step := range steps {
		stdout, _, err := runCLI(t, step.cmd, "5")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", step.cmd, err)
		}
		want := "Task 5 marked as " + string(step.status) + "\n"
		if stdout != want {
			t.Errorf("%s: stdout = %q, want %q", step.cmd, stdout, want)
		}
		task, _ := TaskMgr.GetTask(5)
		if task.Status != step.status {
			t.Errorf("%s: status = %s, want %s", step.cmd, task.Status, step.status)
		}
	}
}

func TestMark_Errors(t *testing.T) {
	useTempTaskFile(t)

	_, _, err := runCLI(t, "mark-done", "12")
	if ExitCode(err) != ExitNotFound {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitNotFound)
	}

	_, _, err = runCLI(t, "mark-in-progress", "abc")
	if ExitCode(err) != ExitValidation {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitValidation)
	}
}

// --- list ---

func TestList_Empty(t *testing.T) {
	useTempTaskFile(t)

	stdout, _, err := runCLI(t, "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "No tasks found.\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestList_AllInInsertionOrder(t *testing.T) {
	useTempTaskFile(t)
	mustAdd(t, 3, "third added first")
	mustAdd(t, 1, "second task")
	mustMark(t, 1, models.StatusDone)

	stdout, _, err := runCLI(t, "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"ID", "Description", "Status", "third added first", "second task", "done", "todo", "Total: 2 task(s)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Index(stdout, "third added first") > strings.Index(stdout, "second task") {
		t.Errorf("tasks not in insertion order:\n%s", stdout)
	}
}

func TestList_FilterIsCaseInsensitive(t *testing.T) {
	useTempTaskFile(t)
	mustAdd(t, 1, "waiting")
	mustAdd(t, 2, "working")
	mustMark(t, 2, models.StatusInProgress)

	stdout, _, err := runCLI(t, "list", "IN-PROGRESS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "working") || strings.Contains(stdout, "waiting") {
		t.Errorf("filter not applied:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Total: 1 task(s)") {
		t.Errorf("wrong total:\n%s", stdout)
	}
}

func TestList_FilterWithNoMatches(t *testing.T) {
	useTempTaskFile(t)
	mustAdd(t, 1, "waiting")

	stdout, _, err := runCLI(t, "list", "done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "No tasks with status \"done\".\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestList_InvalidStatusPrintsUsage(t *testing.T) {
	stub := &stubTaskManager{}
	useStub(t, stub)

	stdout, stderr, err := runCLI(t, "list", "blocked")
	if ExitCode(err) != ExitValidation {
		t.Fatalf("ExitCode = %d, want %d (err: %v)", ExitCode(err), ExitValidation, err)
	}
	if stdout != "" {
		t.Errorf("nothing should be printed on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("usage not printed on stderr: %q", stderr)
	}
	if len(stub.calls) != 0 {
		t.Errorf("task manager should not be called, got %v", stub.calls)
	}
}

// --- storage failures ---

func TestCommands_StorageReadErrorExitCode(t *testing.T) {
	path := useTempTaskFile(t)
	if err := os.WriteFile(path, []byte("- id: [broken\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{{"list"}, {"add", "1", "x"}, {"mark-done", "1"}, {"delete", "1"}} {
		_, _, err := runCLI(t, args...)
		var readErr *storage.StorageReadError
		if !errors.As(err, &readErr) {
			t.Errorf("%v: expected StorageReadError, got %v", args, err)
			continue
		}
		if ExitCode(err) != ExitStorage {
			t.Errorf("%v: ExitCode = %d, want %d", args, ExitCode(err), ExitStorage)
		}
	}
}

func TestCommands_NilTaskManager(t *testing.T) {
	origTaskMgr := TaskMgr
	defer func() { TaskMgr = origTaskMgr }()
	TaskMgr = nil

	for _, args := range [][]string{{"list"}, {"add", "1", "x"}, {"delete", "1"}, {"board"}} {
		_, _, err := runCLI(t, args...)
		if err == nil || !strings.Contains(err.Error(), "task manager not initialized") {
			t.Errorf("%v: unexpected error: %v", args, err)
		}
		if ExitCode(err) != ExitFailure {
			t.Errorf("%v: ExitCode = %d, want %d", args, ExitCode(err), ExitFailure)
		}
	}
}
