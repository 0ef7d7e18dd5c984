package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/valter-silva-au/task-cli/internal/core"
	"github.com/valter-silva-au/task-cli/internal/storage"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

// useTempTaskFile points TaskMgr at a fresh task file for the duration of
// the test and returns the file path.
func useTempTaskFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	store := storage.NewTaskStore(path, zerolog.Nop())
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mgr := core.NewTaskManager(store, zerolog.Nop(), core.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	origTaskMgr := TaskMgr
	TaskMgr = mgr
	t.Cleanup(func() { TaskMgr = origTaskMgr })
	return path
}

// runCLI executes the root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = Execute()
	return out.String(), errOut.String(), err
}

func mustAdd(t *testing.T, id int, desc string) {
	t.Helper()
	if _, err := TaskMgr.AddTask(id, desc); err != nil {
		t.Fatalf("adding task %d: %v", id, err)
	}
}

func mustMark(t *testing.T, id int, status models.TaskStatus) {
	t.Helper()
	if _, err := TaskMgr.MarkTask(id, status); err != nil {
		t.Fatalf("marking task %d: %v", id, err)
	}
}

// stubTaskManager returns fixed results and records the calls it receives.
type stubTaskManager struct {
	tasks []models.Task
	err   error
	calls []string
}

func (s *stubTaskManager) AddTask(id int, description string) (*models.Task, error) {
	s.calls = append(s.calls, "add")
	return nil, s.err
}

func (s *stubTaskManager) UpdateTask(id int, description string) (*models.Task, error) {
	s.calls = append(s.calls, "update")
	return nil, s.err
}

func (s *stubTaskManager) DeleteTask(id int) error {
	s.calls = append(s.calls, "delete")
	return s.err
}

func (s *stubTaskManager) MarkTask(id int, status models.TaskStatus) (*models.Task, error) {
	s.calls = append(s.calls, "mark:"+string(status))
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			task := s.tasks[i]
			return &task, nil
		}
	}
	return nil, &core.NotFoundError{ID: id}
}

func (s *stubTaskManager) ListTasks(filter models.StatusFilter) ([]models.Task, error) {
	s.calls = append(s.calls, "list")
	if s.err != nil {
		return nil, s.err
	}
	var result []models.Task
	for _, t := range s.tasks {
		if filter.Matches(t.Status) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *stubTaskManager) GetTask(id int) (*models.Task, error) {
	s.calls = append(s.calls, "get")
	return nil, s.err
}

func useStub(t *testing.T, stub *stubTaskManager) {
	t.Helper()
	origTaskMgr := TaskMgr
	TaskMgr = stub
	t.Cleanup(func() { TaskMgr = origTaskMgr })
}
