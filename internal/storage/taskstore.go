// Package storage persists the task collection as a single YAML file.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/valter-silva-au/task-cli/pkg/models"
	"gopkg.in/yaml.v3"
)

// TaskStore reads and writes the whole task collection as one unit.
//
// The store keeps no state between calls and takes no locks: two processes
// saving at the same time race, and the last rename wins.
type TaskStore interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
	Path() string
}

type fileTaskStore struct {
	path   string
	logger zerolog.Logger
}

// NewTaskStore creates a TaskStore backed by the YAML file at path. The file
// and its parent directory are created on first Load.
func NewTaskStore(path string, logger zerolog.Logger) TaskStore {
	return &fileTaskStore{path: path, logger: logger}
}

func (s *fileTaskStore) Path() string {
	return s.path
}

// Load decodes the task file. A missing file is bootstrapped to an empty
// collection and persisted so later loads see the same empty state.
func (s *fileTaskStore) Load() ([]models.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("path", s.path).Msg("task file not found, initializing empty collection")
			tasks := []models.Task{}
			if err := s.Save(tasks); err != nil {
				return nil, &StorageReadError{Path: s.path, Err: fmt.Errorf("initializing task file: %w", err)}
			}
			return tasks, nil
		}
		return nil, &StorageReadError{Path: s.path, Err: err}
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		return nil, &StorageReadError{Path: s.path, Err: err}
	}

	s.logger.Debug().Str("path", s.path).Int("count", len(tasks)).Msg("loaded tasks")
	return tasks, nil
}

// Save replaces the task file with the encoded collection. The data is
// written to a temporary file in the same directory and renamed over the
// target, so a crash never leaves a partially written file behind.
func (s *fileTaskStore) Save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	for i := range tasks {
		if err := validateRecord(tasks[i]); err != nil {
			return &StorageWriteError{Path: s.path, Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}

	data, err := encodeTasks(tasks)
	if err != nil {
		return &StorageWriteError{Path: s.path, Err: err}
	}

	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return &StorageWriteError{Path: s.path, Err: err}
	}

	s.logger.Debug().Str("path", s.path).Int("count", len(tasks)).Msg("saved tasks")
	return nil
}

func encodeTasks(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tasksNode(tasks)); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// tasksNode builds the document tree by hand. Descriptions are always
// double-quoted: yaml.v3 emits plain and block scalars that drop leading
// line breaks when read back.
func tasksNode(tasks []models.Task) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, t := range tasks {
		record := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		record.Content = append(record.Content,
			keyNode("id"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t.ID)},
			keyNode("description"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Description, Style: yaml.DoubleQuotedStyle},
			keyNode("status"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t.Status)},
			keyNode("created_at"), timestampNode(t.CreatedAt),
			keyNode("updated_at"), timestampNode(t.UpdatedAt),
		)
		seq.Content = append(seq.Content, record)
	}
	return seq
}

func keyNode(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
}

func timestampNode(t time.Time) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: t.Format(time.RFC3339Nano)}
}

func decodeTasks(data []byte) ([]models.Task, error) {
	tasks := []models.Task{}
	if len(bytes.TrimSpace(data)) == 0 {
		return tasks, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tasks); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	for i := range tasks {
		if err := validateRecord(tasks[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return tasks, nil
}

// validateRecord checks the structural shape of a single record. ID
// uniqueness across the collection is the caller's responsibility.
func validateRecord(t models.Task) error {
	if t.ID <= 0 {
		return fmt.Errorf("id must be a positive integer, got %d", t.ID)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("task %d: unknown status %q", t.ID, t.Status)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task %d: created_at is missing", t.ID)
	}
	if t.UpdatedAt.IsZero() {
		return fmt.Errorf("task %d: updated_at is missing", t.ID)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming: %w", err)
	}
	return nil
}
