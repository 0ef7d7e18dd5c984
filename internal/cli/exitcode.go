package cli

import (
	"errors"

	"github.com/valter-silva-au/task-cli/internal/core"
	"github.com/valter-silva-au/task-cli/internal/storage"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitConflict   = 4
	ExitStorage    = 5
)

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		conflictErr   *core.ConflictError
		readErr       *storage.StorageReadError
		writeErr      *storage.StorageWriteError
	)
	switch {
	case errors.As(err, &validationErr):
		return ExitValidation
	case errors.As(err, &notFoundErr):
		return ExitNotFound
	case errors.As(err, &conflictErr):
		return ExitConflict
	case errors.As(err, &readErr), errors.As(err, &writeErr):
		return ExitStorage
	default:
		return ExitFailure
	}
}
