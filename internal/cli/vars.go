package cli

import (
	"github.com/rs/zerolog"
	"github.com/valter-silva-au/task-cli/internal/core"
)

// Service instances, set during app initialization in app.go.
var (
	TaskMgr     core.TaskManager
	Logger      = zerolog.Nop()
	StoragePath string
)
