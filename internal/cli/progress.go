package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/term"
)

// isTerminal reports whether w is a terminal. Overridden in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// withProgress runs fn while drawing a spinner and label on w. Nothing is
// drawn when w is not a terminal. The spinner line is erased before
// withProgress returns.
func withProgress(w io.Writer, label string, fn func() error) error {
	if !isTerminal(w) {
		return fn()
	}

	frames := spinner.Dot.Frames
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(spinner.Dot.FPS)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], label)
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()

	err := fn()
	close(done)
	wg.Wait()
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(label)+4))
	return err
}
