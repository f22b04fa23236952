package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

var errCrashed = errors.New("crashed")

// guarded wraps fn for errgroup so a panic restores the terminal before the
// stack is printed, and surfaces as an error instead of killing the process
func guarded(screen tcell.Screen, logger *slog.Logger, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			screen.Fini()
			stack := debug.Stack()
			logger.Error("panic", "value", r, "stack", string(stack))
			fmt.Fprintf(os.Stderr, "\nCRASH DETECTED: %v\nStack Trace:\n%s\n", r, stack)
			err = fmt.Errorf("%w: %v", errCrashed, r)
		}()
		return fn()
	}
}
