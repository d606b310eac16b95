package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs during shutdown.
type Hook func(ctx context.Context) error

// OnStop registers hooks that run after the task, before components are
// stopped. They run even when startup failed.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks in order and returns the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
