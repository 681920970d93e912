package scheduler

import (
	"context"
	"time"

	"jobflow-engine/internal/logging"
)

type Task func(ctx context.Context) error

// Every runs task once right away and then on every tick until ctx is done.
// Errors are logged, never fatal. Runs never overlap.
func Every(ctx context.Context, log *logging.Logger, interval time.Duration, name string, task Task) {
	if log == nil {
		log = logging.Nop()
	}
	run := func() {
		if err := task(ctx); err != nil {
			log.Warn("scheduled task failed", "task", name, "err", err)
		}
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
