package recur

import (
	"context"
	"time"
)

// Watch runs passes on a fixed interval until ctx is cancelled. The first
// pass runs immediately. Passes never overlap; a slow pass simply delays
// the next tick.
//
// Pass-level errors do not stop the loop: the next scheduled pass is the
// retry. Each result is handed to onPass when non-nil.
func (e *Engine) Watch(ctx context.Context, interval time.Duration, onPass func(Report, error)) {
	run := func() {
		report, err := e.RunOnce(ctx)
		if err != nil {
			e.logger.Error().Err(err).Msg("pass failed")
		}
		if onPass != nil {
			onPass(report, err)
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
