package worker

// poll_cron.go
// Background goroutine that periodically polls the payment gateway for the
// status of pending checkouts. Polling is bounded per payment: after the
// configured attempt cap the payment is abandoned as expired, so a silent
// gateway can never leave intents pending forever.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PendingPoller advances every pending payment one poll step.
type PendingPoller interface {
	PollPendientes(ctx context.Context, maxAttempts int) error
}

// StartPollCron launches a goroutine that ticks every delay and runs one poll
// pass. It respects the context for graceful shutdown.
func StartPollCron(ctx context.Context, poller PendingPoller, delay time.Duration, maxAttempts int) {
	go func() {
		ticker := time.NewTicker(delay)
		defer ticker.Stop()

		log.Info().Dur("delay", delay).Int("max_attempts", maxAttempts).Msg("poll_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("poll_cron: shutting down")
				return
			case <-ticker.C:
				if err := poller.PollPendientes(ctx, maxAttempts); err != nil {
					log.Error().Err(err).Msg("poll_cron: poll pass failed")
				}
			}
		}
	}()
}
