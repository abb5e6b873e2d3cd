package orch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweep evicts peers silent for longer than idle and returns how many.
func (o *Orchestrator) Sweep(idle time.Duration) int {
	removed := o.Registry.RemoveIdle(idle)
	if len(removed) > 0 {
		o.logEvicted(removed, ReasonIdle)
	}
	return len(removed)
}

// RunSweeper calls Sweep every interval until ctx is done. A non-positive
// idle disables it.
func (o *Orchestrator) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	if idle <= 0 || interval <= 0 {
		log.Info().Str("module", "orch").Msg("idle sweep disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info().Str("module", "orch").Dur("interval", interval).Dur("idle", idle).Msg("idle sweep started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "orch").Msg("idle sweep stopped")
			return
		case <-ticker.C:
			if n := o.Sweep(idle); n > 0 {
				log.Info().Str("module", "orch").Int("evicted", n).Msg("idle sweep")
			}
		}
	}
}
