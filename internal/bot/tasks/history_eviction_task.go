package tasks

import (
	"context"
	"time"
)

// newHistoryEvictionTask creates the task that forgets conversations idle for
// longer than history.idle_ttl. A zero TTL keeps every conversation.
func newHistoryEvictionTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "history_eviction")

	return func(ctx context.Context) error {
		ttl := deps.Config.History.IdleTTL
		if ttl <= 0 {
			log.DebugContext(ctx, "Idle eviction disabled")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		startTime := time.Now()
		removed := deps.History.EvictIdle(ttl)

		log.InfoContext(ctx, "History eviction completed",
			"removed", removed,
			"remaining", deps.History.Len(),
			"idle_ttl", ttl,
			"duration", time.Since(startTime))
		return nil
	}
}
