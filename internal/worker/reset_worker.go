package worker

import (
	"context"
	"time"

	"github.com/lectorank/lectorank-backend/internal/config"
	"github.com/lectorank/lectorank-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// resetMarkerTTL keeps the per-date marker around long past the day it
// guards, so restarts within the same day never re-run the reset.
const resetMarkerTTL = 48 * time.Hour

// ResetWorker restores every account's daily vote budget once per calendar
// date. A Redis SetNX marker makes the reset idempotent across replicas.
type ResetWorker struct {
	voteService *service.VoteService
	rdb         *redis.Client
	interval    time.Duration
	log         zerolog.Logger
}

// NewResetWorker creates a new ResetWorker.
func NewResetWorker(voteService *service.VoteService, rdb *redis.Client, interval time.Duration, log zerolog.Logger) *ResetWorker {
	return &ResetWorker{
		voteService: voteService,
		rdb:         rdb,
		interval:    interval,
		log:         log.With().Str("component", "reset_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled. It checks once at
// startup so a process that was down over midnight catches up immediately.
func (w *ResetWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("ResetWorker started")

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ResetWorker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ResetWorker) runOnce(ctx context.Context) {
	date := time.Now().Format("2006-01-02")
	key := config.CacheKey.QuotaResetMarkerKey(date)

	ok, err := w.rdb.SetNX(ctx, key, "1", resetMarkerTTL).Result()
	if err != nil {
		w.log.Error().Err(err).Msg("Reset marker check failed")
		return
	}
	if !ok {
		// Another replica, or an earlier tick, already reset today.
		return
	}

	affected, err := w.voteService.Reset(ctx)
	if err != nil {
		// Drop the marker so the next tick retries.
		w.rdb.Del(context.WithoutCancel(ctx), key)
		w.log.Error().Err(err).Msg("Daily quota reset failed")
		return
	}

	w.log.Info().
		Str("date", date).
		Int64("accounts", affected).
		Msg("Daily vote quotas reset")
}
