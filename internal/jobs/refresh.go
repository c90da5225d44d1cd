// Package jobs runs the background maintenance schedule: periodically
// refetching stored users from AniList so cards stay current.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/RLAlpha49/AniCards-sub005/internal/anilist"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
	"github.com/RLAlpha49/AniCards-sub005/internal/metrics"
	"github.com/RLAlpha49/AniCards-sub005/internal/store"
)

// analyticsSubsystem labels the counters emitted by the refresh job
const analyticsSubsystem = "refresh"

// Refresh job analytics events
const (
	EventUsersRefreshed = "users_refreshed"
	EventRefreshFailed  = "refresh_failed"
)

// refreshTimeout bounds one user's refetch so a hung request cannot stall the run
const refreshTimeout = 30 * time.Second

// Refresher periodically rewrites every stored user's partitions from AniList
type Refresher struct {
	store   *store.Store
	anilist *anilist.Client
	counter metrics.Counter
	cron    *cron.Cron
}

// NewRefresher builds a Refresher with its own cron scheduler
func NewRefresher(st *store.Store, al *anilist.Client, counter metrics.Counter) *Refresher {
	if counter == nil {
		counter = metrics.Noop{}
	}
	return &Refresher{
		store:   st,
		anilist: al,
		counter: counter,
		cron:    cron.New(),
	}
}

// Start registers the refresh schedule and starts the scheduler.  The spec
// format is the standard 5-field cron expression.
func (r *Refresher) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, func() {
		r.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	r.cron.Start()
	log.Info("Refresh job scheduled", "spec", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RunOnce refreshes every stored user.  A single user's failure is logged and
// counted but never aborts the run.
func (r *Refresher) RunOnce(ctx context.Context) {
	names, err := r.store.Usernames(ctx)
	if err != nil {
		log.Error("Refresh run could not list usernames", "error", err)
		return
	}

	start := time.Now()
	refreshed, failed := 0, 0
	for _, name := range names {
		if ctx.Err() != nil {
			log.Warn("Refresh run cancelled", "refreshed", refreshed, "remaining", len(names)-refreshed-failed)
			return
		}
		if err := r.refreshUser(ctx, name); err != nil {
			failed++
			r.counter.Increment(metrics.Key(analyticsSubsystem, EventRefreshFailed))
			log.Warn("Failed to refresh user", "username", name, "error", err)
			continue
		}
		refreshed++
		r.counter.Increment(metrics.Key(analyticsSubsystem, EventUsersRefreshed))
	}

	log.Info("Refresh run complete",
		"users", len(names),
		"refreshed", refreshed,
		"failed", failed,
		"duration", time.Since(start).String(),
	)
}

func (r *Refresher) refreshUser(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	rec, err := r.anilist.FetchUserRecord(ctx, username)
	if err != nil {
		return err
	}
	return r.store.SaveUserRecord(ctx, rec)
}
