package aggregation

import (
	"context"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/tillsync/internal/api/v1"
	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/aevon-lab/tillsync/internal/tenant"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// CycleRunner runs one ingestion cycle for a tenant.
type CycleRunner interface {
	RunCycle(ctx context.Context, t tenant.Tenant) (*v1.CycleSummary, error)
}

// ProfileLister enumerates registered tenants.
type ProfileLister interface {
	ListProfiles(ctx context.Context) ([]*aggregation.Profile, error)
}

// Scheduler polls every registered device on a fixed interval.
// It is stateless: each tick lists profiles again, so new tenants are picked up without
// a restart.
type Scheduler struct {
	interval    time.Duration
	concurrency int
	profiles    ProfileLister
	runner      CycleRunner
}

// NewScheduler creates a poller running at most concurrency cycles at once.
func NewScheduler(interval time.Duration, concurrency int, profiles ProfileLister, runner CycleRunner) *Scheduler {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Scheduler{
		interval:    interval,
		concurrency: concurrency,
		profiles:    profiles,
		runner:      runner,
	}
}

// Start polls until ctx is cancelled. The first sweep runs immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting device poll scheduler",
		"interval", s.interval,
		"concurrency", s.concurrency,
	)

	s.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

// Sweep runs one cycle per registered (business, device) pair and waits for all of them.
// Several users of one till share a single cycle. Individual cycle failures are logged;
// one tenant never blocks another.
func (s *Scheduler) Sweep(ctx context.Context) int {
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		slog.Error("[Scheduler] Failed to list profiles", "error", err)
		return 0
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	type device struct{ business, id string }
	seen := make(map[device]struct{}, len(profiles))

	started := 0
	for _, p := range profiles {
		t, err := tenant.FromProfile(p)
		if err != nil {
			slog.Debug("[Scheduler] Skipping profile without business or device", "uid", p.ID)
			continue
		}
		key := device{t.Business, t.DeviceID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if ctx.Err() != nil {
			slog.Info("[Scheduler] Sweep interrupted by context cancellation", "started", started)
			break
		}

		started++
		g.Go(func() error {
			if _, err := s.runner.RunCycle(ctx, t); err != nil {
				slog.Warn("[Scheduler] Cycle failed",
					"business", t.Business,
					"device_id", t.DeviceID,
					"error", err,
				)
			}
			return nil
		})
	}

	_ = g.Wait()
	slog.Debug("[Scheduler] Sweep complete", "cycles", started)
	return started
}
