package aggregation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	v1 "github.com/aevon-lab/tillsync/internal/api/v1"
	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/aevon-lab/tillsync/internal/core/storage/memory"
	"github.com/aevon-lab/tillsync/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu      sync.Mutex
	ran     []string
	active  int32
	maxSeen int32
	delay   time.Duration
	fail    map[string]error
}

func (f *fakeRunner) RunCycle(_ context.Context, t tenant.Tenant) (*v1.CycleSummary, error) {
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	f.ran = append(f.ran, t.Business)
	f.mu.Unlock()

	if err := f.fail[t.Business]; err != nil {
		return nil, err
	}
	return &v1.CycleSummary{Business: t.Business}, nil
}

func seedProfiles(t *testing.T, store *memory.Store, profiles ...*aggregation.Profile) {
	t.Helper()
	for _, p := range profiles {
		require.NoError(t, store.UpsertProfile(context.Background(), p))
	}
}

func TestScheduler_SweepRunsEveryValidTenant(t *testing.T) {
	store := memory.NewStore()
	seedProfiles(t, store,
		&aggregation.Profile{ID: "uid-1", Business: "biz-1", DeviceID: "till-1"},
		&aggregation.Profile{ID: "uid-2", Business: "biz-2", DeviceID: "till-2"},
		&aggregation.Profile{ID: "uid-3", Business: "biz-3"}, // no device yet
	)

	runner := &fakeRunner{fail: map[string]error{"biz-1": errors.New("device offline")}}
	s := NewScheduler(time.Hour, 2, store, runner)

	started := s.Sweep(context.Background())
	assert.Equal(t, 2, started)
	assert.ElementsMatch(t, []string{"biz-1", "biz-2"}, runner.ran)
}

func TestScheduler_SweepPullsSharedDeviceOnce(t *testing.T) {
	store := memory.NewStore()
	seedProfiles(t, store,
		&aggregation.Profile{ID: "uid-owner", Business: "biz-1", DeviceID: "till-1"},
		&aggregation.Profile{ID: "uid-barista", Business: "biz-1", DeviceID: "till-1"},
		&aggregation.Profile{ID: "uid-second-till", Business: "biz-1", DeviceID: "till-2"},
	)

	runner := &fakeRunner{}
	s := NewScheduler(time.Hour, 4, store, runner)

	assert.Equal(t, 2, s.Sweep(context.Background()))
	assert.Equal(t, []string{"biz-1", "biz-1"}, runner.ran)
}

func TestScheduler_SweepRespectsConcurrencyLimit(t *testing.T) {
	store := memory.NewStore()
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		seedProfiles(t, store, &aggregation.Profile{ID: "uid-" + id, Business: "biz-" + id, DeviceID: "till-" + id})
	}

	runner := &fakeRunner{delay: 20 * time.Millisecond}
	s := NewScheduler(time.Hour, 2, store, runner)

	assert.Equal(t, 6, s.Sweep(context.Background()))
	assert.Len(t, runner.ran, 6)
	assert.LessOrEqual(t, atomic.LoadInt32(&runner.maxSeen), int32(2))
}

func TestScheduler_StartStopsOnCancel(t *testing.T) {
	store := memory.NewStore()
	seedProfiles(t, store, &aggregation.Profile{ID: "uid-1", Business: "biz-1", DeviceID: "till-1"})

	runner := &fakeRunner{}
	s := NewScheduler(10*time.Millisecond, 1, store, runner)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		runner.mu.Lock()
		defer runner.mu.Unlock()
		return len(runner.ran) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
