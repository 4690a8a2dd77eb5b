// Package tenant resolves a verified user identity to the business partition and the
// device that user's cycles pull from.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aevon-lab/tillsync/internal/core/aggregation"
	"github.com/aevon-lab/tillsync/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

// ErrUnknownTenant is returned when no usable profile exists for a uid.
var ErrUnknownTenant = errors.New("unknown tenant")

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = time.Minute
	lookupTimeout    = 5 * time.Second
)

// Tenant is the engine's view of a verified identity.
type Tenant struct {
	UID      string
	Business string
	DeviceID string
}

// FromProfile builds a Tenant, rejecting profiles that cannot drive a cycle.
func FromProfile(p *aggregation.Profile) (Tenant, error) {
	if p == nil || p.Business == "" || p.DeviceID == "" {
		return Tenant{}, ErrUnknownTenant
	}
	return Tenant{UID: p.ID, Business: p.Business, DeviceID: p.DeviceID}, nil
}

// ProfileReader is the slice of the document store the resolver needs.
type ProfileReader interface {
	GetProfile(ctx context.Context, uid string) (*aggregation.Profile, error)
}

// Resolver looks tenants up by uid, caching hits and deduplicating concurrent misses.
type Resolver struct {
	profiles ProfileReader
	cache    *lruCache
	group    singleflight.Group
}

// NewResolver returns a Resolver caching up to size tenants for ttl each.
func NewResolver(profiles ProfileReader, size int, ttl time.Duration) *Resolver {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Resolver{profiles: profiles, cache: newLRUCache(size, ttl)}
}

// Resolve returns the tenant for uid or ErrUnknownTenant.
func (r *Resolver) Resolve(ctx context.Context, uid string) (Tenant, error) {
	if uid == "" {
		return Tenant{}, ErrUnknownTenant
	}
	if t, ok := r.cache.get(uid); ok {
		return t, nil
	}

	// The lookup is shared by every concurrent caller, so it must not die with the
	// first caller's request. Each caller still stops waiting when its own ctx ends.
	lookupCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(uid, func() (interface{}, error) {
		if t, ok := r.cache.get(uid); ok {
			return t, nil
		}

		opCtx, cancel := context.WithTimeout(lookupCtx, lookupTimeout)
		defer cancel()

		p, err := r.profiles.GetProfile(opCtx, uid)
		if errors.Is(err, storage.ErrNotFound) {
			return Tenant{}, ErrUnknownTenant
		}
		if err != nil {
			return Tenant{}, fmt.Errorf("failed to load profile %s: %w", uid, err)
		}

		t, err := FromProfile(p)
		if err != nil {
			return Tenant{}, err
		}
		r.cache.put(t)
		return t, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Tenant{}, res.Err
		}
		return res.Val.(Tenant), nil
	case <-ctx.Done():
		return Tenant{}, ctx.Err()
	}
}

// Invalidate drops a cached tenant, e.g. after its profile changed.
func (r *Resolver) Invalidate(uid string) {
	r.cache.remove(uid)
}
