package oboard

import (
	"context"
	"sync"
	"time"
)

// refSnapshot is one consistent view of the reference data. Snapshots
// are replaced wholesale, never mutated: a reader holds either the old
// snapshot or the new one, never a mix.
type refSnapshot struct {
	cycles    []ReferenceEntry
	teams     []ReferenceEntry
	expiresAt time.Time
}

func (s *refSnapshot) fresh(now time.Time) bool {
	return s != nil &&
		len(s.cycles) > 0 && len(s.teams) > 0 &&
		now.Before(s.expiresAt)
}

// refCache holds the last-fetched cycles and teams with an expiry.
// The mutex serializes refreshes, so overlapping ensureFresh calls
// cannot interleave a partial write.
type refCache struct {
	mu   sync.Mutex
	snap *refSnapshot
}

// ensureFresh returns a usable snapshot, refreshing it via fetch when
// the current one is expired or empty. On a failed refresh the previous
// snapshot is left untouched — stale-but-consistent beats inconsistent —
// and the fetch error is returned alongside it.
func (c *refCache) ensureFresh(
	ctx context.Context,
	now time.Time,
	ttl time.Duration,
	fetch func(ctx context.Context) (cycles, teams []ReferenceEntry, err error),
) (*refSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap.fresh(now) {
		return c.snap, nil
	}

	cycles, teams, err := fetch(ctx)
	if err != nil {
		return c.snap, err
	}

	c.snap = &refSnapshot{
		cycles:    cycles,
		teams:     teams,
		expiresAt: now.Add(ttl),
	}
	return c.snap, nil
}
