package dedup

import (
	"time"

	"github.com/patrickmn/go-cache"

	"golang-jobs-scryper/internal/entity"
)

// Tracker remembers which job IDs have already been notified, so repeated
// watch-mode runs do not re-announce the same listing. Entries expire after
// the configured TTL; a listing reposted much later is news again.
type Tracker struct {
	seen *cache.Cache
}

// NewTracker creates a tracker whose entries live for ttl.
func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		seen: cache.New(ttl, ttl/2),
	}
}

// FilterUnseen returns the records not yet marked, preserving order.
func (t *Tracker) FilterUnseen(records []entity.JobRecord) []entity.JobRecord {
	var fresh []entity.JobRecord
	for _, r := range records {
		if _, found := t.seen.Get(r.ID); found {
			continue
		}
		fresh = append(fresh, r)
	}
	return fresh
}

// Mark records the IDs as notified.
func (t *Tracker) Mark(records []entity.JobRecord) {
	for _, r := range records {
		t.seen.SetDefault(r.ID, struct{}{})
	}
}
