package notify

import (
	"time"

	"golang-jobs-scryper/internal/entity"
)

// FilterRecent returns the records whose PostedAt falls inside
// [now-hours, now], preserving input order. Records with a zero PostedAt
// (missing or unparseable source timestamp) are excluded rather than
// treated as errors. hours of 0 yields an empty result: no record sits in
// a zero-width window.
func FilterRecent(records []entity.JobRecord, hours float64, now time.Time) []entity.JobRecord {
	window := time.Duration(hours * float64(time.Hour))
	cutoff := now.Add(-window)

	var recent []entity.JobRecord
	for _, r := range records {
		if r.PostedAt.IsZero() {
			continue
		}
		if r.PostedAt.Before(cutoff) || r.PostedAt.After(now) {
			continue
		}
		recent = append(recent, r)
	}
	return recent
}
