package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"golang-jobs-scryper/internal/entity"
)

func jobs(ids ...string) []entity.JobRecord {
	records := make([]entity.JobRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, entity.JobRecord{ID: id})
	}
	return records
}

func TestTracker_FilterUnseen(t *testing.T) {
	tr := NewTracker(time.Hour)

	first := tr.FilterUnseen(jobs("a", "b", "c"))
	assert.Len(t, first, 3, "nothing marked yet")

	tr.Mark(jobs("a", "b"))

	second := tr.FilterUnseen(jobs("a", "b", "c", "d"))
	ids := []string{}
	for _, r := range second {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "d"}, ids)
}

func TestTracker_Expiry(t *testing.T) {
	tr := NewTracker(20 * time.Millisecond)
	tr.Mark(jobs("a"))

	assert.Empty(t, tr.FilterUnseen(jobs("a")))

	time.Sleep(40 * time.Millisecond)
	assert.Len(t, tr.FilterUnseen(jobs("a")), 1, "expired entries are news again")
}
