package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-jobs-scryper/internal/entity"
)

func makeRecords(n int) []entity.JobRecord {
	records := make([]entity.JobRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, entity.JobRecord{ID: fmt.Sprintf("job-%d", i)})
	}
	return records
}

func TestSplitBatches_Partition(t *testing.T) {
	for _, n := range []int{1, 3, 4, 5, 8, 9, 17} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			records := makeRecords(n)
			batches := SplitBatches(records)

			wantCount := (n + JobsPerMessage - 1) / JobsPerMessage
			require.Len(t, batches, wantCount)

			// concat(batches) == records, order preserved, no duplicates
			var flat []entity.JobRecord
			for i, b := range batches {
				assert.Equal(t, i+1, b.PartIndex)
				assert.Equal(t, wantCount, b.PartCount)
				assert.GreaterOrEqual(t, len(b.Records), 1)
				assert.LessOrEqual(t, len(b.Records), JobsPerMessage)
				flat = append(flat, b.Records...)
			}
			assert.Equal(t, records, flat)
		})
	}
}

func TestSplitBatches_TenRecords(t *testing.T) {
	batches := SplitBatches(makeRecords(10))

	require.Len(t, batches, 3)
	assert.Len(t, batches[0].Records, 4)
	assert.Len(t, batches[1].Records, 4)
	assert.Len(t, batches[2].Records, 2)
	for _, b := range batches {
		assert.Equal(t, 3, b.PartCount)
	}
}

func TestSplitBatches_Empty(t *testing.T) {
	assert.Empty(t, SplitBatches(nil))
	assert.Empty(t, SplitBatches([]entity.JobRecord{}))
}
