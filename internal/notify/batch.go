package notify

import "golang-jobs-scryper/internal/entity"

// JobsPerMessage is the maximum number of job records rendered into one
// webhook message. Google Chat cards get unwieldy past this.
const JobsPerMessage = 4

// MessageBatch is one delivery unit: an ordered slice of records plus its
// position within the run.
type MessageBatch struct {
	Records   []entity.JobRecord
	PartIndex int // 1-based
	PartCount int
}

// SplitBatches partitions records into ceil(N/JobsPerMessage) batches of at
// most JobsPerMessage records each, preserving order. The last batch holds
// the remainder. An empty input produces no batches.
func SplitBatches(records []entity.JobRecord) []MessageBatch {
	if len(records) == 0 {
		return nil
	}

	count := (len(records) + JobsPerMessage - 1) / JobsPerMessage
	batches := make([]MessageBatch, 0, count)

	for i := 0; i < count; i++ {
		start := i * JobsPerMessage
		end := start + JobsPerMessage
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, MessageBatch{
			Records:   records[start:end],
			PartIndex: i + 1,
			PartCount: count,
		})
	}
	return batches
}
