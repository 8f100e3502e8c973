package scraper

import (
	"context"

	"golang-jobs-scryper/internal/entity"
	"golang-jobs-scryper/pkg/logger"
)

// JobSource provides paginated, pre-filtered job listings.
type JobSource interface {
	FetchPage(ctx context.Context, page int) ([]entity.JobRecord, error)
}

// FetchPages fetches pages start..end inclusive and concatenates the
// results. A page failure aborts the whole fetch: the caller gets nothing
// delivered on stale or partial data.
func FetchPages(ctx context.Context, src JobSource, start, end int, log *logger.Logger) ([]entity.JobRecord, error) {
	var all []entity.JobRecord
	for page := start; page <= end; page++ {
		records, err := src.FetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		log.Info("Fetched page",
			logger.Field("page", page),
			logger.Field("jobs", len(records)))
		all = append(all, records...)
	}
	return all, nil
}
