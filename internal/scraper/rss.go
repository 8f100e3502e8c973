package scraper

import (
	"context"

	"github.com/mmcdole/gofeed"

	"golang-jobs-scryper/internal/entity"
	"golang-jobs-scryper/pkg/logger"
)

// RSSSource maps job-board feed items to JobRecords, for boards that
// publish listings over RSS/Atom instead of a search API. Feeds carry no
// pagination; every page past the first is empty.
type RSSSource struct {
	feeds  []string
	parser *gofeed.Parser
	log    *logger.Logger
}

// NewRSSSource creates a feed-backed job source.
func NewRSSSource(feeds []string, log *logger.Logger) *RSSSource {
	return &RSSSource{
		feeds:  feeds,
		parser: gofeed.NewParser(),
		log:    log,
	}
}

// FetchPage returns every item across the configured feeds for page 1 and
// nothing for later pages.
func (s *RSSSource) FetchPage(ctx context.Context, page int) ([]entity.JobRecord, error) {
	if page > 1 {
		return nil, nil
	}

	var records []entity.JobRecord
	for _, feedURL := range s.feeds {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range feed.Items {
			records = append(records, itemToRecord(feed, item))
		}
		s.log.Info("Fetched feed",
			logger.Field("feed", feedURL),
			logger.Field("items", len(feed.Items)))
	}
	return records, nil
}

func itemToRecord(feed *gofeed.Feed, item *gofeed.Item) entity.JobRecord {
	rec := entity.JobRecord{
		ID:          item.GUID,
		Title:       item.Title,
		Description: StripHTML(item.Description, descriptionLimit),
		ApplyURL:    item.Link,
	}
	if rec.ID == "" {
		rec.ID = item.Link
	}
	if item.PublishedParsed != nil {
		rec.PostedAt = item.PublishedParsed.UTC()
	}
	if len(item.Categories) > 0 {
		rec.Profession = item.Categories[0]
	}
	if feed != nil {
		rec.Location = feed.Title
	}
	return rec
}
