package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-jobs-scryper/internal/entity"
)

var renderNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleBatch() MessageBatch {
	return MessageBatch{
		Records: []entity.JobRecord{
			{
				ID:              "1794812",
				Title:           "Senior Software Engineer",
				Location:        "Redmond, Washington, United States",
				WorkFlexibility: "Hybrid",
				Profession:      "Software Engineering",
				Discipline:      "Software Engineering",
				PostedAt:        renderNow.Add(-2 * time.Hour),
				ApplyURL:        "https://example.com/job/1794812",
			},
		},
		PartIndex: 2,
		PartCount: 3,
	}
}

func TestRender_HeaderAndFooter(t *testing.T) {
	r := NewRenderer("New Jobs Alert", "https://example.com/logo.png")
	msg := r.Render(sampleBatch(), 9, 4, renderNow)

	require.Len(t, msg.Cards, 1)
	card := msg.Cards[0]

	assert.Equal(t, "New Jobs Alert", card.Header.Title)
	assert.Contains(t, card.Header.Subtitle, "9 new positions", "header carries the run total, not the batch size")
	assert.Contains(t, card.Header.Subtitle, "last 4 hours")

	// one section per record plus the footer
	require.Len(t, card.Sections, 2)
	footer := card.Sections[len(card.Sections)-1].Widgets[0].TextParagraph.Text
	assert.Contains(t, footer, "Part 2 of 3")
	assert.Contains(t, footer, "2025-06-01 12:00:00 UTC")
}

func TestRender_JobEntry(t *testing.T) {
	r := NewRenderer("New Jobs Alert", "")
	msg := r.Render(sampleBatch(), 9, 4, renderNow)

	entry := msg.Cards[0].Sections[0]
	assert.Equal(t, "#5", entry.Header, "numbering continues across parts")

	text := entry.Widgets[0].TextParagraph.Text
	assert.Contains(t, text, "<b>Senior Software Engineer</b>")
	assert.Contains(t, text, "Redmond, Washington, United States")
	assert.Contains(t, text, "Hybrid")
	assert.Contains(t, text, "2h ago")
	assert.Contains(t, text, `<a href="https://example.com/job/1794812">Apply Now`)
}

func TestRender_MissingFieldsGetPlaceholders(t *testing.T) {
	batch := MessageBatch{
		Records:   []entity.JobRecord{{Title: "Data Scientist", PostedAt: renderNow.Add(-time.Hour)}},
		PartIndex: 1,
		PartCount: 1,
	}
	r := NewRenderer("New Jobs Alert", "")
	msg := r.Render(batch, 1, 4, renderNow)

	// record is rendered, not dropped: part counts stay consistent
	require.Len(t, msg.Cards[0].Sections, 2)
	text := msg.Cards[0].Sections[0].Widgets[0].TextParagraph.Text
	assert.Contains(t, text, "N/A")
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer("New Jobs Alert", "")
	a, _ := json.Marshal(r.Render(sampleBatch(), 9, 4, renderNow))
	b, _ := json.Marshal(r.Render(sampleBatch(), 9, 4, renderNow))
	assert.Equal(t, a, b)
}

func TestRender_FractionalHoursLabel(t *testing.T) {
	r := NewRenderer("New Jobs Alert", "")
	msg := r.Render(sampleBatch(), 1, 0.5, renderNow)
	assert.Contains(t, msg.Cards[0].Header.Subtitle, "0.5 hours")
}
