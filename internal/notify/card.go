package notify

import (
	"fmt"
	"strconv"
	"time"

	"golang-jobs-scryper/pkg/utils"
)

// ChatMessage is the Google Chat webhook payload (legacy card format).
type ChatMessage struct {
	Cards []Card `json:"cards"`
}

// Card is one chat card with a header and job sections.
type Card struct {
	Header   CardHeader `json:"header"`
	Sections []Section  `json:"sections"`
}

// CardHeader holds the card title block.
type CardHeader struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Section groups the widgets for one job entry or the footer.
type Section struct {
	Header  string   `json:"header,omitempty"`
	Widgets []Widget `json:"widgets"`
}

// Widget wraps a single text paragraph.
type Widget struct {
	TextParagraph *TextParagraph `json:"textParagraph,omitempty"`
}

// TextParagraph holds simple HTML-formatted text.
type TextParagraph struct {
	Text string `json:"text"`
}

// Renderer turns a MessageBatch into a webhook-ready card. Rendering is
// deterministic given the batch and the render timestamp; it never fails
// and never drops a record.
type Renderer struct {
	Title    string
	ImageURL string
}

// NewRenderer creates a card renderer with the given alert title.
func NewRenderer(title, imageURL string) *Renderer {
	return &Renderer{Title: title, ImageURL: imageURL}
}

// Render builds the card for one batch. totalMatched is the matched-job
// count for the whole run, not just this batch.
func (r *Renderer) Render(batch MessageBatch, totalMatched int, hoursBack float64, now time.Time) ChatMessage {
	card := Card{
		Header: CardHeader{
			Title:    r.Title,
			Subtitle: fmt.Sprintf("Found %d new positions in the last %s hours", totalMatched, formatHours(hoursBack)),
			ImageURL: r.ImageURL,
		},
	}

	offset := (batch.PartIndex - 1) * JobsPerMessage
	for i, job := range batch.Records {
		text := fmt.Sprintf(
			"<b>%s</b><br/>"+
				"📍 %s<br/>"+
				"🌐 %s<br/>"+
				"💼 %s | %s<br/>"+
				"🕐 %s • ID: %s<br/>"+
				"<a href=\"%s\">Apply Now →</a>",
			orPlaceholder(job.Title),
			orPlaceholder(job.Location),
			orPlaceholder(job.WorkFlexibility),
			orPlaceholder(job.Profession),
			orPlaceholder(job.Discipline),
			utils.TimeSince(job.PostedAt, now),
			orPlaceholder(job.ID),
			job.ApplyURL,
		)
		card.Sections = append(card.Sections, Section{
			Header:  fmt.Sprintf("#%d", offset+i+1),
			Widgets: []Widget{{TextParagraph: &TextParagraph{Text: text}}},
		})
	}

	footer := fmt.Sprintf("<i>Part %d of %d • %s</i>",
		batch.PartIndex, batch.PartCount, now.UTC().Format("2006-01-02 15:04:05 UTC"))
	card.Sections = append(card.Sections, Section{
		Widgets: []Widget{{TextParagraph: &TextParagraph{Text: footer}}},
	})

	return ChatMessage{Cards: []Card{card}}
}

func orPlaceholder(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
