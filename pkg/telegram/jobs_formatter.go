package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-jobs-scryper/internal/entity"
	"golang-jobs-scryper/pkg/utils"
)

// Telegram rejects messages over 4096 characters; leave headroom for the
// part header.
const maxMessageLen = 4090

// FormatJobsDigest formats job records into one or more HTML strings for
// Telegram, splitting into parts so no message exceeds the length cap.
func FormatJobsDigest(jobs []entity.JobRecord, now time.Time) []string {
	if len(jobs) == 0 {
		return []string{"No new job listings right now."}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("💼 <b>New Job Listings</b> (%d found)\n\n", len(jobs)))
		} else {
			current.WriteString(fmt.Sprintf("--- <b>New Job Listings, Part %d</b> ---\n\n", part))
		}
	}

	startNewPart()

	for _, job := range jobs {
		entry := formatJobEntry(job, now)

		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}

	messages = append(messages, current.String())
	return messages
}

func formatJobEntry(job entity.JobRecord, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔥 <b>%s</b>\n", job.Title))
	if job.Location != "" {
		b.WriteString(fmt.Sprintf("📍 %s\n", job.Location))
	}
	if job.WorkFlexibility != "" {
		b.WriteString(fmt.Sprintf("🌐 %s\n", job.WorkFlexibility))
	}
	if job.Profession != "" || job.Discipline != "" {
		b.WriteString(fmt.Sprintf("🛠 %s | %s\n", job.Profession, job.Discipline))
	}
	b.WriteString(fmt.Sprintf("🕐 %s\n", utils.TimeSince(job.PostedAt, now)))
	b.WriteString(fmt.Sprintf("🔗 <a href=\"%s\">Apply Now</a>\n\n", job.ApplyURL))
	return b.String()
}

// FormatRunError formats a watch-run failure alert.
func FormatRunError(err error) string {
	return fmt.Sprintf("⚠️ <b>Job watch run failed</b>:\n%v", err)
}
