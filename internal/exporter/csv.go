package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"golang-jobs-scryper/internal/entity"
)

var csvHeader = []string{
	"job_id", "title", "posting_date", "location", "work_flexibility",
	"profession", "discipline", "role_type", "employment_type",
	"description", "apply_url",
}

// WriteCSV writes the records to path as a CSV with a header row,
// overwriting any existing file.
func WriteCSV(path string, records []entity.JobRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Title,
			formatPostingDate(r.PostedAt),
			r.Location,
			r.WorkFlexibility,
			r.Profession,
			r.Discipline,
			r.RoleType,
			r.EmploymentType,
			r.Description,
			r.ApplyURL,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for job %s: %w", r.ID, err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatPostingDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
