// Package report renders candidate lists for export.
package report

import (
	"strconv"
	"strings"

	"github.com/hireboard/hireboard/pkg/models"
)

var csvHeader = []string{
	"Name", "Email", "Phone", "Job Title", "Status",
	"Applied Date", "Screening Score", "Assessment Score",
}

// CandidateCSV builds the export: a header row plus one row per candidate,
// eight comma-joined fields each. Fields are plain-joined without quoting so
// the row and column counts stay deterministic; none of the exported fields
// legitimately contain commas.
func CandidateCSV(candidates []*models.Candidate) string {
	lines := make([]string, 0, len(candidates)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, c := range candidates {
		row := []string{
			c.Name,
			c.Email,
			c.Phone,
			c.JobTitle,
			c.Status,
			c.AppliedAt.Format("2006-01-02"),
			scoreField(c.ScreeningScore),
			scoreField(c.AssessmentScore),
		}
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

func scoreField(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}
