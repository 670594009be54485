package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/hireboard/hireboard/internal/report"
	"github.com/hireboard/hireboard/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleCandidates() []*models.Candidate {
	return []*models.Candidate{
		{
			Name:            "John Smith",
			Email:           "john.smith@email.com",
			Phone:           "+1-555-0123",
			JobTitle:        "Project Manager - Automation Projects",
			Status:          "interview",
			AppliedAt:       time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
			ScreeningScore:  intPtr(85),
			AssessmentScore: intPtr(78),
		},
		{
			Name:      "David Wilson",
			Email:     "david.wilson@email.com",
			Phone:     "+1-555-0127",
			JobTitle:  "Senior Automation Engineer",
			Status:    "screening",
			AppliedAt: time.Date(2025, 1, 11, 8, 30, 0, 0, time.UTC),
		},
	}
}

func TestCandidateCSV_LineAndFieldCounts(t *testing.T) {
	out := report.CandidateCSV(sampleCandidates())

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3) // header + 2 rows
	for i, line := range lines {
		assert.Len(t, strings.Split(line, ","), 8, "line %d", i)
	}
}

func TestCandidateCSV_Header(t *testing.T) {
	out := report.CandidateCSV(nil)
	assert.Equal(t, "Name,Email,Phone,Job Title,Status,Applied Date,Screening Score,Assessment Score", out)
}

func TestCandidateCSV_RowContents(t *testing.T) {
	out := report.CandidateCSV(sampleCandidates())
	lines := strings.Split(out, "\n")

	assert.Equal(t,
		"John Smith,john.smith@email.com,+1-555-0123,Project Manager - Automation Projects,interview,2025-01-15,85,78",
		lines[1])
}

func TestCandidateCSV_MissingScoresAreEmptyFields(t *testing.T) {
	out := report.CandidateCSV(sampleCandidates())
	lines := strings.Split(out, "\n")

	fields := strings.Split(lines[2], ",")
	assert.Equal(t, "", fields[6])
	assert.Equal(t, "", fields[7])
}

func TestCandidateCSV_EmptySetIsHeaderOnly(t *testing.T) {
	out := report.CandidateCSV([]*models.Candidate{})
	assert.Len(t, strings.Split(out, "\n"), 1)
}
