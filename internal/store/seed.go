package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hireboard/hireboard/internal/pipeline"
	"github.com/hireboard/hireboard/pkg/models"
)

// DemoCompanyID owns all seeded demo records.
const DemoCompanyID = "demo"

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// SeedDemo loads the demo fixture: two published jobs and five candidates
// spread across the pipeline. Used by demo mode and the test suite.
func (s *MemoryStore) SeedDemo(ctx context.Context) error {
	jobs := []*models.Job{
		{
			ID:          "project-manager",
			Title:       "Project Manager - Automation Projects",
			Department:  "Project Management",
			Location:    "San Francisco, CA",
			Type:        models.EmploymentFullTime,
			Salary:      "$120K - $150K",
			Experience:  "5+ years",
			Description: "We are seeking an experienced Project Manager with a strong background in automation projects to join our dynamic team.",
			Requirements: []string{
				"5+ years of project management experience",
				"PMP certification preferred",
				"Experience with automation tools",
				"Strong leadership skills",
			},
			Responsibilities: []string{
				"Lead automation projects from conception to deployment",
				"Manage cross-functional teams",
				"Ensure successful project delivery",
				"Coordinate with stakeholders",
			},
			Benefits: []string{
				"Competitive salary",
				"Health insurance",
				"Flexible work arrangements",
				"Professional development budget",
			},
			Status:    pipeline.JobPublished,
			CompanyID: DemoCompanyID,
			CreatedBy: DemoCompanyID,
		},
		{
			ID:          "automation-engineer",
			Title:       "Senior Automation Engineer",
			Department:  "Engineering",
			Location:    "Remote",
			Type:        models.EmploymentFullTime,
			Salary:      "$130K - $160K",
			Experience:  "4+ years",
			Description: "Design and implement automation solutions using cutting-edge technologies.",
			Requirements: []string{
				"4+ years automation experience",
				"Python/JavaScript expertise",
				"RPA tools knowledge",
				"Problem-solving skills",
			},
			Responsibilities: []string{
				"Design automation solutions",
				"Implement RPA workflows",
				"Collaborate with development teams",
				"Optimize existing processes",
			},
			Benefits: []string{
				"Competitive salary",
				"Remote work options",
				"Learning opportunities",
				"Stock options",
			},
			Status:    pipeline.JobPublished,
			CompanyID: DemoCompanyID,
			CreatedBy: DemoCompanyID,
		},
	}

	candidates := []*models.Candidate{
		{
			Name:            "John Smith",
			Email:           "john.smith@email.com",
			Phone:           "+1-555-0123",
			JobID:           "project-manager",
			JobTitle:        "Project Manager - Automation Projects",
			CompanyID:       DemoCompanyID,
			Status:          pipeline.CandidateInterview,
			AppliedAt:       time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
			ScreeningScore:  intPtr(85),
			AssessmentScore: intPtr(78),
			Notes:           strPtr("Strong technical background, good communication skills"),
		},
		{
			Name:           "Sarah Johnson",
			Email:          "sarah.johnson@email.com",
			Phone:          "+1-555-0124",
			JobID:          "project-manager",
			JobTitle:       "Project Manager - Automation Projects",
			CompanyID:      DemoCompanyID,
			Status:         pipeline.CandidateAssessment,
			AppliedAt:      time.Date(2025, 1, 14, 14, 20, 0, 0, time.UTC),
			ScreeningScore: intPtr(92),
			Notes:          strPtr("Excellent experience with automation projects"),
		},
		{
			Name:            "Mike Chen",
			Email:           "mike.chen@email.com",
			Phone:           "+1-555-0125",
			JobID:           "automation-engineer",
			JobTitle:        "Senior Automation Engineer",
			CompanyID:       DemoCompanyID,
			Status:          pipeline.CandidateSelected,
			AppliedAt:       time.Date(2025, 1, 13, 11, 15, 0, 0, time.UTC),
			ScreeningScore:  intPtr(88),
			AssessmentScore: intPtr(85),
			InterviewScore:  intPtr(90),
			Notes:           strPtr("Outstanding technical skills, great cultural fit"),
		},
		{
			Name:           "Emily Davis",
			Email:          "emily.davis@email.com",
			Phone:          "+1-555-0126",
			JobID:          "project-manager",
			JobTitle:       "Project Manager - Automation Projects",
			CompanyID:      DemoCompanyID,
			Status:         pipeline.CandidateRejected,
			AppliedAt:      time.Date(2025, 1, 12, 16, 45, 0, 0, time.UTC),
			ScreeningScore: intPtr(65),
			Notes:          strPtr("Insufficient experience with automation tools"),
		},
		{
			Name:      "David Wilson",
			Email:     "david.wilson@email.com",
			Phone:     "+1-555-0127",
			JobID:     "automation-engineer",
			JobTitle:  "Senior Automation Engineer",
			CompanyID: DemoCompanyID,
			Status:    pipeline.CandidateScreening,
			AppliedAt: time.Date(2025, 1, 11, 8, 30, 0, 0, time.UTC),
			Notes:     strPtr("Recently applied, pending initial review"),
		},
	}

	for _, job := range jobs {
		if err := s.CreateJob(ctx, job); err != nil {
			return fmt.Errorf("seed job %s: %w", job.ID, err)
		}
	}
	for _, c := range candidates {
		if err := s.CreateCandidate(ctx, c); err != nil {
			return fmt.Errorf("seed candidate %s: %w", c.Name, err)
		}
	}
	return nil
}
