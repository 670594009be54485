package models

import "time"

// Candidate is a person who applied to a Job, tracked through the hiring
// pipeline. JobTitle is a denormalized snapshot taken at application time so
// candidate rows stay displayable after the referenced job is deleted.
// Scores are nil until the corresponding stage has been evaluated.
type Candidate struct {
	ID              string    `db:"id"               json:"id"`
	Name            string    `db:"name"             json:"name"`
	Email           string    `db:"email"            json:"email"`
	Phone           string    `db:"phone"            json:"phone"`
	JobID           string    `db:"job_id"           json:"job_id"`
	JobTitle        string    `db:"job_title"        json:"job_title"`
	CompanyID       string    `db:"company_id"       json:"company_id"`
	Qualification   string    `db:"qualification"    json:"qualification"`
	Designation     string    `db:"designation"      json:"designation"`
	Department      string    `db:"department"       json:"department"`
	Status          string    `db:"status"           json:"status"`
	ResumeURL       *string   `db:"resume_url"       json:"resume_url,omitempty"`
	ScreeningScore  *int      `db:"screening_score"  json:"screening_score,omitempty"`
	AssessmentScore *int      `db:"assessment_score" json:"assessment_score,omitempty"`
	InterviewScore  *int      `db:"interview_score"  json:"interview_score,omitempty"`
	Notes           *string   `db:"notes"            json:"notes,omitempty"`
	ScreeningResult *string   `db:"screening_result" json:"screening_result,omitempty"`
	AppliedAt       time.Time `db:"applied_at"       json:"applied_at"`
}
