package models

import "time"

const (
	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"
	EmploymentContract = "contract"
)

// Job is a postable position. Lifecycle runs draft -> published -> closed;
// closed is terminal. Status changes go through the store, which validates
// transitions against the pipeline rules.
type Job struct {
	ID               string    `db:"id"                json:"id"`
	Title            string    `db:"title"             json:"title"`
	Department       string    `db:"department"        json:"department"`
	Location         string    `db:"location"          json:"location"`
	Type             string    `db:"type"              json:"type"`
	Salary           string    `db:"salary"            json:"salary"`
	Experience       string    `db:"experience"        json:"experience"`
	Description      string    `db:"description"       json:"description"`
	Requirements     []string  `db:"requirements"      json:"requirements"`
	Responsibilities []string  `db:"responsibilities"  json:"responsibilities"`
	Benefits         []string  `db:"benefits"          json:"benefits"`
	Status           string    `db:"status"            json:"status"`
	ApplicationURL   string    `db:"application_url"   json:"application_url"`
	CompanyID        string    `db:"company_id"        json:"company_id"`
	CreatedBy        string    `db:"created_by"        json:"created_by"`
	CreatedAt        time.Time `db:"created_at"        json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"        json:"updated_at"`
}

// ValidEmploymentType reports whether t is a known employment type.
func ValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return true
	}
	return false
}
