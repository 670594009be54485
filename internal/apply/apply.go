// Package apply validates candidate application submissions before they are
// accepted into the pipeline.
package apply

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Departments a candidate may apply under.
var Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance"}

// Resume file extensions accepted at intake. Contents are never inspected;
// the file is treated as opaque bytes.
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// emailPattern is the basic local@domain.tld shape. Deliberately loose:
// deliverability is the mail system's problem, this only catches obvious
// typos like a missing @ or TLD.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is one application form payload. ResumeFilename is empty when
// no file was attached.
type Submission struct {
	Name           string
	Email          string
	Phone          string
	Qualification  string
	Designation    string
	Department     string
	JobID          string
	ResumeFilename string
}

// Validate checks a submission and returns one message per invalid field,
// keyed by field name. An empty map means the submission may proceed.
func Validate(s Submission) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(s.Name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(s.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(s.Email) {
		errs["email"] = "Email is invalid"
	}

	if strings.TrimSpace(s.Qualification) == "" {
		errs["qualification"] = "Highest qualification is required"
	}

	if strings.TrimSpace(s.Designation) == "" {
		errs["designation"] = "Current designation is required"
	}

	if strings.TrimSpace(s.Department) == "" {
		errs["department"] = "Department is required"
	} else if !ValidDepartment(s.Department) {
		errs["department"] = "Department must be one of " + strings.Join(Departments, ", ")
	}

	if s.ResumeFilename == "" {
		errs["resume"] = "Resume is required"
	} else if !resumeExtensions[strings.ToLower(filepath.Ext(s.ResumeFilename))] {
		errs["resume"] = "Resume must be a PDF, DOC or DOCX file"
	}

	return errs
}

// ValidDepartment reports whether d is in the fixed department set.
func ValidDepartment(d string) bool {
	for _, dep := range Departments {
		if dep == d {
			return true
		}
	}
	return false
}
