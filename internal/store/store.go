package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hireboard/hireboard/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")
var ErrInvalidTransition = errors.New("invalid status transition")

// Repository is the job/candidate collection contract. Three backends
// implement it: MemoryStore (demo fixture, tests), PostgresStore (source of
// truth) and the HTTP gateway client, so callers can swap a local collection
// for the remote service without changing call sites.
type Repository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*models.Job, error)
	UpdateJob(ctx context.Context, id string, upd JobUpdate) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status string) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error

	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*models.Candidate, error)
	UpdateCandidateStatus(ctx context.Context, id string, status string) error
	UpdateCandidateEvaluation(ctx context.Context, id string, upd EvaluationUpdate) error
	CountCandidatesByStatus(ctx context.Context, companyID string) (map[string]int, error)
}

// Store is the full data access interface for the service's own backends.
// Candidates are created only through the application intake flow and users
// only through bootstrap, so neither belongs on Repository.
type Store interface {
	Repository

	Ping(ctx context.Context) error

	CreateCandidate(ctx context.Context, candidate *models.Candidate) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// JobFilter narrows ListJobs. All set fields must match (logical AND).
// Search is a case-insensitive substring match over title or department.
type JobFilter struct {
	CompanyID  string
	Status     string
	Department string
	Search     string
}

// CandidateFilter narrows ListCandidates. All set fields must match.
// Search is a case-insensitive substring match over name or email.
type CandidateFilter struct {
	CompanyID string
	JobID     string
	Status    string
	Search    string
}

// JobUpdate carries a partial job edit; nil fields are left untouched.
// ID, creator, company and timestamps are never caller-writable, and status
// changes go through UpdateJobStatus so transitions stay validated.
type JobUpdate struct {
	Title            *string
	Department       *string
	Location         *string
	Type             *string
	Salary           *string
	Experience       *string
	Description      *string
	Requirements     *[]string
	Responsibilities *[]string
	Benefits         *[]string
	ApplicationURL   *string
}

// EvaluationUpdate carries score/notes edits; nil fields are left untouched.
type EvaluationUpdate struct {
	ScreeningScore  *int
	AssessmentScore *int
	InterviewScore  *int
	Notes           *string
	ScreeningResult *string
}

// newID returns a fresh opaque record identifier.
func newID() string {
	return uuid.NewString()
}
