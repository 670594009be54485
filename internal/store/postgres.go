package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hireboard/hireboard/internal/pipeline"
	"github.com/hireboard/hireboard/pkg/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const jobColumns = `id, title, department, location, type, salary, experience, description,
	requirements, responsibilities, benefits, status, application_url, company_id, created_by,
	created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Type, &j.Salary,
		&j.Experience, &j.Description, &j.Requirements, &j.Responsibilities, &j.Benefits,
		&j.Status, &j.ApplicationURL, &j.CompanyID, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// --- Jobs ---

func (s *PostgresStore) CreateJob(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = newID()
	}
	if job.Status == "" {
		job.Status = pipeline.JobDraft
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, department, location, type, salary, experience, description,
		   requirements, responsibilities, benefits, status, application_url, company_id, created_by,
		   created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		job.ID, job.Title, job.Department, job.Location, job.Type, job.Salary, job.Experience,
		job.Description, job.Requirements, job.Responsibilities, job.Benefits, job.Status,
		job.ApplicationURL, job.CompanyID, job.CreatedBy, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := scanJob(s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context, filter JobFilter) ([]*models.Job, error) {
	conditions := []string{"1=1"}
	var args []any
	argIdx := 1

	if filter.CompanyID != "" {
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", argIdx))
		args = append(args, filter.CompanyID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, filter.Department)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR department ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIdx++
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) UpdateJob(ctx context.Context, id string, upd JobUpdate) (*models.Job, error) {
	sets := []string{"updated_at = $2"}
	args := []any{id, time.Now().UTC()}
	argIdx := 3

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Department != nil {
		add("department", *upd.Department)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Type != nil {
		add("type", *upd.Type)
	}
	if upd.Salary != nil {
		add("salary", *upd.Salary)
	}
	if upd.Experience != nil {
		add("experience", *upd.Experience)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Requirements != nil {
		add("requirements", *upd.Requirements)
	}
	if upd.Responsibilities != nil {
		add("responsibilities", *upd.Responsibilities)
	}
	if upd.Benefits != nil {
		add("benefits", *upd.Benefits)
	}
	if upd.ApplicationURL != nil {
		add("application_url", *upd.ApplicationURL)
	}

	query := `UPDATE jobs SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + jobColumns

	job, err := scanJob(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *PostgresStore) UpdateJobStatus(ctx context.Context, id string, status string) (*models.Job, error) {
	var currentStatus string
	err := s.pool.QueryRow(ctx, `SELECT status FROM jobs WHERE id = $1`, id).Scan(&currentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job status: %w", err)
	}

	if !pipeline.CanTransitionJob(currentStatus, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, currentStatus, status)
	}

	job, err := scanJob(s.pool.QueryRow(ctx,
		`UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+jobColumns,
		id, status, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("update job status: %w", err)
	}
	return job, nil
}

func (s *PostgresStore) DeleteJob(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Candidates ---

const candidateColumns = `id, name, email, phone, job_id, job_title, company_id, qualification,
	designation, department, status, resume_url, screening_score, assessment_score,
	interview_score, notes, screening_result, applied_at`

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.JobID, &c.JobTitle, &c.CompanyID,
		&c.Qualification, &c.Designation, &c.Department, &c.Status, &c.ResumeURL,
		&c.ScreeningScore, &c.AssessmentScore, &c.InterviewScore, &c.Notes,
		&c.ScreeningResult, &c.AppliedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Status == "" {
		c.Status = pipeline.CandidateApplied
	}
	if c.AppliedAt.IsZero() {
		c.AppliedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO candidates (id, name, email, phone, job_id, job_title, company_id,
		   qualification, designation, department, status, resume_url, screening_score,
		   assessment_score, interview_score, notes, screening_result, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		c.ID, c.Name, c.Email, c.Phone, c.JobID, c.JobTitle, c.CompanyID, c.Qualification,
		c.Designation, c.Department, c.Status, c.ResumeURL, c.ScreeningScore, c.AssessmentScore,
		c.InterviewScore, c.Notes, c.ScreeningResult, c.AppliedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	c, err := scanCandidate(s.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListCandidates(ctx context.Context, filter CandidateFilter) ([]*models.Candidate, error) {
	conditions := []string{"1=1"}
	var args []any
	argIdx := 1

	if filter.CompanyID != "" {
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", argIdx))
		args = append(args, filter.CompanyID)
		argIdx++
	}
	if filter.JobID != "" {
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", argIdx))
		args = append(args, filter.JobID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIdx++
	}

	// applied_at ASC keeps list order stable and matches the in-memory
	// backend's insertion order.
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY applied_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *PostgresStore) UpdateCandidateStatus(ctx context.Context, id string, status string) error {
	var currentStatus string
	err := s.pool.QueryRow(ctx, `SELECT status FROM candidates WHERE id = $1`, id).Scan(&currentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get candidate status: %w", err)
	}

	if !pipeline.CanTransitionCandidate(currentStatus, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, currentStatus, status)
	}

	_, err = s.pool.Exec(ctx, `UPDATE candidates SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update candidate status: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateCandidateEvaluation(ctx context.Context, id string, upd EvaluationUpdate) error {
	sets := []string{}
	args := []any{id}
	argIdx := 2

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if upd.ScreeningScore != nil {
		add("screening_score", *upd.ScreeningScore)
	}
	if upd.AssessmentScore != nil {
		add("assessment_score", *upd.AssessmentScore)
	}
	if upd.InterviewScore != nil {
		add("interview_score", *upd.InterviewScore)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.ScreeningResult != nil {
		add("screening_result", *upd.ScreeningResult)
	}
	if len(sets) == 0 {
		return nil
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE candidates SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return fmt.Errorf("update candidate evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountCandidatesByStatus(ctx context.Context, companyID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM candidates`
	var args []any
	if companyID != "" {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` GROUP BY status`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count candidates by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// --- Users ---

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.Role, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, name, role, password_hash, created_at, updated_at
		 FROM users WHERE lower(email) = lower($1)`, email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// escapeLike neutralizes LIKE wildcards so search terms match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
