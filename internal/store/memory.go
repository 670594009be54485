package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hireboard/hireboard/internal/pipeline"
	"github.com/hireboard/hireboard/pkg/models"
)

// MemoryStore keeps both collections in process. It backs the demo mode and
// the test suite; nothing survives a restart. List order is insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	jobs       map[string]*models.Job
	jobOrder   []string
	candidates map[string]*models.Candidate
	candOrder  []string
	users      map[string]*models.User // keyed by lowercase email
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:       make(map[string]*models.Job),
		candidates: make(map[string]*models.Candidate),
		users:      make(map[string]*models.User),
	}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// --- Jobs ---

func (s *MemoryStore) CreateJob(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == "" {
		job.ID = newID()
	}
	if _, exists := s.jobs[job.ID]; exists {
		return ErrDuplicateKey
	}
	if job.Status == "" {
		job.Status = pipeline.JobDraft
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	cp := *job
	s.jobs[job.ID] = &cp
	s.jobOrder = append(s.jobOrder, job.ID)
	return nil
}

func (s *MemoryStore) GetJob(_ context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (s *MemoryStore) ListJobs(_ context.Context, filter JobFilter) ([]*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Job
	for _, id := range s.jobOrder {
		job := s.jobs[id]
		if matchJob(job, filter) {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateJob(_ context.Context, id string, upd JobUpdate) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.Title != nil {
		job.Title = *upd.Title
	}
	if upd.Department != nil {
		job.Department = *upd.Department
	}
	if upd.Location != nil {
		job.Location = *upd.Location
	}
	if upd.Type != nil {
		job.Type = *upd.Type
	}
	if upd.Salary != nil {
		job.Salary = *upd.Salary
	}
	if upd.Experience != nil {
		job.Experience = *upd.Experience
	}
	if upd.Description != nil {
		job.Description = *upd.Description
	}
	if upd.Requirements != nil {
		job.Requirements = append([]string(nil), (*upd.Requirements)...)
	}
	if upd.Responsibilities != nil {
		job.Responsibilities = append([]string(nil), (*upd.Responsibilities)...)
	}
	if upd.Benefits != nil {
		job.Benefits = append([]string(nil), (*upd.Benefits)...)
	}
	if upd.ApplicationURL != nil {
		job.ApplicationURL = *upd.ApplicationURL
	}
	job.UpdatedAt = time.Now().UTC()

	cp := *job
	return &cp, nil
}

func (s *MemoryStore) UpdateJobStatus(_ context.Context, id string, status string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !pipeline.CanTransitionJob(job.Status, status) {
		return nil, ErrInvalidTransition
	}
	job.Status = status
	job.UpdatedAt = time.Now().UTC()

	cp := *job
	return &cp, nil
}

// DeleteJob removes the job. Candidates that reference it are kept; their
// job_title snapshot keeps them displayable.
func (s *MemoryStore) DeleteJob(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(s.jobs, id)
	for i, jid := range s.jobOrder {
		if jid == id {
			s.jobOrder = append(s.jobOrder[:i], s.jobOrder[i+1:]...)
			break
		}
	}
	return nil
}

// --- Candidates ---

func (s *MemoryStore) CreateCandidate(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	if _, exists := s.candidates[c.ID]; exists {
		return ErrDuplicateKey
	}
	if c.Status == "" {
		c.Status = pipeline.CandidateApplied
	}
	if c.AppliedAt.IsZero() {
		c.AppliedAt = time.Now().UTC()
	}

	cp := *c
	s.candidates[c.ID] = &cp
	s.candOrder = append(s.candOrder, c.ID)
	return nil
}

func (s *MemoryStore) GetCandidate(_ context.Context, id string) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) ListCandidates(_ context.Context, filter CandidateFilter) ([]*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Candidate
	for _, id := range s.candOrder {
		c := s.candidates[id]
		if matchCandidate(c, filter) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateCandidateStatus replaces status only; scores and notes are untouched.
func (s *MemoryStore) UpdateCandidateStatus(_ context.Context, id string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return ErrNotFound
	}
	if !pipeline.CanTransitionCandidate(c.Status, status) {
		return ErrInvalidTransition
	}
	c.Status = status
	return nil
}

func (s *MemoryStore) UpdateCandidateEvaluation(_ context.Context, id string, upd EvaluationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return ErrNotFound
	}
	if upd.ScreeningScore != nil {
		v := *upd.ScreeningScore
		c.ScreeningScore = &v
	}
	if upd.AssessmentScore != nil {
		v := *upd.AssessmentScore
		c.AssessmentScore = &v
	}
	if upd.InterviewScore != nil {
		v := *upd.InterviewScore
		c.InterviewScore = &v
	}
	if upd.Notes != nil {
		v := *upd.Notes
		c.Notes = &v
	}
	if upd.ScreeningResult != nil {
		v := *upd.ScreeningResult
		c.ScreeningResult = &v
	}
	return nil
}

func (s *MemoryStore) CountCandidatesByStatus(_ context.Context, companyID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, id := range s.candOrder {
		c := s.candidates[id]
		if companyID != "" && c.CompanyID != companyID {
			continue
		}
		counts[c.Status]++
	}
	return counts, nil
}

// --- Users ---

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := s.users[key]; exists {
		return ErrDuplicateKey
	}
	if u.ID == "" {
		u.ID = newID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	cp := *u
	s.users[key] = &cp
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// --- Filter matching ---

func matchJob(j *models.Job, f JobFilter) bool {
	if f.CompanyID != "" && j.CompanyID != f.CompanyID {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.Department != "" && j.Department != f.Department {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(j.Title), term) &&
			!strings.Contains(strings.ToLower(j.Department), term) {
			return false
		}
	}
	return true
}

func matchCandidate(c *models.Candidate, f CandidateFilter) bool {
	if f.CompanyID != "" && c.CompanyID != f.CompanyID {
		return false
	}
	if f.JobID != "" && c.JobID != f.JobID {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Email), term) {
			return false
		}
	}
	return true
}
