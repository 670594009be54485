package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/hireboard/hireboard/internal/store"
	"github.com/hireboard/hireboard/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, s.SeedDemo(context.Background()))
	return s
}

// --- Job tests ---

func TestMemory_CreateJob_GeneratesUniqueIDs(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		job := &models.Job{Title: "Role", Department: "Engineering"}
		require.NoError(t, s.CreateJob(ctx, job))
		require.NotEmpty(t, job.ID)
		assert.False(t, seen[job.ID], "duplicate id %s", job.ID)
		seen[job.ID] = true
	}
}

func TestMemory_CreateJob_Defaults(t *testing.T) {
	s := store.NewMemoryStore()
	job := &models.Job{Title: "Role", Department: "Engineering"}
	require.NoError(t, s.CreateJob(context.Background(), job))

	assert.Equal(t, "draft", job.Status)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Equal(t, job.CreatedAt, job.UpdatedAt)
}

func TestMemory_CreateJob_DuplicateID(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateJob(ctx, &models.Job{ID: "dup", Title: "A", Department: "HR"}))
	err := s.CreateJob(ctx, &models.Job{ID: "dup", Title: "B", Department: "HR"})
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestMemory_UpdateJob_AdvancesUpdatedAt(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	job := &models.Job{Title: "Role", Department: "Engineering"}
	require.NoError(t, s.CreateJob(ctx, job))
	created := job.UpdatedAt

	time.Sleep(time.Millisecond)
	title := "Renamed Role"
	updated, err := s.UpdateJob(ctx, job.ID, store.JobUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Role", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created))
	assert.Equal(t, created, updated.CreatedAt)
}

func TestMemory_UpdateJob_MissingLeavesCollectionUnchanged(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	title := "x"
	_, err := s.UpdateJob(ctx, "missing", store.JobUpdate{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)

	jobs, err := s.ListJobs(ctx, store.JobFilter{})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestMemory_UpdateJobStatus_Transitions(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	job := &models.Job{Title: "Role", Department: "Engineering"}
	require.NoError(t, s.CreateJob(ctx, job))

	// draft cannot close directly
	_, err := s.UpdateJobStatus(ctx, job.ID, "closed")
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	published, err := s.UpdateJobStatus(ctx, job.ID, "published")
	require.NoError(t, err)
	assert.Equal(t, "published", published.Status)

	closed, err := s.UpdateJobStatus(ctx, job.ID, "closed")
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)

	// closed is terminal
	_, err = s.UpdateJobStatus(ctx, job.ID, "published")
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
}

func TestMemory_ListJobs_Filters(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	jobs, err := s.ListJobs(ctx, store.JobFilter{Status: "published"})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	jobs, err = s.ListJobs(ctx, store.JobFilter{Department: "Engineering"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "automation-engineer", jobs[0].ID)

	jobs, err = s.ListJobs(ctx, store.JobFilter{Search: "PROJECT"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "project-manager", jobs[0].ID)
}

func TestMemory_DeleteJob_KeepsCandidateSnapshots(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteJob(ctx, "project-manager"))

	_, err := s.GetJob(ctx, "project-manager")
	assert.ErrorIs(t, err, store.ErrNotFound)

	candidates, err := s.ListCandidates(ctx, store.CandidateFilter{JobID: "project-manager"})
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	for _, c := range candidates {
		assert.Equal(t, "Project Manager - Automation Projects", c.JobTitle)
	}
}

func TestMemory_DeleteJob_NotFound(t *testing.T) {
	s := seeded(t)
	assert.ErrorIs(t, s.DeleteJob(context.Background(), "missing"), store.ErrNotFound)
}

// --- Candidate tests ---

func TestMemory_ListCandidates_InsertionOrder(t *testing.T) {
	s := seeded(t)

	candidates, err := s.ListCandidates(context.Background(), store.CandidateFilter{JobID: "project-manager"})
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "John Smith", candidates[0].Name)
	assert.Equal(t, "Sarah Johnson", candidates[1].Name)
	assert.Equal(t, "Emily Davis", candidates[2].Name)
}

func TestMemory_ListCandidates_ConjunctiveFilters(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	candidates, err := s.ListCandidates(ctx, store.CandidateFilter{
		CompanyID: store.DemoCompanyID,
		JobID:     "project-manager",
		Status:    "interview",
		Search:    "john",
	})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "John Smith", candidates[0].Name)

	// same search term without the status match
	candidates, err = s.ListCandidates(ctx, store.CandidateFilter{
		JobID:  "project-manager",
		Status: "rejected",
		Search: "john",
	})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestMemory_ListCandidates_SearchMatchesEmail(t *testing.T) {
	s := seeded(t)

	candidates, err := s.ListCandidates(context.Background(), store.CandidateFilter{Search: "mike.chen@"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Mike Chen", candidates[0].Name)
}

func TestMemory_UpdateCandidateStatus_AnyStageReachable(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	candidates, err := s.ListCandidates(ctx, store.CandidateFilter{Status: "rejected"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	// rejected back to screening is allowed
	require.NoError(t, s.UpdateCandidateStatus(ctx, candidates[0].ID, "screening"))

	got, err := s.GetCandidate(ctx, candidates[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "screening", got.Status)
}

func TestMemory_UpdateCandidateStatus_UnknownStage(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	candidates, err := s.ListCandidates(ctx, store.CandidateFilter{})
	require.NoError(t, err)
	err = s.UpdateCandidateStatus(ctx, candidates[0].ID, "hired")
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
}

func TestMemory_UpdateCandidateEvaluation_PartialUpdate(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	candidates, err := s.ListCandidates(ctx, store.CandidateFilter{Search: "sarah"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	id := candidates[0].ID

	score := 74
	require.NoError(t, s.UpdateCandidateEvaluation(ctx, id, store.EvaluationUpdate{
		AssessmentScore: &score,
	}))

	got, err := s.GetCandidate(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.AssessmentScore)
	assert.Equal(t, 74, *got.AssessmentScore)
	// untouched fields survive
	require.NotNil(t, got.ScreeningScore)
	assert.Equal(t, 92, *got.ScreeningScore)
	require.NotNil(t, got.Notes)
}

func TestMemory_CountCandidatesByStatus(t *testing.T) {
	s := seeded(t)

	counts, err := s.CountCandidatesByStatus(context.Background(), store.DemoCompanyID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"interview":  1,
		"assessment": 1,
		"selected":   1,
		"rejected":   1,
		"screening":  1,
	}, counts)
}

func TestMemory_CountCandidatesByStatus_UnknownCompany(t *testing.T) {
	s := seeded(t)

	counts, err := s.CountCandidatesByStatus(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

// --- User tests ---

func TestMemory_Users_EmailCaseInsensitive(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{
		Email:        "Admin@Acme.com",
		Name:         "Admin",
		Role:         "admin",
		PasswordHash: "hash",
	}))

	user, err := s.GetUserByEmail(ctx, "admin@acme.COM")
	require.NoError(t, err)
	assert.Equal(t, "Admin@Acme.com", user.Email)

	err = s.CreateUser(ctx, &models.User{Email: "ADMIN@acme.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestMemory_GetUserByEmail_NotFound(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.GetUserByEmail(context.Background(), "nobody@acme.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
