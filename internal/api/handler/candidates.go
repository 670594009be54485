package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hireboard/hireboard/internal/api/response"
	"github.com/hireboard/hireboard/internal/pipeline"
	"github.com/hireboard/hireboard/internal/report"
	"github.com/hireboard/hireboard/internal/store"
	"github.com/hireboard/hireboard/pkg/models"
)

func candidateFilter(r *http.Request) store.CandidateFilter {
	return store.CandidateFilter{
		CompanyID: chi.URLParam(r, "adminID"),
		JobID:     r.URL.Query().Get("job"),
		Status:    r.URL.Query().Get("status"),
		Search:    r.URL.Query().Get("search"),
	}
}

// NewListCandidatesHandler returns the handler for GET /candidates/{adminID}.
// Ordering is by application time, oldest first.
func NewListCandidatesHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidates, err := s.ListCandidates(r.Context(), candidateFilter(r))
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list candidates", nil)
			return
		}
		if candidates == nil {
			candidates = []*models.Candidate{}
		}
		response.JSON(w, candidates)
	}
}

// NewExportCandidatesHandler returns the handler for
// GET /candidates/{adminID}/export. The same filters as the list endpoint
// apply, so an admin exports exactly what they see.
func NewExportCandidatesHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidates, err := s.ListCandidates(r.Context(), candidateFilter(r))
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export candidates", nil)
			return
		}
		response.CSV(w, "candidates.csv", report.CandidateCSV(candidates))
	}
}

// NewGetCandidateHandler returns the handler for GET /candidateinfo/{candidateID}.
func NewGetCandidateHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidate, err := s.GetCandidate(r.Context(), chi.URLParam(r, "candidateID"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Candidate not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch candidate", nil)
			return
		}
		response.JSON(w, candidate)
	}
}

// NewUpdateCandidateStatusHandler returns the handler for
// PATCH /candidates/{candidateID}/status. Any known stage may be set; the
// pipeline is advisory for candidates, unlike job transitions.
func NewUpdateCandidateStatusHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if !pipeline.ValidCandidateStatus(req.Status) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"status must be a known pipeline stage", map[string]any{"stages": pipeline.CandidateStages()})
			return
		}

		id := chi.URLParam(r, "candidateID")
		if err := s.UpdateCandidateStatus(r.Context(), id, req.Status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Candidate not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update candidate", nil)
			return
		}

		candidate, err := s.GetCandidate(r.Context(), id)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch candidate", nil)
			return
		}
		response.JSON(w, candidate)
	}
}

// NewUpdateCandidateEvaluationHandler returns the handler for
// PATCH /candidates/{candidateID}/evaluation.
func NewUpdateCandidateEvaluationHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ScreeningScore  *int    `json:"screening_score"`
			AssessmentScore *int    `json:"assessment_score"`
			InterviewScore  *int    `json:"interview_score"`
			Notes           *string `json:"notes"`
			ScreeningResult *string `json:"screening_result"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		for _, score := range []*int{req.ScreeningScore, req.AssessmentScore, req.InterviewScore} {
			if score != nil && (*score < 0 || *score > 100) {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "scores must be between 0 and 100", nil)
				return
			}
		}

		id := chi.URLParam(r, "candidateID")
		err := s.UpdateCandidateEvaluation(r.Context(), id, store.EvaluationUpdate{
			ScreeningScore:  req.ScreeningScore,
			AssessmentScore: req.AssessmentScore,
			InterviewScore:  req.InterviewScore,
			Notes:           req.Notes,
			ScreeningResult: req.ScreeningResult,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Candidate not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update candidate", nil)
			return
		}

		candidate, err := s.GetCandidate(r.Context(), id)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch candidate", nil)
			return
		}
		response.JSON(w, candidate)
	}
}

// NewStatsHandler returns the handler for GET /stats/{adminID}: the admin
// dashboard counters. InProcess aggregates every stage between intake and a
// final decision.
func NewStatsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.CountCandidatesByStatus(r.Context(), chi.URLParam(r, "adminID"))
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute stats", nil)
			return
		}

		total := 0
		inProcess := 0
		for status, n := range counts {
			total += n
			if pipeline.InProcess(status) {
				inProcess += n
			}
		}

		response.JSON(w, map[string]any{
			"total":      total,
			"in_process": inProcess,
			"selected":   counts[pipeline.CandidateSelected],
			"rejected":   counts[pipeline.CandidateRejected],
			"by_status":  counts,
		})
	}
}
