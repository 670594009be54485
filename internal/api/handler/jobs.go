package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/hireboard/hireboard/internal/api/middleware"
	"github.com/hireboard/hireboard/internal/api/response"
	"github.com/hireboard/hireboard/internal/pipeline"
	"github.com/hireboard/hireboard/internal/store"
	"github.com/hireboard/hireboard/internal/telemetry"
	"github.com/hireboard/hireboard/pkg/models"
)

// NewCreateJobHandler returns the handler for POST /jobs. The posting is
// owned by the authenticated admin's account.
func NewCreateJobHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		var req struct {
			Title            string   `json:"title"`
			Department       string   `json:"department"`
			Location         string   `json:"location"`
			Type             string   `json:"type"`
			Salary           string   `json:"salary"`
			Experience       string   `json:"experience"`
			Description      string   `json:"description"`
			Requirements     []string `json:"requirements"`
			Responsibilities []string `json:"responsibilities"`
			Benefits         []string `json:"benefits"`
			Status           string   `json:"status"`
			ApplicationURL   string   `json:"application_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Title == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "title is required", nil)
			return
		}
		if req.Department == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "department is required", nil)
			return
		}
		if req.Type == "" {
			req.Type = models.EmploymentFullTime
		}
		if !models.ValidEmploymentType(req.Type) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"type must be one of full-time, part-time, contract", nil)
			return
		}
		if req.Status != "" && !pipeline.ValidJobStatus(req.Status) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"status must be one of draft, published, closed", nil)
			return
		}

		job := &models.Job{
			Title:            req.Title,
			Department:       req.Department,
			Location:         req.Location,
			Type:             req.Type,
			Salary:           req.Salary,
			Experience:       req.Experience,
			Description:      req.Description,
			Requirements:     req.Requirements,
			Responsibilities: req.Responsibilities,
			Benefits:         req.Benefits,
			Status:           req.Status,
			ApplicationURL:   req.ApplicationURL,
			CompanyID:        sess.UserID,
			CreatedBy:        sess.UserID,
		}
		if err := s.CreateJob(r.Context(), job); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create job", nil)
			return
		}

		telemetry.JobsCreated.Inc()
		response.Created(w, job)
	}
}

// NewListPublishedJobsHandler returns the handler for GET /jobs: the public
// careers listing. Only published postings are visible.
func NewListPublishedJobsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.JobFilter{
			Status:     pipeline.JobPublished,
			Search:     r.URL.Query().Get("search"),
			Department: r.URL.Query().Get("department"),
		}
		jobs, err := s.ListJobs(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list jobs", nil)
			return
		}
		if jobs == nil {
			jobs = []*models.Job{}
		}
		response.JSON(w, jobs)
	}
}

// NewListCompanyJobsHandler returns the handler for GET /jobs/{adminID}:
// every posting owned by one admin, regardless of status.
func NewListCompanyJobsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.JobFilter{
			CompanyID:  chi.URLParam(r, "adminID"),
			Status:     r.URL.Query().Get("status"),
			Search:     r.URL.Query().Get("search"),
			Department: r.URL.Query().Get("department"),
		}
		jobs, err := s.ListJobs(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list jobs", nil)
			return
		}
		if jobs == nil {
			jobs = []*models.Job{}
		}
		response.JSON(w, jobs)
	}
}

// NewGetJobHandler returns the handler for GET /jobinfo/{jobID}.
func NewGetJobHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := s.GetJob(r.Context(), chi.URLParam(r, "jobID"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Job not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch job", nil)
			return
		}
		response.JSON(w, job)
	}
}

// NewUpdateJobHandler returns the handler for PATCH /jobs/{jobID}: a partial
// edit of posting fields. Status changes go through publish/close instead.
func NewUpdateJobHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title            *string   `json:"title"`
			Department       *string   `json:"department"`
			Location         *string   `json:"location"`
			Type             *string   `json:"type"`
			Salary           *string   `json:"salary"`
			Experience       *string   `json:"experience"`
			Description      *string   `json:"description"`
			Requirements     *[]string `json:"requirements"`
			Responsibilities *[]string `json:"responsibilities"`
			Benefits         *[]string `json:"benefits"`
			ApplicationURL   *string   `json:"application_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Type != nil && !models.ValidEmploymentType(*req.Type) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"type must be one of full-time, part-time, contract", nil)
			return
		}

		job, err := s.UpdateJob(r.Context(), chi.URLParam(r, "jobID"), store.JobUpdate{
			Title:            req.Title,
			Department:       req.Department,
			Location:         req.Location,
			Type:             req.Type,
			Salary:           req.Salary,
			Experience:       req.Experience,
			Description:      req.Description,
			Requirements:     req.Requirements,
			Responsibilities: req.Responsibilities,
			Benefits:         req.Benefits,
			ApplicationURL:   req.ApplicationURL,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Job not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update job", nil)
			return
		}
		response.JSON(w, job)
	}
}

// NewPublishJobHandler returns the handler for PATCH /jobs/{jobID}/publish.
func NewPublishJobHandler(s store.Store) http.HandlerFunc {
	return newStatusHandler(s, pipeline.JobPublished, telemetry.JobsPublished)
}

// NewCloseJobHandler returns the handler for PATCH /jobs/{jobID}/closed.
func NewCloseJobHandler(s store.Store) http.HandlerFunc {
	return newStatusHandler(s, pipeline.JobClosed, telemetry.JobsClosed)
}

type counter interface{ Inc() }

func newStatusHandler(s store.Store, status string, metric counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := s.UpdateJobStatus(r.Context(), chi.URLParam(r, "jobID"), status)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Job not found", nil)
			case errors.Is(err, store.ErrInvalidTransition):
				response.Error(w, http.StatusConflict, "INVALID_TRANSITION",
					"Job cannot move to "+status+" from its current status", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update job", nil)
			}
			return
		}

		metric.Inc()
		response.JSON(w, job)
	}
}

// NewDeleteJobHandler returns the handler for DELETE /jobs/{jobID}. Deletion
// is unconditional and irreversible; candidates keep their rows.
func NewDeleteJobHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.DeleteJob(r.Context(), chi.URLParam(r, "jobID")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Job not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete job", nil)
			return
		}
		response.JSON(w, map[string]string{"status": "deleted"})
	}
}
