package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hireboard/hireboard/internal/api/response"
	"github.com/hireboard/hireboard/internal/apply"
	"github.com/hireboard/hireboard/internal/pipeline"
	"github.com/hireboard/hireboard/internal/storage"
	"github.com/hireboard/hireboard/internal/store"
	"github.com/hireboard/hireboard/internal/telemetry"
	"github.com/hireboard/hireboard/pkg/models"
)

// NewApplyHandler returns the handler for POST /apply/{adminID}?job_id=...:
// the public application intake. The request is multipart form data with the
// candidate fields plus a resume file. The job's title is snapshotted onto
// the candidate so the record survives job deletion.
func NewApplyHandler(s store.Store, uploader storage.Uploader, maxSizeMB int) http.HandlerFunc {
	maxBytes := int64(maxSizeMB) << 20

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Request must be multipart form data within the size limit", nil)
			return
		}

		sub := apply.Submission{
			Name:          strings.TrimSpace(r.FormValue("name")),
			Email:         strings.TrimSpace(r.FormValue("email")),
			Phone:         strings.TrimSpace(r.FormValue("phone")),
			Qualification: strings.TrimSpace(r.FormValue("qualification")),
			Designation:   strings.TrimSpace(r.FormValue("designation")),
			Department:    strings.TrimSpace(r.FormValue("department")),
			JobID:         r.URL.Query().Get("job_id"),
		}

		file, header, err := r.FormFile("resume")
		if err == nil {
			defer file.Close()
			sub.ResumeFilename = header.Filename
		}

		if fieldErrs := apply.Validate(sub); len(fieldErrs) > 0 {
			telemetry.ApplicationsRejected.Inc()
			response.Error(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
				"Application has invalid fields", fieldErrs)
			return
		}

		job, err := s.GetJob(r.Context(), sub.JobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch job", nil)
			return
		}
		if job.Status != pipeline.JobPublished {
			response.Error(w, http.StatusConflict, "JOB_NOT_OPEN", "Job is not accepting applications", nil)
			return
		}

		body, err := io.ReadAll(file)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read resume", nil)
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := "resumes/" + uuid.NewString() + ext
		resumeURL, err := uploader.Upload(r.Context(), key, body, header.Header.Get("Content-Type"))
		if err != nil {
			slog.Error("resume upload failed", "error", err, "job_id", job.ID)
			response.Error(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store resume", nil)
			return
		}

		candidate := &models.Candidate{
			Name:          sub.Name,
			Email:         sub.Email,
			Phone:         sub.Phone,
			JobID:         job.ID,
			JobTitle:      job.Title,
			CompanyID:     chi.URLParam(r, "adminID"),
			Qualification: sub.Qualification,
			Designation:   sub.Designation,
			Department:    sub.Department,
			Status:        pipeline.CandidateApplied,
			ResumeURL:     &resumeURL,
		}
		if err := s.CreateCandidate(r.Context(), candidate); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save application", nil)
			return
		}

		telemetry.ApplicationsReceived.Inc()
		response.Created(w, candidate)
	}
}
