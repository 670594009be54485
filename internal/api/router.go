package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/hireboard/hireboard/internal/api/middleware"
	"github.com/hireboard/hireboard/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler  http.HandlerFunc
	MetricsHandler http.Handler

	LoginHandler  http.HandlerFunc
	LogoutHandler http.HandlerFunc

	ListPublishedJobs http.HandlerFunc
	GetJob            http.HandlerFunc
	ApplyHandler      http.HandlerFunc

	CreateJob       http.HandlerFunc
	ListCompanyJobs http.HandlerFunc
	UpdateJob       http.HandlerFunc
	DeleteJob       http.HandlerFunc
	PublishJob      http.HandlerFunc
	CloseJob        http.HandlerFunc

	ListCandidates       http.HandlerFunc
	ExportCandidates     http.HandlerFunc
	GetCandidate         http.HandlerFunc
	UpdateCandidateStage http.HandlerFunc
	UpdateEvaluation     http.HandlerFunc
	Stats                http.HandlerFunc
}

// NewRouter builds the Chi router with the middleware stack and all routes.
// The careers-site surface (listing, job detail, apply, login) is public but
// rate limited by client IP; the admin console surface sits behind session
// auth with per-token rate limiting.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public routes
	r.Get("/health", orNotImplemented(deps.HealthHandler))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// Anonymous callers are rate limited by client IP
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimit.Limit)

		r.Post("/login", orNotImplemented(deps.LoginHandler))

		r.Get("/jobs", orNotImplemented(deps.ListPublishedJobs))
		r.Get("/jobinfo/{jobID}", orNotImplemented(deps.GetJob))
		r.Post("/apply/{adminID}", orNotImplemented(deps.ApplyHandler))
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/logout", orNotImplemented(deps.LogoutHandler))

		r.Post("/jobs", orNotImplemented(deps.CreateJob))
		r.Get("/jobs/{adminID}", orNotImplemented(deps.ListCompanyJobs))
		r.Patch("/jobs/{jobID}", orNotImplemented(deps.UpdateJob))
		r.Delete("/jobs/{jobID}", orNotImplemented(deps.DeleteJob))
		r.Patch("/jobs/{jobID}/publish", orNotImplemented(deps.PublishJob))
		r.Patch("/jobs/{jobID}/closed", orNotImplemented(deps.CloseJob))

		r.Get("/candidates/{adminID}", orNotImplemented(deps.ListCandidates))
		r.Get("/candidates/{adminID}/export", orNotImplemented(deps.ExportCandidates))
		r.Get("/candidateinfo/{candidateID}", orNotImplemented(deps.GetCandidate))
		r.Patch("/candidates/{candidateID}/status", orNotImplemented(deps.UpdateCandidateStage))
		r.Patch("/candidates/{candidateID}/evaluation", orNotImplemented(deps.UpdateEvaluation))

		r.Get("/stats/{adminID}", orNotImplemented(deps.Stats))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
