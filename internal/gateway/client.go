// Package gateway is the Go client for the portal's HTTP API. It lets other
// services and tooling drive both surfaces, the public careers site and the
// authenticated admin console, through the same small client.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hireboard/hireboard/internal/store"
	"github.com/hireboard/hireboard/pkg/models"
)

var ErrUnreachable = errors.New("portal unreachable")
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response decoded from the service's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal: %s (%d %s)", e.Message, e.Status, e.Code)
}

// Client talks to a running portal instance. The zero token makes a public
// client; call Login (or SetToken) to unlock the admin surface. Client
// implements store.Repository so admin tooling can swap a local store for a
// remote portal without changing call sites.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a Client against baseURL, e.g. "http://localhost:8000".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SetToken attaches an existing session token to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string { return c.token }

// --- auth ---

// Login authenticates and stores the issued session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Logout revokes the client's session token.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	if err := c.do(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// --- jobs ---

func (c *Client) CreateJob(ctx context.Context, job *models.Job) error {
	return c.do(ctx, http.MethodPost, "/jobs", job, job)
}

func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodGet, "/jobinfo/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs maps the filter onto the two listing endpoints: the company
// listing when CompanyID is set, the public published listing otherwise.
func (c *Client) ListJobs(ctx context.Context, filter store.JobFilter) ([]*models.Job, error) {
	path := "/jobs"
	if filter.CompanyID != "" {
		path = "/jobs/" + url.PathEscape(filter.CompanyID)
	}

	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Department != "" {
		q.Set("department", filter.Department)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var jobs []*models.Job
	if err := c.do(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, upd store.JobUpdate) (*models.Job, error) {
	body := map[string]any{}
	put := func(k string, v any) { body[k] = v }
	if upd.Title != nil {
		put("title", *upd.Title)
	}
	if upd.Department != nil {
		put("department", *upd.Department)
	}
	if upd.Location != nil {
		put("location", *upd.Location)
	}
	if upd.Type != nil {
		put("type", *upd.Type)
	}
	if upd.Salary != nil {
		put("salary", *upd.Salary)
	}
	if upd.Experience != nil {
		put("experience", *upd.Experience)
	}
	if upd.Description != nil {
		put("description", *upd.Description)
	}
	if upd.Requirements != nil {
		put("requirements", *upd.Requirements)
	}
	if upd.Responsibilities != nil {
		put("responsibilities", *upd.Responsibilities)
	}
	if upd.Benefits != nil {
		put("benefits", *upd.Benefits)
	}
	if upd.ApplicationURL != nil {
		put("application_url", *upd.ApplicationURL)
	}

	var job models.Job
	if err := c.do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(id), body, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJobStatus drives the publish/close endpoints. Only the two lifecycle
// targets exist on the wire; anything else fails with ErrInvalidTransition.
func (c *Client) UpdateJobStatus(ctx context.Context, id string, status string) (*models.Job, error) {
	var suffix string
	switch status {
	case "published":
		suffix = "/publish"
	case "closed":
		suffix = "/closed"
	default:
		return nil, store.ErrInvalidTransition
	}

	var job models.Job
	if err := c.do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(id)+suffix, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil)
}

// --- candidates ---

func (c *Client) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.do(ctx, http.MethodGet, "/candidateinfo/"+url.PathEscape(id), nil, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c *Client) ListCandidates(ctx context.Context, filter store.CandidateFilter) ([]*models.Candidate, error) {
	if filter.CompanyID == "" {
		return nil, errors.New("gateway: CompanyID is required to list candidates")
	}

	q := url.Values{}
	if filter.JobID != "" {
		q.Set("job", filter.JobID)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	path := "/candidates/" + url.PathEscape(filter.CompanyID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var candidates []*models.Candidate
	if err := c.do(ctx, http.MethodGet, path, nil, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *Client) UpdateCandidateStatus(ctx context.Context, id string, status string) error {
	return c.do(ctx, http.MethodPatch, "/candidates/"+url.PathEscape(id)+"/status",
		map[string]string{"status": status}, nil)
}

func (c *Client) UpdateCandidateEvaluation(ctx context.Context, id string, upd store.EvaluationUpdate) error {
	body := map[string]any{}
	if upd.ScreeningScore != nil {
		body["screening_score"] = *upd.ScreeningScore
	}
	if upd.AssessmentScore != nil {
		body["assessment_score"] = *upd.AssessmentScore
	}
	if upd.InterviewScore != nil {
		body["interview_score"] = *upd.InterviewScore
	}
	if upd.Notes != nil {
		body["notes"] = *upd.Notes
	}
	if upd.ScreeningResult != nil {
		body["screening_result"] = *upd.ScreeningResult
	}
	return c.do(ctx, http.MethodPatch, "/candidates/"+url.PathEscape(id)+"/evaluation", body, nil)
}

// CountCandidatesByStatus reads the stats endpoint's per-status breakdown.
func (c *Client) CountCandidatesByStatus(ctx context.Context, companyID string) (map[string]int, error) {
	var out struct {
		ByStatus map[string]int `json:"by_status"`
	}
	if err := c.do(ctx, http.MethodGet, "/stats/"+url.PathEscape(companyID), nil, &out); err != nil {
		return nil, err
	}
	if out.ByStatus == nil {
		out.ByStatus = map[string]int{}
	}
	return out.ByStatus, nil
}

// ExportCandidatesCSV downloads the filtered candidate export.
func (c *Client) ExportCandidatesCSV(ctx context.Context, filter store.CandidateFilter) (string, error) {
	if filter.CompanyID == "" {
		return "", errors.New("gateway: CompanyID is required to export candidates")
	}

	q := url.Values{}
	if filter.JobID != "" {
		q.Set("job", filter.JobID)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	path := "/candidates/" + url.PathEscape(filter.CompanyID) + "/export"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading export: %w", err)
	}
	return string(body), nil
}

// --- application intake ---

// ApplyForm is the candidate-facing application payload.
type ApplyForm struct {
	Name          string
	Email         string
	Phone         string
	Qualification string
	Designation   string
	Department    string
}

// Apply submits an application with its resume to a published job.
func (c *Client) Apply(ctx context.Context, adminID, jobID string, form ApplyForm, resume io.Reader, filename string) (*models.Candidate, error) {
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          form.Name,
		"email":         form.Email,
		"phone":         form.Phone,
		"qualification": form.Qualification,
		"designation":   form.Designation,
		"department":    form.Department,
	}
	for k, v := range fields {
		if err := mp.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing form field: %w", err)
		}
	}
	if resume != nil {
		fw, err := mp.CreateFormFile("resume", filename)
		if err != nil {
			return nil, fmt.Errorf("attaching resume: %w", err)
		}
		if _, err := io.Copy(fw, resume); err != nil {
			return nil, fmt.Errorf("copying resume: %w", err)
		}
	}
	if err := mp.Close(); err != nil {
		return nil, fmt.Errorf("finalizing form: %w", err)
	}

	path := "/apply/" + url.PathEscape(adminID) + "?job_id=" + url.QueryEscape(jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mp.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var env struct {
		Data models.Candidate `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &env.Data, nil
}

// --- plumbing ---

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do runs one request and decodes the envelope's data field into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// decodeError maps the service's error envelope onto client-side sentinels
// so callers can errors.Is against the same values they would with a local
// store.
func decodeError(resp *http.Response) error {
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&env)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", store.ErrNotFound, env.Error.Message)
	case http.StatusConflict:
		if env.Error.Code == "INVALID_TRANSITION" {
			return fmt.Errorf("%w: %s", store.ErrInvalidTransition, env.Error.Message)
		}
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Error.Message)
	}

	msg := env.Error.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Code: env.Error.Code, Message: msg}
}

func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// Compile-time check that Client implements the repository contract.
var _ store.Repository = (*Client)(nil)
