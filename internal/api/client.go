// Package api provides a typed client for the reelcut backend API. All
// endpoints are JSON over HTTPS with bearer-token authentication; the
// token is obtained per request from an injected auth.TokenProvider.
//
// Error convention: non-2xx responses carry {"detail": "..."} and the
// detail string is surfaced verbatim, falling back to "API error: <status>"
// when absent. A 204 is a valid empty success.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clipworks/reelcut/internal/auth"
)

const defaultTimeout = 60 * time.Second

// Client provides methods for every backend endpoint the CLI consumes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     auth.TokenProvider
}

// NewClient creates an API client. baseURL must not have a trailing slash.
func NewClient(baseURL string, tokens auth.TokenProvider) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		tokens:  tokens,
	}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// do issues an authenticated JSON request and decodes the response into
// out (which may be nil for endpoints whose body the caller ignores).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	token, err := c.tokens()
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Debug().Str("method", method).Str("path", path).Dur("duration", duration).Err(err).Msg("API request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().Str("method", method).Str("path", path).Int("statusCode", resp.StatusCode).Dur("duration", duration).Msg("API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx API response, carrying the backend's detail
// message when one was provided.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// IsNotFound reports whether the error is a 404 StatusError.
func IsNotFound(err error) bool {
	se, ok := err.(*StatusError)
	return ok && se.StatusCode == http.StatusNotFound
}

func newStatusError(resp *http.Response) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	return &StatusError{StatusCode: resp.StatusCode, Detail: eb.Detail}
}

// --- Upload ---

// Presign requests a single-shot presigned PUT URL for a small file.
func (c *Client) Presign(ctx context.Context, filename, contentType string, sizeBytes int64) (*PresignResponse, error) {
	req := map[string]any{
		"filename":     filename,
		"content_type": contentType,
		"size_bytes":   sizeBytes,
	}
	var resp PresignResponse
	if err := c.do(ctx, http.MethodPost, "/upload/presign", req, &resp); err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &resp, nil
}

// InitiateMultipart creates a multipart upload and returns the part size
// and the pre-authorized upload URL for every part.
func (c *Client) InitiateMultipart(ctx context.Context, filename, contentType string, sizeBytes int64) (*MultipartInitiateResponse, error) {
	req := map[string]any{
		"filename":     filename,
		"content_type": contentType,
		"size_bytes":   sizeBytes,
	}
	var resp MultipartInitiateResponse
	if err := c.do(ctx, http.MethodPost, "/upload/multipart/initiate", req, &resp); err != nil {
		return nil, fmt.Errorf("initiate multipart upload: %w", err)
	}
	return &resp, nil
}

// CompleteMultipart finalizes a multipart upload. parts must be sorted
// ascending by part number; the backend may reject out-of-order manifests.
func (c *Client) CompleteMultipart(ctx context.Context, key, uploadID string, parts []CompletedPart) (*MultipartCompleteResponse, error) {
	req := map[string]any{
		"r2_key":    key,
		"upload_id": uploadID,
		"parts":     parts,
	}
	var resp MultipartCompleteResponse
	if err := c.do(ctx, http.MethodPost, "/upload/multipart/complete", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AbortMultipart abandons a multipart upload so the backend can discard
// already-uploaded parts. Invoked best-effort from upload failure paths.
func (c *Client) AbortMultipart(ctx context.Context, key, uploadID string) error {
	req := map[string]any{
		"r2_key":    key,
		"upload_id": uploadID,
	}
	return c.do(ctx, http.MethodPost, "/upload/multipart/abort", req, nil)
}

// --- Projects ---

// ListProjects returns all projects for the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns the full detail view of one project.
func (c *Client) GetProject(ctx context.Context, id string) (*ProjectDetail, error) {
	var detail ProjectDetail
	if err := c.do(ctx, http.MethodGet, "/projects/"+id, nil, &detail); err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &detail, nil
}

// CreateProject registers an uploaded source as a new project.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects", req, &project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// DeleteProject removes a project and its artifacts.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// RetryProject re-queues processing for a failed project.
func (c *Client) RetryProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects/"+id+"/retry", nil, &project); err != nil {
		return nil, fmt.Errorf("retry project %s: %w", id, err)
	}
	return &project, nil
}

// MulticamReprocess triggers multicam reprocessing with extra sources.
func (c *Client) MulticamReprocess(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects/"+id+"/multicam", nil, &project); err != nil {
		return nil, fmt.Errorf("multicam reprocess %s: %w", id, err)
	}
	return &project, nil
}

// UpdateExtraSources replaces the project's extra source list.
func (c *Client) UpdateExtraSources(ctx context.Context, id string, sources []ExtraSource) (*Project, error) {
	req := map[string]any{"extra_sources": sources}
	var project Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+id+"/extra-sources", req, &project); err != nil {
		return nil, fmt.Errorf("update extra sources %s: %w", id, err)
	}
	return &project, nil
}

// --- Credits ---

// GetCredits returns the account's processing credit balance.
func (c *Client) GetCredits(ctx context.Context) (*CreditBalance, error) {
	var balance CreditBalance
	if err := c.do(ctx, http.MethodGet, "/credits", nil, &balance); err != nil {
		return nil, fmt.Errorf("get credits: %w", err)
	}
	return &balance, nil
}

// --- Downloads ---

// GetDownload returns a presigned URL for a result artifact
// (e.g. "fcpxml", "srt", "preview").
func (c *Client) GetDownload(ctx context.Context, projectID, fileType string) (*DownloadResponse, error) {
	var resp DownloadResponse
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/download/"+fileType, nil, &resp); err != nil {
		return nil, fmt.Errorf("get download %s/%s: %w", projectID, fileType, err)
	}
	return &resp, nil
}

// GetExtraSourceDownload returns a presigned URL for an extra source by index.
func (c *Client) GetExtraSourceDownload(ctx context.Context, projectID string, index int) (*DownloadResponse, error) {
	var resp DownloadResponse
	path := fmt.Sprintf("/projects/%s/download/extra-source/%d", projectID, index)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get extra source download: %w", err)
	}
	return &resp, nil
}

// --- Evaluation ---

// GetSegments returns the AI-authored segment list for a project.
func (c *Client) GetSegments(ctx context.Context, projectID string) (*SegmentsResponse, error) {
	var resp SegmentsResponse
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/segments", nil, &resp); err != nil {
		return nil, fmt.Errorf("get segments: %w", err)
	}
	return &resp, nil
}

// GetEvaluation returns the previously saved evaluation, or (nil, nil)
// when none exists yet. A 404 here means "no prior evaluation", not an error.
func (c *Client) GetEvaluation(ctx context.Context, projectID string) (*EvaluationResponse, error) {
	var resp EvaluationResponse
	err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/evaluation", nil, &resp)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get evaluation: %w", err)
	}
	return &resp, nil
}

// SaveEvaluation submits the full segment sequence in one request.
func (c *Client) SaveEvaluation(ctx context.Context, projectID string, segments []Segment) (*EvaluationResponse, error) {
	req := map[string]any{"segments": segments}
	var resp EvaluationResponse
	if err := c.do(ctx, http.MethodPost, "/projects/"+projectID+"/evaluation", req, &resp); err != nil {
		return nil, fmt.Errorf("save evaluation: %w", err)
	}
	return &resp, nil
}

// GetVideoURL returns the presigned streaming URL for the preview video.
func (c *Client) GetVideoURL(ctx context.Context, projectID string) (*VideoURLResponse, error) {
	var resp VideoURLResponse
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/video-url", nil, &resp); err != nil {
		return nil, fmt.Errorf("get video url: %w", err)
	}
	return &resp, nil
}

// UploadPart PUTs one raw byte range to a presigned part URL and returns
// the integrity token (ETag) from the response headers.
func (c *Client) UploadPart(ctx context.Context, uploadURL string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build part request: %w", err)
	}
	req.ContentLength = int64(len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("part upload request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}
	return resp.Header.Get("ETag"), nil
}
