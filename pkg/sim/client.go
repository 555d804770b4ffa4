package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is the job service interface. The HTTP implementation talks
// to the real service; the Fake in mock.go serves tests and the CLI's
// offline mode.
type Client interface {
	// UploadSimulation submits a zip archive of simulation inputs.
	UploadSimulation(ctx context.Context, zipPath string, def JobDefinition) (*PreJob, error)

	// GetJob fetches the current result of a submitted job.
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)
}

// HTTPClient implements Client against the job service REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewHTTPClient creates a client for the service at baseURL.
// A nil logger disables logging.
func NewHTTPClient(baseURL string, log *zap.Logger) *HTTPClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    http.DefaultClient,
		log:     log,
	}
}

// Compile-time interface check.
var _ Client = (*HTTPClient)(nil)

// UploadSimulation POSTs the archive and job definition as a multipart
// form to /v1/simulations.
func (c *HTTPClient) UploadSimulation(ctx context.Context, zipPath string, def JobDefinition) (*PreJob, error) {
	f, err := os.Open(zipPath)
	if err != nil {
		return nil, fmt.Errorf("sim: opening archive: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	defJSON, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("sim: encoding job definition: %w", err)
	}
	if err := mw.WriteField("job", string(defJSON)); err != nil {
		return nil, fmt.Errorf("sim: writing job field: %w", err)
	}

	part, err := mw.CreateFormFile("file", filepath.Base(zipPath))
	if err != nil {
		return nil, fmt.Errorf("sim: creating file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("sim: copying archive: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/simulations", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.log.Info("uploading simulation",
		zap.String("job", def.Name),
		zap.String("archive", zipPath))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sim: upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("sim: upload failed: %s", resp.Status)
	}

	var pre PreJob
	if err := json.NewDecoder(resp.Body).Decode(&pre); err != nil {
		return nil, fmt.Errorf("sim: decoding upload response: %w", err)
	}

	c.log.Info("simulation accepted",
		zap.String("job", pre.Name),
		zap.String("id", pre.ID.String()))
	return &pre, nil
}

// GetJob fetches /v1/jobs/{id}.
func (c *HTTPClient) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sim: job request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("sim: job %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sim: job request failed: %s", resp.Status)
	}

	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("sim: decoding job response: %w", err)
	}
	return &job, nil
}
