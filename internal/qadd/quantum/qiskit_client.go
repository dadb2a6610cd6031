package quantum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// QiskitConfig holds IBM Qiskit Runtime API configuration
type QiskitConfig struct {
	// IBM Cloud API Key
	APIKey string

	// Base URL for IBM Quantum API
	BaseURL string

	// Backend name (e.g., "ibmq_qasm_simulator", "ibm_kyoto")
	BackendName string

	// PollInterval is how often WaitForJob asks for the job status
	PollInterval time.Duration

	// HTTP client with timeout
	HTTPClient *http.Client
}

// QiskitClient handles IBM Qiskit Runtime API interactions
type QiskitClient struct {
	config      *QiskitConfig
	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// QiskitJob represents a quantum job
type QiskitJob struct {
	ID        string    `json:"id"`
	Backend   string    `json:"backend"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created"`
}

// QiskitResult represents job execution results
type QiskitResult struct {
	Counts        map[string]int `json:"counts"`
	Success       bool           `json:"success"`
	StatusMsg     string         `json:"status"`
	JobID         string         `json:"job_id"`
	ExecutionTime float64        `json:"execution_time"`
}

// QiskitCircuit represents an OpenQASM circuit
type QiskitCircuit struct {
	QASM    string `json:"qasm"`
	Shots   int    `json:"shots"`
	Backend string `json:"backend"`
}

// IBM Quantum API endpoints
const (
	DefaultQiskitURL = "https://api.quantum-computing.ibm.com"
	TokenEndpoint    = "/api/auth/login"
	JobsEndpoint     = "/api/Network/ibm-q/Groups/open/Projects/main/Jobs"
)

// Job status constants
const (
	JobStatusQueued    = "QUEUED"
	JobStatusRunning   = "RUNNING"
	JobStatusCompleted = "COMPLETED"
	JobStatusFailed    = "FAILED"
	JobStatusCancelled = "CANCELLED"
)

// NewQiskitClient creates a new Qiskit API client and authenticates it
func NewQiskitClient(ctx context.Context, config *QiskitConfig) (*QiskitClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("IBM Cloud API key is required")
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultQiskitURL
	}

	if config.PollInterval <= 0 {
		config.PollInterval = 2 * time.Second
	}

	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{
			Timeout: 60 * time.Second,
		}
	}

	client := &QiskitClient{
		config: config,
	}

	if err := client.authenticate(ctx); err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	return client, nil
}

// authenticate obtains an access token from IBM Cloud
func (c *QiskitClient) authenticate(ctx context.Context) error {
	payload := map[string]string{
		"apiToken": c.config.APIKey,
	}

	var result struct {
		ID          string    `json:"id"`
		TTL         int       `json:"ttl"`
		Created     time.Time `json:"created"`
		AccessToken string    `json:"access_token"`
	}

	if err := c.do(ctx, http.MethodPost, TokenEndpoint, payload, false, &result); err != nil {
		return err
	}

	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.TTL) * time.Second)

	return nil
}

// ensureAuthenticated checks if token is valid and refreshes if needed
func (c *QiskitClient) ensureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().After(c.tokenExpiry.Add(-5 * time.Minute)) {
		return c.authenticate(ctx)
	}
	return nil
}

func (c *QiskitClient) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// do sends one JSON request and decodes the JSON response into out
func (c *QiskitClient) do(ctx context.Context, method, path string, payload interface{}, authorized bool, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.token())
	}

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s failed: %s (status: %d)", method, path, string(respBody), resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// SubmitJob submits a quantum circuit for execution
func (c *QiskitClient) SubmitJob(ctx context.Context, circuit *QiskitCircuit) (*QiskitJob, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	var job QiskitJob
	if err := c.do(ctx, http.MethodPost, JobsEndpoint, circuit, true, &job); err != nil {
		return nil, fmt.Errorf("job submission failed: %w", err)
	}

	return &job, nil
}

// GetJobStatus retrieves the status of a quantum job
func (c *QiskitClient) GetJobStatus(ctx context.Context, jobID string) (*QiskitJob, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	var job QiskitJob
	if err := c.do(ctx, http.MethodGet, JobsEndpoint+"/"+jobID, nil, true, &job); err != nil {
		return nil, fmt.Errorf("get job status failed: %w", err)
	}

	return &job, nil
}

// WaitForJob polls until the job completes, fails, or maxWaitTime elapses
func (c *QiskitClient) WaitForJob(ctx context.Context, jobID string, maxWaitTime time.Duration) (*QiskitJob, error) {
	timeout := time.After(maxWaitTime)
	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timeout:
			return nil, fmt.Errorf("job %s timed out after %v", jobID, maxWaitTime)

		case <-ticker.C:
			job, err := c.GetJobStatus(ctx, jobID)
			if err != nil {
				return nil, err
			}

			switch job.Status {
			case JobStatusCompleted:
				return job, nil
			case JobStatusFailed:
				return job, fmt.Errorf("job %s failed", jobID)
			case JobStatusCancelled:
				return job, fmt.Errorf("job %s was cancelled", jobID)
			}
		}
	}
}

// GetJobResult retrieves the results of a completed job
func (c *QiskitClient) GetJobResult(ctx context.Context, jobID string) (*QiskitResult, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	var result QiskitResult
	if err := c.do(ctx, http.MethodGet, JobsEndpoint+"/"+jobID+"/results", nil, true, &result); err != nil {
		return nil, fmt.Errorf("get job result failed: %w", err)
	}

	return &result, nil
}

// CancelJob cancels a running or queued job
func (c *QiskitClient) CancelJob(ctx context.Context, jobID string) error {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return err
	}

	if err := c.do(ctx, http.MethodPost, JobsEndpoint+"/"+jobID+"/cancel", nil, true, nil); err != nil {
		return fmt.Errorf("cancel job failed: %w", err)
	}

	return nil
}

// ExecuteCircuitSync executes a circuit synchronously and returns results
func (c *QiskitClient) ExecuteCircuitSync(ctx context.Context, circuit *QiskitCircuit, maxWaitTime time.Duration) (*QiskitResult, error) {
	job, err := c.SubmitJob(ctx, circuit)
	if err != nil {
		return nil, err
	}

	completedJob, err := c.WaitForJob(ctx, job.ID, maxWaitTime)
	if err != nil {
		return nil, fmt.Errorf("job execution failed: %w", err)
	}

	result, err := c.GetJobResult(ctx, completedJob.ID)
	if err != nil {
		return nil, fmt.Errorf("result retrieval failed: %w", err)
	}

	return result, nil
}
