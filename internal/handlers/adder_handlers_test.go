package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	qaddcore "github.com/jaskrrish/Go-QAdd/internal/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/crypto"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*AdderHandler, http.Handler) {
	t.Helper()

	backend := quantum.NewSimulatorBackend(false, 0.0)
	backend.SetSeed(11)

	fingerprinter, err := crypto.NewFingerprinter(crypto.SHA256Method)
	require.NoError(t, err)

	jm := qaddcore.NewJobManager(backend, fingerprinter, zap.NewNop())
	h := NewAdderHandler(jm, fingerprinter, zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.IndexHandler)
	mux.HandleFunc("/health", h.HealthCheckHandler)
	mux.HandleFunc("/api/v1/adder/health", h.HealthCheckHandler)
	mux.HandleFunc("/api/v1/adder/jobs", h.CreateJobHandler)
	mux.HandleFunc("/api/v1/adder/jobs/", h.JobHandler)
	mux.HandleFunc("/api/v1/adder/circuit", h.CircuitHandler)

	return h, LoggingMiddleware(zap.NewNop(), mux)
}

func do(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeJob(t *testing.T, rec *httptest.ResponseRecorder) qadd.JobResponse {
	t.Helper()
	var resp qadd.JobResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestIndexAndHealth(t *testing.T) {
	_, server := newTestServer(t)

	rec := do(t, server, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var index map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&index))
	assert.Equal(t, "StatevectorSimulator", index["backend"])
	assert.Equal(t, float64(qadd.MaxOperand), index["max_operand"])

	rec = do(t, server, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, path := range []string{"/health", "/api/v1/adder/health"} {
		rec = do(t, server, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		var health map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
		assert.Equal(t, "healthy", health["status"], path)
		assert.Equal(t, "StatevectorSimulator", health["backend"], path)
		assert.Equal(t, true, health["simulator"], path)
	}

	rec = do(t, server, http.MethodPost, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCreateJobEndpoint(t *testing.T) {
	_, server := newTestServer(t)

	rec := do(t, server, http.MethodPost, "/api/v1/adder/jobs", qadd.JobCreateRequest{A: 50, B: 50, Shots: 16})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeJob(t, rec)
	require.NotNil(t, resp.Job)
	assert.Empty(t, resp.Error)
	assert.Equal(t, qadd.JobCompleted, resp.Job.Status)
	require.NotNil(t, resp.Job.Sum)
	assert.Equal(t, uint64(100), *resp.Job.Sum)
	assert.True(t, resp.Job.Verified)
	assert.Len(t, resp.Job.Fingerprint, 64)

	// the job can be fetched and deleted afterwards
	path := "/api/v1/adder/jobs/" + resp.Job.JobID.String()

	rec = do(t, server, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, resp.Job.JobID, decodeJob(t, rec).Job.JobID)

	rec = do(t, server, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, server, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, server, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJobEndpointErrors(t *testing.T) {
	_, server := newTestServer(t)

	tests := []struct {
		name   string
		method string
		body   interface{}
		status int
	}{
		{"Negative operand", http.MethodPost, qadd.JobCreateRequest{A: -4, B: 1}, http.StatusBadRequest},
		{"Oversized operand", http.MethodPost, qadd.JobCreateRequest{A: 1 << 28, B: 1}, http.StatusBadRequest},
		{"Too many shots", http.MethodPost, qadd.JobCreateRequest{A: 1, B: 1, Shots: qadd.MaxShots + 1}, http.StatusBadRequest},
		{"Bad body", http.MethodPost, "not a request", http.StatusBadRequest},
		{"Wrong method", http.MethodGet, nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, server, tt.method, "/api/v1/adder/jobs", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestJobEndpointBadIDs(t *testing.T) {
	_, server := newTestServer(t)

	rec := do(t, server, http.MethodGet, "/api/v1/adder/jobs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodGet, "/api/v1/adder/jobs/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, server, http.MethodPut, "/api/v1/adder/jobs/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCircuitEndpoint(t *testing.T) {
	_, server := newTestServer(t)

	rec := do(t, server, http.MethodGet, "/api/v1/adder/circuit?a=3&b=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp qadd.CircuitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	circuit, err := qaddcore.BuildAdder(3, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.A)
	assert.Equal(t, 3, resp.Width)
	assert.Equal(t, 9, resp.NumQubits)
	assert.Equal(t, 5, resp.NumClbits)
	assert.Equal(t, circuit.Len(), resp.GateCount)
	assert.Equal(t, quantum.ToQASM(circuit), resp.QASM)
	assert.True(t, strings.HasPrefix(resp.QASM, "OPENQASM 2.0;"))
	assert.Len(t, resp.Fingerprint, 64)

	rec = do(t, server, http.MethodGet, "/api/v1/adder/circuit?a=-3&b=2", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodGet, "/api/v1/adder/circuit?a=three&b=2", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{qadd.NewError(qadd.KindInvalidInput, "bad"), http.StatusBadRequest},
		{qadd.NewError(qadd.KindWidthOverflow, "wide"), http.StatusBadRequest},
		{qadd.ErrJobNotFound, http.StatusNotFound},
		{qadd.ErrJobExpired, http.StatusGone},
		{qadd.ErrJobInProgress, http.StatusConflict},
		{qadd.NewError(qadd.KindMalformedSequence, "broken"), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusForError(tt.err), "%v", tt.err)
	}
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/v1/adder/jobs/{id}", routeLabel("/api/v1/adder/jobs/"+uuid.New().String()))
	assert.Equal(t, "/api/v1/adder/jobs", routeLabel("/api/v1/adder/jobs"))
	assert.Equal(t, "/health", routeLabel("/health"))
}
