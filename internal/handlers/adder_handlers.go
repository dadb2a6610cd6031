package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaskrrish/Go-QAdd/internal/metrics"
	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	qaddcore "github.com/jaskrrish/Go-QAdd/internal/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/crypto"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
	"go.uber.org/zap"
)

// AdderHandler manages adder-related HTTP requests
type AdderHandler struct {
	jobManager    *qaddcore.JobManager
	fingerprinter *crypto.Fingerprinter
	logger        *zap.Logger
}

// NewAdderHandler creates a new adder handler on top of a job manager
func NewAdderHandler(jobManager *qaddcore.JobManager, fingerprinter *crypto.Fingerprinter, logger *zap.Logger) *AdderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdderHandler{
		jobManager:    jobManager,
		fingerprinter: fingerprinter,
		logger:        logger,
	}
}

// CreateJobHandler handles POST /api/v1/adder/jobs
// Creates an addition job and runs it to completion
func (h *AdderHandler) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req qadd.JobCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.jobManager.CreateJob(&req)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	done, err := h.jobManager.ExecuteJob(r.Context(), job.JobID)
	if err != nil {
		h.logger.Warn("addition job failed", zap.String("job_id", job.JobID.String()), zap.Error(err))
		failed, getErr := h.jobManager.GetJob(job.JobID)
		if getErr != nil {
			failed = job
		}
		respondWithJSON(w, statusForError(err), qadd.JobResponse{
			Job:   failed,
			Error: err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusCreated, qadd.JobResponse{
		Job: done,
	})
}

// JobHandler routes /api/v1/adder/jobs/{id} by method
func (h *AdderHandler) JobHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetJobHandler(w, r)
	case http.MethodDelete:
		h.DeleteJobHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GetJobHandler handles GET /api/v1/adder/jobs/{id}
func (h *AdderHandler) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	job, err := h.jobManager.GetJob(jobID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, qadd.JobResponse{
		Job: job,
	})
}

// DeleteJobHandler handles DELETE /api/v1/adder/jobs/{id}
func (h *AdderHandler) DeleteJobHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID, ok := parseJobID(w, r)
	if !ok {
		return
	}

	if err := h.jobManager.DeleteJob(jobID); err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Job deleted successfully",
	})
}

// CircuitHandler handles GET /api/v1/adder/circuit?a=&b=
// Returns the assembled circuit as OpenQASM without running it
func (h *AdderHandler) CircuitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	a, errA := strconv.ParseInt(query.Get("a"), 10, 64)
	b, errB := strconv.ParseInt(query.Get("b"), 10, 64)
	if errA != nil || errB != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameters a and b must be integers")
		return
	}

	width, err := qaddcore.BitWidth(a, b)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	circuit, err := qaddcore.BuildAdder(a, b)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	metrics.CircuitsAssembled.WithLabelValues("circuit").Inc()
	metrics.CircuitGates.Observe(float64(circuit.Len()))

	fingerprint := ""
	if h.fingerprinter != nil {
		if fingerprint, err = h.fingerprinter.Fingerprint(circuit); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respondWithJSON(w, http.StatusOK, qadd.CircuitResponse{
		A:           a,
		B:           b,
		Width:       width,
		NumQubits:   circuit.NumQubits(),
		NumClbits:   circuit.NumClbits(),
		GateCount:   circuit.Len(),
		Fingerprint: fingerprint,
		QASM:        quantum.ToQASM(circuit),
	})
}

// IndexHandler handles GET / with the service description and operand limits
func (h *AdderHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	index := map[string]interface{}{
		"service":     "Quantum Fourier Adder",
		"version":     "1.0.0",
		"max_operand": qadd.MaxOperand,
		"max_shots":   qadd.MaxShots,
		"routes": []string{
			"/health",
			"/metrics",
			"/api/v1/adder/jobs",
			"/api/v1/adder/jobs/{id}",
			"/api/v1/adder/circuit",
		},
	}
	if backend := h.jobManager.Backend(); backend != nil {
		index["backend"] = backend.Name()
	}

	respondWithJSON(w, http.StatusOK, index)
}

// HealthCheckHandler handles GET /health and GET /api/v1/adder/health
// Returns health status of the adder service and its execution backend
func (h *AdderHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"service":   "Quantum Fourier Adder",
		"version":   "1.0.0",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if backend := h.jobManager.Backend(); backend != nil {
		health["backend"] = backend.Name()
		health["simulator"] = backend.IsSimulator()
	}

	respondWithJSON(w, http.StatusOK, health)
}

// parseJobID extracts the job ID from /api/v1/adder/jobs/{id}
func parseJobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 6 {
		respondWithError(w, http.StatusBadRequest, "Invalid URL format")
		return uuid.Nil, false
	}

	jobID, err := uuid.Parse(pathParts[5])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return uuid.Nil, false
	}

	return jobID, true
}

// statusForError maps adder error kinds to HTTP status codes
func statusForError(err error) int {
	switch qadd.KindOf(err) {
	case qadd.KindInvalidInput, qadd.KindWidthOverflow:
		return http.StatusBadRequest
	case qadd.KindNotFound:
		return http.StatusNotFound
	case qadd.KindExpired:
		return http.StatusGone
	case qadd.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
