package qadd

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the current state of an addition job
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// BackendType represents the execution backend a job runs on
type BackendType string

const (
	BackendSimulator BackendType = "simulator"
	BackendQiskit    BackendType = "qiskit"
)

const (
	DefaultShots      = 1024
	MaxShots          = 100000
	DefaultTTLMinutes = 60
	MaxTTLMinutes     = 10080 // 7 days

	// MaxOperand keeps a job's QFT span within 16 qubits
	MaxOperand = 1<<13 - 1
)

// Outcome is one decoded measurement outcome
type Outcome struct {
	Bits  string `json:"bits"`
	Value uint64 `json:"value"`
	Count int    `json:"count"`
}

// AdditionJob represents one request to add two integers on a quantum backend
type AdditionJob struct {
	JobID       uuid.UUID  `json:"job_id"`
	A           int64      `json:"a"`
	B           int64      `json:"b"`
	Shots       int        `json:"shots"`
	Status      JobStatus  `json:"status"`
	Backend     string     `json:"backend"`
	Width       int        `json:"width,omitempty"`
	NumQubits   int        `json:"num_qubits,omitempty"`
	GateCount   int        `json:"gate_count,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	Sum         *uint64    `json:"sum,omitempty"`
	Verified    bool       `json:"verified"`
	Outcomes    []Outcome  `json:"outcomes,omitempty"`
	Message     string     `json:"message,omitempty"`
	ErrorKind   ErrorKind  `json:"error_kind,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	DurationMs  int64      `json:"duration_ms,omitempty"`
}

// JobCreateRequest represents a request to add two integers
type JobCreateRequest struct {
	A          int64 `json:"a"`
	B          int64 `json:"b"`
	Shots      int   `json:"shots,omitempty"`
	TTLMinutes int   `json:"ttl_minutes,omitempty"`
}

// JobResponse represents the response when creating or querying a job
type JobResponse struct {
	Job   *AdditionJob `json:"job"`
	Error string       `json:"error,omitempty"`
}

// CircuitResponse describes an assembled adder circuit
type CircuitResponse struct {
	A           int64  `json:"a"`
	B           int64  `json:"b"`
	Width       int    `json:"width"`
	NumQubits   int    `json:"num_qubits"`
	NumClbits   int    `json:"num_clbits"`
	GateCount   int    `json:"gate_count"`
	Fingerprint string `json:"fingerprint"`
	QASM        string `json:"qasm"`
}

// Validate validates a job create request and fills in defaults
func (r *JobCreateRequest) Validate() error {
	if r.A < 0 || r.B < 0 {
		return NewError(KindInvalidInput, "operands must be non-negative, got a=%d b=%d", r.A, r.B)
	}

	if r.A > MaxOperand || r.B > MaxOperand {
		return NewError(KindInvalidInput, "operands must not exceed %d, got a=%d b=%d", MaxOperand, r.A, r.B)
	}

	if r.Shots == 0 {
		r.Shots = DefaultShots
	}

	if r.Shots < 1 || r.Shots > MaxShots {
		return NewError(KindInvalidInput, "shots must be between 1 and %d", MaxShots)
	}

	if r.TTLMinutes == 0 {
		r.TTLMinutes = DefaultTTLMinutes
	}

	if r.TTLMinutes < 1 || r.TTLMinutes > MaxTTLMinutes {
		return NewError(KindInvalidInput, "TTL must be between 1 and %d minutes", MaxTTLMinutes)
	}

	return nil
}
