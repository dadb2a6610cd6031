package qadd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaskrrish/Go-QAdd/internal/metrics"
	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/crypto"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
	"go.uber.org/zap"
)

// JobManager stores addition jobs and runs them on a backend
type JobManager struct {
	jobs          map[uuid.UUID]*qadd.AdditionJob
	mutex         sync.RWMutex
	backend       quantum.Backend
	backendType   qadd.BackendType
	fingerprinter *crypto.Fingerprinter
	logger        *zap.Logger
}

// NewJobManager creates a new job manager
func NewJobManager(backend quantum.Backend, fingerprinter *crypto.Fingerprinter, logger *zap.Logger) *JobManager {
	if logger == nil {
		logger = zap.NewNop()
	}

	backendType := qadd.BackendQiskit
	if backend != nil && backend.IsSimulator() {
		backendType = qadd.BackendSimulator
	}

	return &JobManager{
		jobs:          make(map[uuid.UUID]*qadd.AdditionJob),
		backend:       backend,
		backendType:   backendType,
		fingerprinter: fingerprinter,
		logger:        logger,
	}
}

// Backend returns the backend jobs are executed on
func (jm *JobManager) Backend() quantum.Backend {
	return jm.backend
}

// CreateJob validates the request and stores a pending job
func (jm *JobManager) CreateJob(req *qadd.JobCreateRequest) (*qadd.AdditionJob, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	jm.mutex.Lock()
	defer jm.mutex.Unlock()

	jobID := uuid.New()
	now := time.Now()

	job := &qadd.AdditionJob{
		JobID:     jobID,
		A:         req.A,
		B:         req.B,
		Shots:     req.Shots,
		Status:    qadd.JobPending,
		Backend:   string(jm.backendType),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(req.TTLMinutes) * time.Minute),
	}

	jm.jobs[jobID] = job

	jm.logger.Debug("job created",
		zap.String("job_id", jobID.String()),
		zap.Int64("a", req.A),
		zap.Int64("b", req.B),
		zap.Int("shots", req.Shots))

	return snapshot(job), nil
}

// ExecuteJob runs a pending job to completion and records its outcome
func (jm *JobManager) ExecuteJob(ctx context.Context, jobID uuid.UUID) (*qadd.AdditionJob, error) {
	jm.mutex.Lock()
	job, exists := jm.jobs[jobID]
	if !exists {
		jm.mutex.Unlock()
		return nil, qadd.ErrJobNotFound
	}

	if time.Now().After(job.ExpiresAt) {
		jm.mutex.Unlock()
		return nil, qadd.ErrJobExpired
	}

	if job.Status != qadd.JobPending {
		jm.mutex.Unlock()
		return nil, qadd.ErrJobInProgress
	}

	job.Status = qadd.JobRunning
	a, b, shots := job.A, job.B, job.Shots
	jm.mutex.Unlock()

	log := jm.logger.With(zap.String("job_id", jobID.String()), zap.String("backend", jm.backendName()))

	start := time.Now()
	result, err := Add(ctx, jm.backend, a, b, shots)
	elapsed := time.Since(start)
	metrics.ExecutionDuration.WithLabelValues(jm.backendName()).Observe(elapsed.Seconds())

	if err != nil {
		jm.finish(jobID, func(job *qadd.AdditionJob) {
			job.Status = qadd.JobFailed
			job.Message = err.Error()
			job.ErrorKind = qadd.KindOf(err)
			job.DurationMs = elapsed.Milliseconds()
		})
		metrics.JobsTotal.WithLabelValues(string(qadd.JobFailed)).Inc()
		log.Warn("job failed", zap.Error(err))
		return nil, fmt.Errorf("addition job %s failed: %w", jobID, err)
	}

	metrics.CircuitsAssembled.WithLabelValues("job").Inc()
	metrics.CircuitGates.Observe(float64(result.Circuit.Len()))

	fingerprint := ""
	if jm.fingerprinter != nil {
		if fingerprint, err = jm.fingerprinter.Fingerprint(result.Circuit); err != nil {
			log.Warn("fingerprint failed", zap.Error(err))
		}
	}

	verifyErr := result.Verify()
	if verifyErr != nil {
		metrics.DecodeMismatches.Inc()
		log.Warn("decoded sum mismatch", zap.Error(verifyErr))
	}

	updated := jm.finish(jobID, func(job *qadd.AdditionJob) {
		sum := result.Sum
		job.Status = qadd.JobCompleted
		job.Width = result.Width
		job.NumQubits = result.Circuit.NumQubits()
		job.GateCount = result.Circuit.Len()
		job.Fingerprint = fingerprint
		job.Sum = &sum
		job.Outcomes = result.Outcomes
		job.Verified = verifyErr == nil
		job.DurationMs = elapsed.Milliseconds()
		if verifyErr != nil {
			job.Message = verifyErr.Error()
			job.ErrorKind = qadd.KindDecodeMismatch
		} else {
			job.Message = fmt.Sprintf("%d + %d = %d", a, b, sum)
		}
	})
	metrics.JobsTotal.WithLabelValues(string(qadd.JobCompleted)).Inc()

	log.Info("job completed",
		zap.Uint64("sum", result.Sum),
		zap.Bool("verified", verifyErr == nil),
		zap.Int("gates", result.Circuit.Len()),
		zap.Duration("elapsed", elapsed))

	if updated == nil {
		return nil, qadd.ErrJobNotFound
	}
	return updated, nil
}

func (jm *JobManager) backendName() string {
	if jm.backend == nil {
		return "none"
	}
	return jm.backend.Name()
}

// finish applies update to a job, stamps its completion time and returns a snapshot.
// It returns nil when the job was deleted while running.
func (jm *JobManager) finish(jobID uuid.UUID, update func(job *qadd.AdditionJob)) *qadd.AdditionJob {
	jm.mutex.Lock()
	defer jm.mutex.Unlock()

	job, exists := jm.jobs[jobID]
	if !exists {
		return nil
	}

	update(job)
	now := time.Now()
	job.CompletedAt = &now

	return snapshot(job)
}

// GetJob retrieves a job by ID
func (jm *JobManager) GetJob(jobID uuid.UUID) (*qadd.AdditionJob, error) {
	jm.mutex.RLock()
	defer jm.mutex.RUnlock()

	job, exists := jm.jobs[jobID]
	if !exists {
		return nil, qadd.ErrJobNotFound
	}

	if time.Now().After(job.ExpiresAt) {
		return nil, qadd.ErrJobExpired
	}

	return snapshot(job), nil
}

// DeleteJob removes a job
func (jm *JobManager) DeleteJob(jobID uuid.UUID) error {
	jm.mutex.Lock()
	defer jm.mutex.Unlock()

	if _, exists := jm.jobs[jobID]; !exists {
		return qadd.ErrJobNotFound
	}

	delete(jm.jobs, jobID)
	return nil
}

// CleanupExpiredJobs removes expired jobs and returns how many were removed
func (jm *JobManager) CleanupExpiredJobs() int {
	jm.mutex.Lock()
	defer jm.mutex.Unlock()

	now := time.Now()
	removed := 0

	for id, job := range jm.jobs {
		if now.After(job.ExpiresAt) {
			delete(jm.jobs, id)
			removed++
		}
	}

	if removed > 0 {
		jm.logger.Info("expired jobs removed", zap.Int("count", removed))
	}

	return removed
}

// snapshot copies a job so callers never share state with the store
func snapshot(job *qadd.AdditionJob) *qadd.AdditionJob {
	c := *job
	if job.Sum != nil {
		sum := *job.Sum
		c.Sum = &sum
	}
	if job.CompletedAt != nil {
		at := *job.CompletedAt
		c.CompletedAt = &at
	}
	if job.Outcomes != nil {
		c.Outcomes = make([]qadd.Outcome, len(job.Outcomes))
		copy(c.Outcomes, job.Outcomes)
	}
	return &c
}
