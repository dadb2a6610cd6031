package quantum

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
)

// Backend executes gate sequences and reports measurement counts
type Backend interface {
	// Name returns the name of the quantum backend
	Name() string

	// Run executes seq for the given number of shots and returns the measured bit strings
	Run(ctx context.Context, seq *GateSequence, shots int) (Counts, error)

	// IsSimulator returns true if this is a simulator, false for real hardware
	IsSimulator() bool
}

func checkRunArgs(seq *GateSequence, shots int) error {
	if seq == nil {
		return qadd.NewError(qadd.KindInvalidInput, "no sequence to run")
	}
	if shots < 1 {
		return qadd.NewError(qadd.KindInvalidInput, "shots must be positive, got %d", shots)
	}
	if seq.CountKind(Measure) == 0 {
		return qadd.NewError(qadd.KindInvalidInput, "sequence %q has no measurements", seq.Name())
	}
	return nil
}

// SimulatorBackend samples measurement outcomes from a sparse statevector simulation
type SimulatorBackend struct {
	name          string
	channel       *ReadoutChannel
	simulateNoise bool
	noiseLevel    float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatorBackend creates a new quantum simulator backend
func NewSimulatorBackend(simulateNoise bool, noiseLevel float64) *SimulatorBackend {
	return &SimulatorBackend{
		name:          "StatevectorSimulator",
		channel:       NewReadoutChannel(noiseLevel),
		simulateNoise: simulateNoise,
		noiseLevel:    noiseLevel,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed reseeds the sampler so runs become reproducible
func (s *SimulatorBackend) SetSeed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewSource(seed))
}

// Name returns the name of the simulator backend
func (s *SimulatorBackend) Name() string {
	return s.name
}

// Run simulates seq once and draws shots samples from its outcome distribution
func (s *SimulatorBackend) Run(ctx context.Context, seq *GateSequence, shots int) (Counts, error) {
	if err := checkRunArgs(seq, shots); err != nil {
		return nil, err
	}

	sim, err := SimulateContext(ctx, seq)
	if err != nil {
		return nil, err
	}

	dist := sim.OutcomeDistribution()
	outcomes := make([]string, 0, len(dist))
	total := 0.0
	for outcome, p := range dist {
		outcomes = append(outcomes, outcome)
		total += p
	}
	sort.Strings(outcomes)

	if len(outcomes) == 0 || total <= 0 {
		return nil, fmt.Errorf("simulation of %q produced an empty distribution", seq.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(Counts)
	for shot := 0; shot < shots; shot++ {
		r := s.rng.Float64() * total
		chosen := outcomes[len(outcomes)-1]
		for _, outcome := range outcomes {
			r -= dist[outcome]
			if r < 0 {
				chosen = outcome
				break
			}
		}
		if s.simulateNoise {
			chosen = s.channel.Transmit(chosen, s.rng)
		}
		counts[chosen]++
	}

	return counts, nil
}

// GetNoiseLevel returns the readout noise level of the simulator
func (s *SimulatorBackend) GetNoiseLevel() float64 {
	return s.noiseLevel
}

// IsSimulator returns true since this is a simulator
func (s *SimulatorBackend) IsSimulator() bool {
	return true
}

// QiskitBackend runs sequences on IBM Quantum through the REST client
type QiskitBackend struct {
	name        string
	deviceName  string
	client      *QiskitClient
	maxWaitTime time.Duration
}

// NewQiskitBackend creates a backend that submits OpenQASM jobs to deviceName
func NewQiskitBackend(client *QiskitClient, deviceName string, maxWaitTime time.Duration) *QiskitBackend {
	if maxWaitTime <= 0 {
		maxWaitTime = 10 * time.Minute
	}
	return &QiskitBackend{
		name:        "IBM-Qiskit-" + deviceName,
		deviceName:  deviceName,
		client:      client,
		maxWaitTime: maxWaitTime,
	}
}

// Name returns the name of the Qiskit backend
func (q *QiskitBackend) Name() string {
	return q.name
}

// Run exports seq as OpenQASM, executes it remotely and returns the reported counts
func (q *QiskitBackend) Run(ctx context.Context, seq *GateSequence, shots int) (Counts, error) {
	if err := checkRunArgs(seq, shots); err != nil {
		return nil, err
	}

	result, err := q.client.ExecuteCircuitSync(ctx, &QiskitCircuit{
		QASM:    ToQASM(seq),
		Shots:   shots,
		Backend: q.deviceName,
	}, q.maxWaitTime)
	if err != nil {
		return nil, err
	}

	if !result.Success {
		return nil, fmt.Errorf("job %s did not succeed: %s", result.JobID, result.StatusMsg)
	}

	return Counts(result.Counts), nil
}

// IsSimulator returns false for Qiskit (real quantum hardware or IBM simulator)
func (q *QiskitBackend) IsSimulator() bool {
	return false
}
