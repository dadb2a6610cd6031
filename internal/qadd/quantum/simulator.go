package quantum

import (
	"context"
	"math"
	"math/cmplx"
	"sort"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
)

// MaxSimulatedQubits is the largest register the sparse simulator can index
const MaxSimulatedQubits = 64

// MaxAmplitudes bounds the number of stored basis states. A Draper adder keeps
// 2^(lenA+1) of them live between its QFT and inverse QFT.
const MaxAmplitudes = 1 << 16

// amplitudeCutoff drops basis states whose amplitude has cancelled out
const amplitudeCutoff = 1e-9

// StateVector is a sparse statevector: only basis states with non-negligible
// amplitude are stored. Bit q of a basis index is the value of qubit q.
type StateVector struct {
	NumQubits  int
	Amplitudes map[uint64]complex128
}

// NewStateVector creates |0...0⟩ over numQubits qubits
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits < 1 || numQubits > MaxSimulatedQubits {
		return nil, qadd.NewError(qadd.KindInvalidInput,
			"simulator supports 1..%d qubits, got %d", MaxSimulatedQubits, numQubits)
	}
	return &StateVector{
		NumQubits:  numQubits,
		Amplitudes: map[uint64]complex128{0: 1},
	}, nil
}

// ApplyGate applies a unitary gate. Measure gates are not unitary and are rejected.
func (s *StateVector) ApplyGate(g Gate) error {
	if g.Kind == Measure {
		return qadd.NewError(qadd.KindMalformedSequence, "%s is not a unitary gate", g.Kind)
	}
	if err := g.validate(s.NumQubits, 0); err != nil {
		return err
	}

	switch g.Kind {
	case BitFlip:
		s.applyX(g.Target)
	case Hadamard:
		s.applyH(g.Target)
	case ControlledPhase:
		s.applyCP(g.Controls[0], g.Target, g.Angle)
	case ConditionalFlip:
		s.applyCCX(g.Controls[0], g.Controls[1], g.Target)
	}

	return nil
}

func (s *StateVector) applyX(q int) {
	bit := uint64(1) << q
	next := make(map[uint64]complex128, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		next[i^bit] = amp
	}
	s.Amplitudes = next
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := uint64(1) << q
	next := make(map[uint64]complex128, 2*len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		amp *= hFactor
		if i&bit == 0 {
			next[i] += amp
			next[i|bit] += amp
		} else {
			next[i&^bit] += amp
			next[i] -= amp
		}
	}
	s.Amplitudes = next
	s.prune()
}

func (s *StateVector) applyCP(control, target int, theta float64) {
	cBit := uint64(1) << control
	tBit := uint64(1) << target
	phase := cmplx.Exp(complex(0, theta))
	for i, amp := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] = amp * phase
		}
	}
}

func (s *StateVector) applyCCX(controlA, controlB, target int) {
	aBit := uint64(1) << controlA
	bBit := uint64(1) << controlB
	tBit := uint64(1) << target
	next := make(map[uint64]complex128, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		if i&aBit != 0 && i&bBit != 0 {
			next[i^tBit] = amp
		} else {
			next[i] = amp
		}
	}
	s.Amplitudes = next
}

func (s *StateVector) prune() {
	for i, amp := range s.Amplitudes {
		if cmplx.Abs(amp) < amplitudeCutoff {
			delete(s.Amplitudes, i)
		}
	}
}

// Probability returns |amplitude|² of a basis state
func (s *StateVector) Probability(basis uint64) float64 {
	amp := s.Amplitudes[basis]
	return real(amp * cmplx.Conj(amp))
}

// BasisStates returns the stored basis indices in increasing order
func (s *StateVector) BasisStates() []uint64 {
	states := make([]uint64, 0, len(s.Amplitudes))
	for i := range s.Amplitudes {
		states = append(states, i)
	}
	sort.Slice(states, func(a, b int) bool { return states[a] < states[b] })
	return states
}

// Simulation is the result of running a sequence up to its measurements
type Simulation struct {
	State *StateVector
	// Measured maps classical bit index to the qubit it records
	Measured  map[int]int
	NumClbits int
}

// Simulate runs every unitary gate of seq and collects its measurement map.
// Measurements must be terminal: no gate may touch a qubit after it was measured.
func Simulate(seq *GateSequence) (*Simulation, error) {
	return SimulateContext(context.Background(), seq)
}

// SimulateContext is Simulate with cancellation checked between gates. A state
// that grows past MaxAmplitudes basis states aborts with KindInvalidInput.
func SimulateContext(ctx context.Context, seq *GateSequence) (*Simulation, error) {
	if seq == nil {
		return nil, qadd.NewError(qadd.KindInvalidInput, "no sequence to simulate")
	}

	state, err := NewStateVector(seq.NumQubits())
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		State:     state,
		Measured:  make(map[int]int),
		NumClbits: seq.NumClbits(),
	}
	measuredQubits := make(map[int]bool)

	for _, g := range seq.gates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.Kind == Measure {
			measuredQubits[g.Target] = true
			sim.Measured[g.Clbit] = g.Target
			continue
		}
		for _, q := range g.Qubits() {
			if measuredQubits[q] {
				return nil, qadd.NewError(qadd.KindMalformedSequence,
					"%s acts on qubit %d after it was measured", g.Kind, q)
			}
		}
		if err := state.ApplyGate(g); err != nil {
			return nil, err
		}
		if len(state.Amplitudes) > MaxAmplitudes {
			return nil, qadd.NewError(qadd.KindInvalidInput,
				"sequence %q exceeds the simulation budget of %d basis states", seq.Name(), MaxAmplitudes)
		}
	}

	return sim, nil
}

// OutcomeDistribution groups basis-state probabilities by measured bit string.
// Unmeasured classical bits read as 0.
func (sim *Simulation) OutcomeDistribution() map[string]float64 {
	dist := make(map[string]float64)
	n := sim.NumClbits

	for _, basis := range sim.State.BasisStates() {
		bits := make([]byte, n)
		for i := range bits {
			bits[i] = '0'
		}
		for clbit, qubit := range sim.Measured {
			if basis&(uint64(1)<<qubit) != 0 {
				bits[n-1-clbit] = '1'
			}
		}
		dist[string(bits)] += sim.State.Probability(basis)
	}

	return dist
}
