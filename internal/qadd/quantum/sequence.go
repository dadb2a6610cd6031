package quantum

import (
	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
)

// GateSequence is an immutable, validated list of gates over a fixed register.
// Every qubit index is below NumQubits and every classical bit below NumClbits.
type GateSequence struct {
	name      string
	numQubits int
	numClbits int
	gates     []Gate
}

// Name returns the label the sequence was built with
func (s *GateSequence) Name() string {
	return s.name
}

// NumQubits returns the declared qubit count
func (s *GateSequence) NumQubits() int {
	return s.numQubits
}

// NumClbits returns the declared classical bit count
func (s *GateSequence) NumClbits() int {
	return s.numClbits
}

// Len returns the number of gates
func (s *GateSequence) Len() int {
	return len(s.gates)
}

// Gate returns the i-th gate
func (s *GateSequence) Gate(i int) Gate {
	return s.gates[i].clone()
}

// Gates returns a copy of the gate list
func (s *GateSequence) Gates() []Gate {
	gates := make([]Gate, len(s.gates))
	for i, g := range s.gates {
		gates[i] = g.clone()
	}
	return gates
}

// CountKind returns how many gates of the given kind the sequence holds
func (s *GateSequence) CountKind(kind GateKind) int {
	count := 0
	for _, g := range s.gates {
		if g.Kind == kind {
			count++
		}
	}
	return count
}

// Equal reports whether two sequences have the same register sizes and gates
func (s *GateSequence) Equal(other *GateSequence) bool {
	if s.numQubits != other.numQubits || s.numClbits != other.numClbits || len(s.gates) != len(other.gates) {
		return false
	}
	for i := range s.gates {
		if !s.gates[i].Equal(other.gates[i]) {
			return false
		}
	}
	return true
}

// Inverse returns the sequence that undoes s: gates in reverse order with every
// ControlledPhase angle negated. Sequences containing a Measure cannot be inverted.
func (s *GateSequence) Inverse() (*GateSequence, error) {
	inverse := &GateSequence{
		name:      s.name + "_dg",
		numQubits: s.numQubits,
		numClbits: s.numClbits,
		gates:     make([]Gate, 0, len(s.gates)),
	}

	for i := len(s.gates) - 1; i >= 0; i-- {
		g := s.gates[i].clone()
		switch g.Kind {
		case Measure:
			return nil, qadd.NewError(qadd.KindMalformedSequence,
				"sequence %q contains a measurement and cannot be inverted", s.name)
		case ControlledPhase:
			g.Angle = -g.Angle
		}
		inverse.gates = append(inverse.gates, g)
	}

	return inverse, nil
}

// SequenceBuilder accumulates gates for a GateSequence.
// The first invalid call is remembered; later calls are ignored and Build returns that error.
type SequenceBuilder struct {
	name      string
	numQubits int
	numClbits int
	gates     []Gate
	err       error
}

// NewSequenceBuilder creates a builder for a register of numQubits qubits and numClbits classical bits
func NewSequenceBuilder(name string, numQubits, numClbits int) *SequenceBuilder {
	b := &SequenceBuilder{
		name:      name,
		numQubits: numQubits,
		numClbits: numClbits,
		gates:     make([]Gate, 0),
	}

	if numQubits < 1 || numClbits < 0 {
		b.err = qadd.NewError(qadd.KindInvalidInput,
			"sequence %q needs at least one qubit and a non-negative classical bit count, got %d/%d",
			name, numQubits, numClbits)
	}

	return b
}

// Add appends a gate after validating it against the register
func (b *SequenceBuilder) Add(g Gate) {
	if b.err != nil {
		return
	}
	if err := g.validate(b.numQubits, b.numClbits); err != nil {
		b.err = err
		return
	}
	b.gates = append(b.gates, g.clone())
}

// X appends a BitFlip
func (b *SequenceBuilder) X(qubit int) {
	b.Add(X(qubit))
}

// H appends a Hadamard
func (b *SequenceBuilder) H(qubit int) {
	b.Add(H(qubit))
}

// CP appends a ControlledPhase
func (b *SequenceBuilder) CP(control, target int, angle float64) {
	b.Add(CP(control, target, angle))
}

// CCX appends a ConditionalFlip
func (b *SequenceBuilder) CCX(controlA, controlB, target int) {
	b.Add(CCX(controlA, controlB, target))
}

// Measure appends a Measure of qubit into clbit
func (b *SequenceBuilder) Measure(qubit, clbit int) {
	b.Add(MeasureGate(qubit, clbit))
}

// Embed appends sub with every qubit index shifted by offset.
// clbits maps sub's classical bit i to the builder's classical bit clbits[i]; it may be nil
// when sub declares no classical bits.
func (b *SequenceBuilder) Embed(sub *GateSequence, offset int, clbits []int) error {
	if b.err != nil {
		return b.err
	}

	switch {
	case sub == nil:
		b.err = qadd.NewError(qadd.KindMalformedSequence, "cannot embed a nil sequence")
	case offset < 0:
		b.err = qadd.NewError(qadd.KindInvalidInput, "embedding offset must be non-negative, got %d", offset)
	case offset+sub.numQubits > b.numQubits:
		b.err = qadd.NewError(qadd.KindMalformedSequence,
			"embedding %q (%d qubits) at offset %d exceeds %d qubits of %q",
			sub.name, sub.numQubits, offset, b.numQubits, b.name)
	case len(clbits) != sub.numClbits:
		b.err = qadd.NewError(qadd.KindMalformedSequence,
			"embedding %q needs %d classical bit mappings, got %d", sub.name, sub.numClbits, len(clbits))
	}
	if b.err != nil {
		return b.err
	}

	for _, c := range clbits {
		if c < 0 || c >= b.numClbits {
			b.err = qadd.NewError(qadd.KindMalformedSequence,
				"classical bit mapping %d outside 0..%d", c, b.numClbits-1)
			return b.err
		}
	}

	for _, g := range sub.gates {
		b.Add(g.shift(offset, clbits))
	}

	return b.err
}

// Err returns the first error recorded by the builder
func (b *SequenceBuilder) Err() error {
	return b.err
}

// Build returns the finished sequence, or the first error recorded while building it
func (b *SequenceBuilder) Build() (*GateSequence, error) {
	if b.err != nil {
		return nil, b.err
	}

	gates := make([]Gate, len(b.gates))
	copy(gates, b.gates)

	return &GateSequence{
		name:      b.name,
		numQubits: b.numQubits,
		numClbits: b.numClbits,
		gates:     gates,
	}, nil
}
