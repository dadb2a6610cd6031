package quantum

import (
	"math"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
)

// GateKind identifies the operation a Gate performs
type GateKind int

const (
	// BitFlip is an unconditional NOT (X)
	BitFlip GateKind = iota
	// Hadamard mixes the computational basis (H)
	Hadamard
	// ControlledPhase rotates the target's |1⟩ phase by Angle when the control is |1⟩ (CP)
	ControlledPhase
	// ConditionalFlip flips the target when both controls are |1⟩ (Toffoli, CCX)
	ConditionalFlip
	// Measure records a qubit into a classical bit
	Measure
)

func (k GateKind) String() string {
	switch k {
	case BitFlip:
		return "BitFlip(X)"
	case Hadamard:
		return "Hadamard(H)"
	case ControlledPhase:
		return "ControlledPhase(CP)"
	case ConditionalFlip:
		return "ConditionalFlip(CCX)"
	case Measure:
		return "Measure"
	default:
		return "Unknown"
	}
}

// Gate is a single operation inside a GateSequence.
// Controls is empty for BitFlip, Hadamard and Measure, holds one qubit for
// ControlledPhase and two for ConditionalFlip.
type Gate struct {
	Kind     GateKind
	Target   int
	Controls []int
	// Angle is in radians; only meaningful for ControlledPhase
	Angle float64
	// Clbit is the classical bit written by Measure
	Clbit int
}

// X returns a BitFlip gate on qubit
func X(qubit int) Gate {
	return Gate{Kind: BitFlip, Target: qubit}
}

// H returns a Hadamard gate on qubit
func H(qubit int) Gate {
	return Gate{Kind: Hadamard, Target: qubit}
}

// CP returns a ControlledPhase gate
func CP(control, target int, angle float64) Gate {
	return Gate{Kind: ControlledPhase, Target: target, Controls: []int{control}, Angle: angle}
}

// CCX returns a ConditionalFlip gate that flips target when controlA and controlB are both set
func CCX(controlA, controlB, target int) Gate {
	return Gate{Kind: ConditionalFlip, Target: target, Controls: []int{controlA, controlB}}
}

// MeasureGate returns a Measure gate writing qubit into clbit
func MeasureGate(qubit, clbit int) Gate {
	return Gate{Kind: Measure, Target: qubit, Clbit: clbit}
}

// PhaseAngle returns 2π / 2^k, the only angle form the adder circuits use
func PhaseAngle(k int) float64 {
	return math.Ldexp(2*math.Pi, -k)
}

// Qubits returns every qubit the gate touches, controls first
func (g Gate) Qubits() []int {
	qubits := make([]int, 0, len(g.Controls)+1)
	qubits = append(qubits, g.Controls...)
	return append(qubits, g.Target)
}

// Equal reports whether two gates are identical, angle included
func (g Gate) Equal(other Gate) bool {
	if g.Kind != other.Kind || g.Target != other.Target || g.Angle != other.Angle || g.Clbit != other.Clbit {
		return false
	}
	if len(g.Controls) != len(other.Controls) {
		return false
	}
	for i := range g.Controls {
		if g.Controls[i] != other.Controls[i] {
			return false
		}
	}
	return true
}

func (g Gate) clone() Gate {
	if g.Controls != nil {
		g.Controls = append([]int(nil), g.Controls...)
	}
	return g
}

// validate checks the gate against a register of numQubits qubits and numClbits classical bits
func (g Gate) validate(numQubits, numClbits int) error {
	wantControls := 0
	switch g.Kind {
	case BitFlip, Hadamard, Measure:
	case ControlledPhase:
		wantControls = 1
	case ConditionalFlip:
		wantControls = 2
	default:
		return qadd.NewError(qadd.KindMalformedSequence, "unknown gate kind %d", int(g.Kind))
	}

	if len(g.Controls) != wantControls {
		return qadd.NewError(qadd.KindMalformedSequence, "%s expects %d controls, got %d",
			g.Kind, wantControls, len(g.Controls))
	}

	seen := make(map[int]bool, wantControls+1)
	for _, q := range g.Qubits() {
		if q < 0 || q >= numQubits {
			return qadd.NewError(qadd.KindMalformedSequence, "%s references qubit %d outside 0..%d",
				g.Kind, q, numQubits-1)
		}
		if seen[q] {
			return qadd.NewError(qadd.KindMalformedSequence, "%s uses qubit %d twice", g.Kind, q)
		}
		seen[q] = true
	}

	if g.Kind == Measure && (g.Clbit < 0 || g.Clbit >= numClbits) {
		return qadd.NewError(qadd.KindMalformedSequence, "measure writes classical bit %d outside 0..%d",
			g.Clbit, numClbits-1)
	}

	if g.Kind == ControlledPhase && (math.IsNaN(g.Angle) || math.IsInf(g.Angle, 0)) {
		return qadd.NewError(qadd.KindInvalidInput, "controlled phase angle must be finite")
	}

	return nil
}

// shift moves every qubit reference by offset and remaps the classical bit through clbits
func (g Gate) shift(offset int, clbits []int) Gate {
	shifted := g.clone()
	shifted.Target += offset
	for i := range shifted.Controls {
		shifted.Controls[i] += offset
	}
	if g.Kind == Measure {
		shifted.Clbit = clbits[g.Clbit]
	}
	return shifted
}
