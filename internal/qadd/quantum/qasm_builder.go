package quantum

import (
	"fmt"
	"math"
	"strings"
)

// QASMBuilder builds OpenQASM 2.0 programs from gate sequences
type QASMBuilder struct {
	version      string
	includeStmt  string
	registers    []string
	gates        []string
	measurements []string
}

// NewQASMBuilder creates a new OpenQASM circuit builder
func NewQASMBuilder(numQubits int, numClassical int) *QASMBuilder {
	builder := &QASMBuilder{
		version:      "OPENQASM 2.0;",
		includeStmt:  "include \"qelib1.inc\";",
		registers:    make([]string, 0),
		gates:        make([]string, 0),
		measurements: make([]string, 0),
	}

	builder.registers = append(builder.registers, fmt.Sprintf("qreg q[%d];", numQubits))
	// creg c[0] is not valid QASM
	if numClassical > 0 {
		builder.registers = append(builder.registers, fmt.Sprintf("creg c[%d];", numClassical))
	}

	return builder
}

// AddGate adds a quantum gate operation
func (b *QASMBuilder) AddGate(gate string) {
	b.gates = append(b.gates, gate)
}

// AddMeasurement adds a measurement operation
func (b *QASMBuilder) AddMeasurement(qubit int, classical int) {
	b.measurements = append(b.measurements,
		fmt.Sprintf("measure q[%d] -> c[%d];", qubit, classical))
}

// AddSequenceGate translates one Gate into its QASM statement
func (b *QASMBuilder) AddSequenceGate(g Gate) {
	switch g.Kind {
	case BitFlip:
		b.AddGate(fmt.Sprintf("x q[%d];", g.Target))
	case Hadamard:
		b.AddGate(fmt.Sprintf("h q[%d];", g.Target))
	case ControlledPhase:
		b.AddGate(fmt.Sprintf("cu1(%s) q[%d],q[%d];", FormatAngle(g.Angle), g.Controls[0], g.Target))
	case ConditionalFlip:
		b.AddGate(fmt.Sprintf("ccx q[%d],q[%d],q[%d];", g.Controls[0], g.Controls[1], g.Target))
	case Measure:
		b.AddMeasurement(g.Target, g.Clbit)
	}
}

// Build generates the complete QASM circuit string
func (b *QASMBuilder) Build() string {
	var circuit strings.Builder

	circuit.WriteString(b.version + "\n")
	circuit.WriteString(b.includeStmt + "\n")
	circuit.WriteString("\n")

	for _, reg := range b.registers {
		circuit.WriteString(reg + "\n")
	}
	circuit.WriteString("\n")

	for _, gate := range b.gates {
		circuit.WriteString(gate + "\n")
	}

	if len(b.measurements) > 0 {
		circuit.WriteString("\n")
		for _, meas := range b.measurements {
			circuit.WriteString(meas + "\n")
		}
	}

	return circuit.String()
}

// ToQASM serialises a sequence to OpenQASM 2.0.
// Measurements are emitted after all gates, which matches the terminal-measurement
// layout every adder circuit uses.
func ToQASM(seq *GateSequence) string {
	builder := NewQASMBuilder(seq.NumQubits(), seq.NumClbits())
	for _, g := range seq.gates {
		builder.AddSequenceGate(g)
	}
	return builder.Build()
}

// FormatAngle prints ±2π/2^k angles as pi fractions and anything else with full precision
func FormatAngle(angle float64) string {
	sign := ""
	if angle < 0 {
		sign = "-"
	}
	abs := math.Abs(angle)

	if abs == 0 {
		return "0"
	}
	if math.Abs(abs-2*math.Pi) <= 1e-12*2*math.Pi {
		return sign + "2*pi"
	}

	// 2π/2^k == π/2^(k-1)
	for exp := 0; exp < 63; exp++ {
		denom := math.Exp2(float64(exp))
		if want := math.Pi / denom; math.Abs(abs-want) <= 1e-12*want {
			if exp == 0 {
				return sign + "pi"
			}
			return fmt.Sprintf("%spi/%d", sign, uint64(denom))
		}
	}

	return fmt.Sprintf("%.17g", angle)
}
