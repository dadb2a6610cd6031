package quantum

import (
	"math"
	"strings"
	"testing"
)

// TestFormatAngle tests pi-fraction rendering of phase angles
func TestFormatAngle(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected string
	}{
		{"Zero", 0, "0"},
		{"Full turn", 2 * math.Pi, "2*pi"},
		{"Half turn", PhaseAngle(1), "pi"},
		{"Quarter turn", PhaseAngle(2), "pi/2"},
		{"k=5", PhaseAngle(5), "pi/16"},
		{"k=40", PhaseAngle(40), "pi/549755813888"},
		{"Negative", -PhaseAngle(3), "-pi/4"},
		{"Arbitrary", 0.5, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAngle(tt.angle); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// TestToQASM tests serialisation of every gate kind
func TestToQASM(t *testing.T) {
	b := NewSequenceBuilder("all", 3, 2)
	b.X(0)
	b.H(1)
	b.CP(2, 0, PhaseAngle(2))
	b.CCX(0, 1, 2)
	b.Measure(0, 1)
	b.Measure(2, 0)
	seq, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[2];

x q[0];
h q[1];
cu1(pi/2) q[2],q[0];
ccx q[0],q[1],q[2];

measure q[0] -> c[1];
measure q[2] -> c[0];
`

	if got := ToQASM(seq); got != expected {
		t.Errorf("unexpected QASM:\n%s\nwant:\n%s", got, expected)
	}
}

// TestToQASMWithoutClassicalBits tests that no creg is declared for unmeasured sequences
func TestToQASMWithoutClassicalBits(t *testing.T) {
	b := NewSequenceBuilder("bare", 2, 0)
	b.H(0)
	seq, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	qasm := ToQASM(seq)
	if strings.Contains(qasm, "creg") {
		t.Errorf("expected no creg declaration, got:\n%s", qasm)
	}
	if strings.Contains(qasm, "measure") {
		t.Errorf("expected no measurements, got:\n%s", qasm)
	}
	if !strings.HasSuffix(qasm, "h q[0];\n") {
		t.Errorf("expected QASM to end with the gate, got:\n%s", qasm)
	}
}
