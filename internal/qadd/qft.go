package qadd

import (
	"fmt"

	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
)

// BuildQFT returns the quantum Fourier transform over qubits 0..n-1, without the final swaps.
// Qubit i gets a Hadamard followed by CP(i -> j, 2π/2^(j-i+1)) for every j > i.
func BuildQFT(n int) (*quantum.GateSequence, error) {
	b := quantum.NewSequenceBuilder(fmt.Sprintf("qft_%d", n), n, 0)

	for i := 0; i < n; i++ {
		b.H(i)
		for j := i + 1; j < n; j++ {
			b.CP(i, j, quantum.PhaseAngle(j-i+1))
		}
	}

	return b.Build()
}

// QFTGateCount is the number of gates BuildQFT(n) emits
func QFTGateCount(n int) int {
	return n * (n + 1) / 2
}
