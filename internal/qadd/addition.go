package qadd

import (
	"fmt"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
)

// BuildAdditionNetwork returns the Fourier-basis phase network that adds register B into
// register A plus the carry qubit.
//
// Layout over lenA+lenB+1 qubits: qubit 0 is the carry, 1..lenA hold A (A's guard at lenA)
// and lenA+1..lenA+lenB hold B. The rotation exponents must stay exactly as emitted here;
// an off-by-one in k yields wrong sums without any error.
func BuildAdditionNetwork(lenA, lenB int) (*quantum.GateSequence, error) {
	if lenA < 1 || lenB < 1 {
		return nil, qadd.NewError(qadd.KindInvalidInput,
			"register widths must be positive, got lenA=%d lenB=%d", lenA, lenB)
	}

	total := lenA + lenB + 1
	b := quantum.NewSequenceBuilder(fmt.Sprintf("addition_%d_%d", lenA, lenB), total, 0)

	// B's last qubit into A's guard bit, half turn
	b.CP(total-1, lenA, quantum.PhaseAngle(1))

	for i := lenA - 1; i >= 1; i-- {
		k := 1
		for j := i + lenB; j < total; j++ {
			b.CP(j, i, quantum.PhaseAngle(k))
			k++
		}
	}

	k := 2
	for i := lenA + 1; i < total; i++ {
		b.CP(i, 0, quantum.PhaseAngle(k))
		k++
	}

	return b.Build()
}

// AdditionGateCount is the number of gates BuildAdditionNetwork(lenA, lenB) emits
func AdditionGateCount(lenA, lenB int) int {
	return lenA*(lenA+1)/2 + lenB
}
