package qadd

import (
	"fmt"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
)

// BuildSignCorrection returns the two zero-controlled Toffolis that reconcile the operand
// guard bits with the carry qubit before the transform.
//
// Qubit 1 is A's leading bit and lenA+1 is B's leading bit. Each Toffoli is turned into a
// zero-control on one of them by an X before and after:
//
//	X(1) CCX(lenA+1, 1 -> 0) X(1)
//	X(lenA+1) CCX(1, lenA+1 -> 0) X(lenA+1)
func BuildSignCorrection(lenA, lenB int) (*quantum.GateSequence, error) {
	if lenA < 1 || lenB < 1 {
		return nil, qadd.NewError(qadd.KindInvalidInput,
			"register widths must be positive, got lenA=%d lenB=%d", lenA, lenB)
	}

	guardA := 1
	guardB := lenA + 1

	b := quantum.NewSequenceBuilder(fmt.Sprintf("sign_correction_%d_%d", lenA, lenB), lenA+lenB+1, 0)

	b.X(guardA)
	b.CCX(guardB, guardA, 0)
	b.X(guardA)

	b.X(guardB)
	b.CCX(guardA, guardB, 0)
	b.X(guardB)

	return b.Build()
}
