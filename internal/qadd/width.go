package qadd

import (
	"math/bits"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
)

// BitWidth returns the smallest width w >= 2 with 2^(w-1) > max(a, b).
// The top bit of that width is the guard bit reserved for the carry.
func BitWidth(a, b int64) (int, error) {
	if a < 0 || b < 0 {
		return 0, qadd.NewError(qadd.KindInvalidInput, "operands must be non-negative, got a=%d b=%d", a, b)
	}

	larger := a
	if b > larger {
		larger = b
	}

	n := bits.Len64(uint64(larger))
	if n < 1 {
		n = 1
	}

	return n + 1, nil
}

// OperandWidth is the register width each operand is encoded at for a given BitWidth.
// The extra leading zero keeps both sign-correction controls at 0 for non-negative operands.
func OperandWidth(width int) int {
	return width + 1
}
