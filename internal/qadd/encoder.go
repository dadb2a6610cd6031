package qadd

import (
	"math/bits"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
)

// Encode returns n as a most-significant-bit-first string of exactly width characters
func Encode(n int64, width int) (string, error) {
	if n < 0 {
		return "", qadd.NewError(qadd.KindInvalidInput, "cannot encode negative integer %d", n)
	}
	if width < 1 {
		return "", qadd.NewError(qadd.KindInvalidInput, "encoding width must be positive, got %d", width)
	}

	if need := bits.Len64(uint64(n)); need > width {
		return "", qadd.NewError(qadd.KindWidthOverflow, "%d needs %d bits, only %d available", n, need, width)
	}

	out := make([]byte, width)
	for i := 0; i < width; i++ {
		shift := width - 1 - i
		if shift < 64 && (uint64(n)>>uint(shift))&1 == 1 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}

	return string(out), nil
}

// PrepareOperands sizes both operands and encodes them at the shared operand width
func PrepareOperands(a, b int64) (width int, binA, binB string, err error) {
	width, err = BitWidth(a, b)
	if err != nil {
		return 0, "", "", err
	}

	if binA, err = Encode(a, OperandWidth(width)); err != nil {
		return 0, "", "", err
	}
	if binB, err = Encode(b, OperandWidth(width)); err != nil {
		return 0, "", "", err
	}

	return width, binA, binB, nil
}
