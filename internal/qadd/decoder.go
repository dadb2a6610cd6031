package qadd

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
)

// ReverseBits returns bits in reverse character order
func ReverseBits(bits string) string {
	out := []byte(bits)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// CompactBits removes the register separators Qiskit puts between classical registers
func CompactBits(bits string) string {
	return strings.ReplaceAll(bits, " ", "")
}

// DecodeBitString reverses a measured bit string and parses it as an unsigned binary integer.
// Measured strings list the highest classical bit first; the adder's classical bit 0 holds the
// most significant bit of the sum, so the reversed string reads MSB first.
// Register separators (spaces) are ignored.
func DecodeBitString(bits string) (uint64, error) {
	cleaned := CompactBits(bits)
	if err := checkBits("measured bit string", cleaned); err != nil {
		return 0, err
	}

	value, err := strconv.ParseUint(ReverseBits(cleaned), 2, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, qadd.NewError(qadd.KindWidthOverflow, "measured bit string %q exceeds 64 bits", bits)
		}
		return 0, qadd.NewError(qadd.KindInvalidInput, "measured bit string %q: %v", bits, err)
	}

	return value, nil
}

// DecodeCounts decodes every outcome in counts. The result is ordered by descending count,
// then by bit string, so the first entry is the most frequent outcome.
func DecodeCounts(counts quantum.Counts) ([]qadd.Outcome, error) {
	outcomes := make([]qadd.Outcome, 0, len(counts))

	for bits, count := range counts {
		value, err := DecodeBitString(bits)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, qadd.Outcome{
			Bits:  ReverseBits(strings.ReplaceAll(bits, " ", "")),
			Value: value,
			Count: count,
		})
	}

	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].Count != outcomes[j].Count {
			return outcomes[i].Count > outcomes[j].Count
		}
		return outcomes[i].Bits < outcomes[j].Bits
	})

	return outcomes, nil
}
