package qadd

import (
	"fmt"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
)

func checkBits(name, bits string) error {
	if bits == "" {
		return qadd.NewError(qadd.KindInvalidInput, "%s is empty", name)
	}
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return qadd.NewError(qadd.KindInvalidInput, "%s has invalid character %q at %d", name, bits[i], i)
		}
	}
	return nil
}

// BuildEncoding returns a block over len(binA)+len(binB) qubits that flips the qubits
// holding a 1. binA occupies local qubits 0..len(binA)-1 and binB follows it.
func BuildEncoding(binA, binB string) (*quantum.GateSequence, error) {
	if err := checkBits("operand A", binA); err != nil {
		return nil, err
	}
	if err := checkBits("operand B", binB); err != nil {
		return nil, err
	}

	b := quantum.NewSequenceBuilder("encode", len(binA)+len(binB), 0)

	for i := 0; i < len(binA); i++ {
		if binA[i] == '1' {
			b.X(i)
		}
	}
	for i := 0; i < len(binB); i++ {
		if binB[i] == '1' {
			b.X(len(binA) + i)
		}
	}

	return b.Build()
}

// AssembleAdder composes the full Draper adder for two encoded operands:
// encode, sign-correct, QFT over the carry and A, addition network, inverse QFT, measure.
// Qubits 0..len(binA) are measured into classical bits 0..len(binA).
func AssembleAdder(binA, binB string) (*quantum.GateSequence, error) {
	encoding, err := BuildEncoding(binA, binB)
	if err != nil {
		return nil, err
	}

	lenA, lenB := len(binA), len(binB)
	total := lenA + lenB + 1

	sign, err := BuildSignCorrection(lenA, lenB)
	if err != nil {
		return nil, err
	}

	qft, err := BuildQFT(lenA + 1)
	if err != nil {
		return nil, err
	}

	iqft, err := qft.Inverse()
	if err != nil {
		return nil, err
	}

	network, err := BuildAdditionNetwork(lenA, lenB)
	if err != nil {
		return nil, err
	}

	b := quantum.NewSequenceBuilder(fmt.Sprintf("draper_adder_%d_%d", lenA, lenB), total, lenA+1)

	// qubit 0 stays free for the carry
	b.Embed(encoding, 1, nil)
	b.Embed(sign, 0, nil)
	b.Embed(qft, 0, nil)
	b.Embed(network, 0, nil)
	b.Embed(iqft, 0, nil)

	for q := 0; q <= lenA; q++ {
		b.Measure(q, q)
	}

	return b.Build()
}

// AdderGateCount is the number of gates AssembleAdder emits for the given operands
func AdderGateCount(binA, binB string) int {
	flips := 0
	for _, s := range []string{binA, binB} {
		for i := 0; i < len(s); i++ {
			if s[i] == '1' {
				flips++
			}
		}
	}

	lenA, lenB := len(binA), len(binB)
	return flips + 6 + 2*QFTGateCount(lenA+1) + AdditionGateCount(lenA, lenB) + lenA + 1
}
