package qadd

import (
	"context"
	"fmt"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
)

// AddResult holds one adder run and its decoded outcomes
type AddResult struct {
	A        int64
	B        int64
	Width    int
	Circuit  *quantum.GateSequence
	Counts   quantum.Counts
	Outcomes []qadd.Outcome
	Sum      uint64
}

// BuildAdder sizes and encodes a and b and assembles the adder circuit for them
func BuildAdder(a, b int64) (*quantum.GateSequence, error) {
	_, binA, binB, err := PrepareOperands(a, b)
	if err != nil {
		return nil, err
	}
	return AssembleAdder(binA, binB)
}

// Add builds the adder for a and b, runs it on backend and decodes the counts.
// Sum is the value of the most frequent outcome. Backend errors are returned unchanged.
func Add(ctx context.Context, backend quantum.Backend, a, b int64, shots int) (*AddResult, error) {
	if backend == nil {
		return nil, qadd.NewError(qadd.KindInvalidInput, "no execution backend")
	}

	width, binA, binB, err := PrepareOperands(a, b)
	if err != nil {
		return nil, err
	}

	circuit, err := AssembleAdder(binA, binB)
	if err != nil {
		return nil, err
	}

	counts, err := backend.Run(ctx, circuit, shots)
	if err != nil {
		return nil, err
	}

	outcomes, err := DecodeCounts(counts)
	if err != nil {
		return nil, err
	}
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("backend %s returned no outcomes", backend.Name())
	}

	return &AddResult{
		A:        a,
		B:        b,
		Width:    width,
		Circuit:  circuit,
		Counts:   counts,
		Outcomes: outcomes,
		Sum:      outcomes[0].Value,
	}, nil
}

// Expected returns the arithmetic sum of the operands
func (r *AddResult) Expected() uint64 {
	return uint64(r.A) + uint64(r.B)
}

// Verify reports a DecodeMismatch when the decoded sum differs from a + b
func (r *AddResult) Verify() error {
	if r.Sum != r.Expected() {
		return qadd.NewError(qadd.KindDecodeMismatch,
			"%d + %d decoded as %d, expected %d", r.A, r.B, r.Sum, r.Expected())
	}
	return nil
}

// Summary renders the result as "Results: a + b = [bits...] = [values...]"
func (r *AddResult) Summary() string {
	bits := make([]string, len(r.Outcomes))
	values := make([]uint64, len(r.Outcomes))
	for i, o := range r.Outcomes {
		bits[i] = o.Bits
		values[i] = o.Value
	}
	return fmt.Sprintf("Results: %d + %d = %v = %v", r.A, r.B, bits, values)
}
