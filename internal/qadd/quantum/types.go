package quantum

import (
	"math/rand"
	"sort"
)

// Counts maps measured bit strings to how many shots produced them.
// Character k of a key holds classical bit n-1-k: the highest classical bit comes first.
type Counts map[string]int

// Total returns the number of shots recorded
func (c Counts) Total() int {
	total := 0
	for _, count := range c {
		total += count
	}
	return total
}

// Probabilities converts the counts into observed frequencies
func (c Counts) Probabilities() map[string]float64 {
	totalShots := c.Total()

	probabilities := make(map[string]float64, len(c))
	if totalShots == 0 {
		return probabilities
	}
	for outcome, count := range c {
		probabilities[outcome] = float64(count) / float64(totalShots)
	}

	return probabilities
}

// MostFrequent returns the outcome seen most often; ties go to the smallest bit string
func (c Counts) MostFrequent() (string, int) {
	maxCount := 0
	maxOutcome := ""

	for _, outcome := range c.Outcomes() {
		if count := c[outcome]; count > maxCount {
			maxCount = count
			maxOutcome = outcome
		}
	}

	return maxOutcome, maxCount
}

// Outcomes returns the recorded bit strings in lexical order
func (c Counts) Outcomes() []string {
	outcomes := make([]string, 0, len(c))
	for outcome := range c {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)
	return outcomes
}

// ReadoutChannel models classical readout errors on sampled bit strings
type ReadoutChannel struct {
	// NoiseLevel is the probability that any single read bit flips (0.0 to 1.0)
	NoiseLevel float64
}

// NewReadoutChannel creates a channel with the given per-bit flip probability
func NewReadoutChannel(noiseLevel float64) *ReadoutChannel {
	return &ReadoutChannel{NoiseLevel: noiseLevel}
}

// Transmit returns bits with each character independently flipped with probability NoiseLevel
func (rc *ReadoutChannel) Transmit(bits string, rng *rand.Rand) string {
	if rc.NoiseLevel <= 0 {
		return bits
	}

	out := []byte(bits)
	for i := range out {
		if rng.Float64() < rc.NoiseLevel {
			if out[i] == '0' {
				out[i] = '1'
			} else {
				out[i] = '0'
			}
		}
	}

	return string(out)
}
