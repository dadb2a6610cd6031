package crypto

import (
	"testing"

	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
)

func sequence(t *testing.T, flip int) *quantum.GateSequence {
	t.Helper()
	b := quantum.NewSequenceBuilder("fp", 2, 2)
	b.X(flip)
	b.H(1)
	b.Measure(0, 0)
	b.Measure(1, 1)
	seq, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return seq
}

// TestFingerprintLengths tests digest sizes for every method
func TestFingerprintLengths(t *testing.T) {
	tests := []struct {
		name      string
		method    FingerprintMethod
		hexLength int
	}{
		{"SHA256 fingerprint", SHA256Method, 64},
		{"SHA512 fingerprint", SHA512Method, 128},
		{"SHA3-256 fingerprint", SHA3_256Method, 64},
		{"SHA3-512 fingerprint", SHA3_512Method, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFingerprinter(tt.method)
			if err != nil {
				t.Fatalf("NewFingerprinter failed: %v", err)
			}

			fp, err := f.Fingerprint(sequence(t, 0))
			if err != nil {
				t.Fatalf("Fingerprint failed: %v", err)
			}

			if len(fp) != tt.hexLength {
				t.Errorf("expected %d hex characters, got %d", tt.hexLength, len(fp))
			}
		})
	}
}

// TestFingerprintStability tests that equal circuits share a fingerprint and different ones don't
func TestFingerprintStability(t *testing.T) {
	f, err := NewFingerprinter(SHA3_256Method)
	if err != nil {
		t.Fatalf("NewFingerprinter failed: %v", err)
	}

	first, _ := f.Fingerprint(sequence(t, 0))
	second, _ := f.Fingerprint(sequence(t, 0))
	other, _ := f.Fingerprint(sequence(t, 1))

	if first != second {
		t.Error("identical circuits should share a fingerprint")
	}
	if first == other {
		t.Error("different circuits should not share a fingerprint")
	}
}

// TestKnownDigest tests SHA-256 against a known vector
func TestKnownDigest(t *testing.T) {
	f, _ := NewFingerprinter(SHA256Method)
	got, err := f.Sum([]byte("abc"))
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}

	expected := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

// TestUnknownMethod tests that an unsupported method is rejected
func TestUnknownMethod(t *testing.T) {
	if _, err := NewFingerprinter("MD5"); err == nil {
		t.Error("expected error for unknown method")
	}

	f, _ := NewFingerprinter(SHA256Method)
	if _, err := f.Fingerprint(nil); err == nil {
		t.Error("expected error for nil sequence")
	}
}
