package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
	"golang.org/x/crypto/sha3"
)

// FingerprintMethod defines the hash function used to fingerprint circuits
type FingerprintMethod string

const (
	// SHA256Method uses SHA-256
	SHA256Method FingerprintMethod = "SHA256"
	// SHA512Method uses SHA-512
	SHA512Method FingerprintMethod = "SHA512"
	// SHA3_256Method uses SHA3-256
	SHA3_256Method FingerprintMethod = "SHA3-256"
	// SHA3_512Method uses SHA3-512
	SHA3_512Method FingerprintMethod = "SHA3-512"
)

// Fingerprinter produces stable digests of assembled circuits.
// Two sequences with the same OpenQASM text share a fingerprint.
type Fingerprinter struct {
	method FingerprintMethod
}

// NewFingerprinter creates a new fingerprinter with specified method
func NewFingerprinter(method FingerprintMethod) (*Fingerprinter, error) {
	f := &Fingerprinter{method: method}
	if _, err := f.getHasher(); err != nil {
		return nil, err
	}
	return f, nil
}

// Method returns the configured hash method
func (f *Fingerprinter) Method() FingerprintMethod {
	return f.method
}

// Sum returns the hex digest of data
func (f *Fingerprinter) Sum(data []byte) (string, error) {
	h, err := f.getHasher()
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Fingerprint returns the hex digest of the sequence's OpenQASM serialisation
func (f *Fingerprinter) Fingerprint(seq *quantum.GateSequence) (string, error) {
	if seq == nil {
		return "", fmt.Errorf("cannot fingerprint a nil sequence")
	}
	return f.Sum([]byte(quantum.ToQASM(seq)))
}

// getHasher returns the appropriate hash function based on the method
func (f *Fingerprinter) getHasher() (hash.Hash, error) {
	switch f.method {
	case SHA256Method:
		return sha256.New(), nil
	case SHA512Method:
		return sha512.New(), nil
	case SHA3_256Method:
		return sha3.New256(), nil
	case SHA3_512Method:
		return sha3.New512(), nil
	default:
		return nil, fmt.Errorf("unknown fingerprint method: %s", f.method)
	}
}
