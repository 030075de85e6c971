// Package passhash implements salted, iterated one-way password hashing and
// verification. The digest is applied repeatedly, feeding each output back as
// the next input, so the iteration count tunes the CPU cost of an attempt.
package passhash

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/banksim/internal/common"
)

// DefaultSaltLength is the salt size used for new credentials.
const DefaultSaltLength = 20

// Hash derives the stored hash for a plaintext password: the plaintext bytes
// with the salt appended, digested iterations times. An iteration count below
// one is a configuration error, never reachable from untrusted input.
func Hash(plaintext string, salt []byte, iterations int) ([]byte, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("passhash: iterations must be positive, got %d", iterations)
	}

	message := append([]byte(plaintext), salt...)
	for i := 0; i < iterations; i++ {
		digest := sha256.Sum256(message)
		message = digest[:]
	}
	return message, nil
}

// Verify recomputes the hash for an attempt and compares it against the
// stored hash in constant time.
//
// A length mismatch between the recomputed and the stored hash means the
// stored record was produced by a different digest and is corrupted; that is
// reported as a data-integrity error, not as a failed attempt.
func Verify(attempt string, salt, knownHash []byte, iterations int) (bool, error) {
	attemptHash, err := Hash(attempt, salt, iterations)
	if err != nil {
		return false, err
	}

	if len(attemptHash) != len(knownHash) {
		return false, fmt.Errorf("%w: stored hash has length %d, expected %d",
			common.ErrDataIntegrity, len(knownHash), len(attemptHash))
	}

	return subtle.ConstantTimeCompare(attemptHash, knownHash) == 1, nil
}

// NewSalt returns a fresh random salt of the given size.
func NewSalt(size int) []byte {
	return common.GenerateRandByteArray(size)
}
