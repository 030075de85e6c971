// Package otac implements one-time access codes: short human-readable codes
// derived from a per-account secret and a coarse time window, plus a verifier
// that tolerates a bounded amount of delivery delay.
package otac

import (
	"crypto/sha256"
	"fmt"
	"strconv"
)

// alphabet maps 5-bit chunks to human-readable characters. Visually ambiguous
// letters (I, N, O, V) are excluded. Codes are compared as literal strings,
// so the exact set, case and ordering are part of the contract.
var alphabet = [32]byte{
	'0', '1', '2', '3', '4', '5', '6', '7',
	'8', '9', 'A', 'B', 'C', 'D', 'E', 'F',
	'G', 'H', 'J', 'K', 'L', 'M', 'P', 'Q',
	'R', 'S', 'T', 'U', 'W', 'X', 'Y', 'Z',
}

const chunkBits = 5

// DefaultLength is the number of code symbols generated unless configured
// otherwise. Eight symbols consume 40 bits of the digest; the remainder is
// intentionally discarded.
const DefaultLength = 8

// Generator derives codes from a secret and a time window. It holds no state
// beyond its configuration; Generate is a pure function of its arguments.
type Generator struct {
	length     int
	stepMillis int64
}

// NewGenerator returns a Generator producing codes of the given length for
// time windows of the given step size in milliseconds. The length must fit
// into a SHA-256 digest (length*5 bits <= 256).
func NewGenerator(length int, stepMillis int64) (*Generator, error) {
	if length < 1 || length*chunkBits > sha256.Size*8 {
		return nil, fmt.Errorf("otac: code length %d does not fit the digest", length)
	}
	if stepMillis < 1 {
		return nil, fmt.Errorf("otac: invalid step size %d", stepMillis)
	}
	return &Generator{length: length, stepMillis: stepMillis}, nil
}

// Window converts a wall-clock timestamp in milliseconds to the window value
// offset windows away. Offset 0 is the current window, -1 the previous one.
func (g *Generator) Window(nowMillis int64, offset int) int64 {
	return nowMillis/g.stepMillis + int64(offset)
}

// Generate derives the code for the given secret and window. The digest input
// is the decimal text of the window followed by the secret bytes; that order
// is fixed and part of the contract.
func (g *Generator) Generate(secret []byte, window int64) string {
	message := append([]byte(strconv.FormatInt(window, 10)), secret...)
	digest := sha256.Sum256(message)

	out := make([]byte, g.length)
	for i := 0; i < g.length; i++ {
		out[i] = alphabet[chunk(digest[:], i*chunkBits)]
	}
	return string(out)
}

// chunk extracts the 5-bit group starting at the given bit position,
// most significant bit first.
func chunk(digest []byte, startBit int) byte {
	var v byte
	for i := 0; i < chunkBits; i++ {
		bit := startBit + i
		single := (digest[bit/8] >> (7 - bit%8)) & 1
		v |= single << (chunkBits - 1 - i)
	}
	return v
}
