package otac

import "time"

// Verifier checks submitted codes against the current window and a bounded
// number of past windows. Future windows are never accepted, so a code is
// never valid before it was meant to exist.
//
// The verifier is stateless: a code remains valid for its whole window range.
// Replay within the window is not prevented at this layer.
type Verifier struct {
	gen         *Generator
	windowCount int
	now         func() time.Time
}

// NewVerifier returns a Verifier accepting codes up to windowCount-1 steps
// old. A windowCount of 1 accepts only the current window.
func NewVerifier(gen *Generator, windowCount int) *Verifier {
	return &Verifier{gen: gen, windowCount: windowCount, now: time.Now}
}

// Generate returns the code for the current window, i.e. the code that should
// be delivered to the account holder.
func (v *Verifier) Generate(secret []byte) string {
	return v.gen.Generate(secret, v.gen.Window(v.now().UnixMilli(), 0))
}

// Verify reports whether attempt matches the code for the current window or
// any of the accepted trailing windows. It short-circuits on the first match.
func (v *Verifier) Verify(attempt string, secret []byte) bool {
	nowMillis := v.now().UnixMilli()
	for i := 0; i < v.windowCount; i++ {
		if attempt == v.gen.Generate(secret, v.gen.Window(nowMillis, -i)) {
			return true
		}
	}
	return false
}
