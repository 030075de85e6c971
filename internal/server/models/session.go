package models

import "time"

// AuthLevel is the authentication progress a session token proves.
type AuthLevel int

const (
	// LevelUnauthenticated is never stored; it is the derived state of any
	// token that does not resolve to a live session.
	LevelUnauthenticated AuthLevel = iota - 1

	// LevelPasswordVerified means the password check succeeded and the
	// account holder still owes an OTAC.
	LevelPasswordVerified

	// LevelFullyAuthenticated means both factors were verified.
	LevelFullyAuthenticated
)

func (l AuthLevel) String() string {
	switch l {
	case LevelPasswordVerified:
		return "password_verified"
	case LevelFullyAuthenticated:
		return "fully_authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is a provable claim of authentication progress. Stale rows are
// superseded rather than deleted; expiry plus a most-recent-wins lookup
// resolve which one is current.
type Session struct {
	ID        int64
	AccountID int64
	Token     string
	Level     AuthLevel
	ExpiresAt time.Time
}
