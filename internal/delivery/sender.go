// Package delivery defines the out-of-band message carrier boundary. The
// login engine treats delivery as fire-and-forget: a failed send is logged by
// the sender, never surfaced as a login failure.
package delivery

import "context"

// Sender transmits a message to a contact address (phone number, email, ...).
type Sender interface {
	Send(ctx context.Context, address string, message string) error
}
