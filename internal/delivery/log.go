package delivery

import (
	"context"

	"github.com/dmitrijs2005/banksim/internal/logging"
	"github.com/google/uuid"
)

// LogSender is the development implementation of Sender: it writes the
// message to the structured log instead of an SMS gateway. Each message gets
// a uuid so individual deliveries can be correlated in the log stream.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger.With("module", "delivery")}
}

func (s *LogSender) Send(ctx context.Context, address string, message string) error {
	s.logger.Info(ctx, "outbound message",
		"message_id", uuid.NewString(),
		"address", address,
		"body", message,
	)
	return nil
}
