package httpapi

import (
	"context"

	"github.com/dmitrijs2005/banksim/internal/server/models"
)

// LoginEngine is the application surface the HTTP layer drives. The server
// holds no login logic of its own; it translates requests into these calls
// and maps the errors back to status codes.
type LoginEngine interface {
	Register(ctx context.Context, account *models.Account, password string) (int64, error)
	AttemptPasswordLogin(ctx context.Context, accountID int64, password string) (string, error)
	AttemptOtacLogin(ctx context.Context, token string, attempt string) (string, error)
	SessionState(ctx context.Context, token string) (models.AuthLevel, int64, error)
	Logout(ctx context.Context, token string) error
}
