package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/banksim/internal/server/models"
)

type Repository interface {
	// Assign writes a session row for the account: the live row is updated
	// in place if one exists, otherwise a new row is inserted. Callers that
	// need this to be race-free for one account must hold the account row
	// lock in the surrounding transaction.
	Assign(ctx context.Context, accountID int64, token string, level models.AuthLevel, expiry time.Time) error

	// FindByToken resolves a token to its live session. Expired or unknown
	// tokens yield common.ErrorNotFound. Of several live rows the most
	// recently written one wins.
	FindByToken(ctx context.Context, token string) (*models.Session, error)

	// InvalidateAll forces the expiry of every session row belonging to the
	// account into the past.
	InvalidateAll(ctx context.Context, accountID int64) error
}
