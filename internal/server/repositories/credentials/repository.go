package credentials

import (
	"context"

	"github.com/dmitrijs2005/banksim/internal/server/models"
)

type Repository interface {
	// Create inserts the credential row for a freshly registered account.
	Create(ctx context.Context, cred *models.Credential) error

	// Get returns the credential record for an account.
	Get(ctx context.Context, accountID int64) (*models.Credential, error)

	// UpdatePassword replaces the stored hash material. Used for password
	// changes and for transparent hash upgrades.
	UpdatePassword(ctx context.Context, accountID int64, hash, salt []byte, iterations int) error
}
