package accounts

import (
	"context"

	"github.com/dmitrijs2005/banksim/internal/server/models"
)

type Repository interface {
	// Create inserts the account profile and returns the generated ID.
	Create(ctx context.Context, account *models.Account) (int64, error)

	// GetContact returns the phone number OTACs are delivered to.
	GetContact(ctx context.Context, accountID int64) (string, error)

	// Lock takes a row lock on the account, serializing concurrent session
	// writes for it. Only meaningful inside a transaction.
	Lock(ctx context.Context, accountID int64) error
}
