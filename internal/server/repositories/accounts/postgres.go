// Package accounts provides a PostgreSQL-backed repository for account
// profile rows.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/dmitrijs2005/banksim/internal/dbx"
	"github.com/dmitrijs2005/banksim/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (int64, error) {
	query := `
		INSERT INTO accounts (first_name, last_name, phone_number, address_1, address_2, postcode, county)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		account.FirstName, account.LastName, account.PhoneNumber,
		account.Address1, account.Address2, account.Postcode, account.County).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetContact(ctx context.Context, accountID int64) (string, error) {
	query := `
		SELECT phone_number FROM accounts
		WHERE id = $1
	`
	var phone string
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return phone, nil
}

func (r *PostgresRepository) Lock(ctx context.Context, accountID int64) error {
	query := `
		SELECT id FROM accounts
		WHERE id = $1
		FOR UPDATE
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
