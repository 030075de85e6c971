// Package credentials provides a PostgreSQL-backed repository for stored
// authentication secret material.
package credentials

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

func (r *PostgresRepository) Create(ctx context.Context, cred *models.Credential) error {
	query := `
		INSERT INTO credentials (account_id, password_hash, password_salt, hash_iterations, otac_secret)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		cred.AccountID, cred.PasswordHash, cred.PasswordSalt,
		cred.HashIterations, cred.OtacSecret); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, accountID int64) (*models.Credential, error) {
	query := `
		SELECT account_id, password_hash, password_salt, hash_iterations, otac_secret
		FROM credentials
		WHERE account_id = $1
	`
	cred := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&cred.AccountID, &cred.PasswordHash, &cred.PasswordSalt,
		&cred.HashIterations, &cred.OtacSecret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, accountID int64, hash, salt []byte, iterations int) error {
	query := `
		UPDATE credentials
		SET password_hash = $2, password_salt = $3, hash_iterations = $4
		WHERE account_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, accountID, hash, salt, iterations)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
