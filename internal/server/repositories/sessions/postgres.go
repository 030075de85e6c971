// Package sessions provides a PostgreSQL-backed repository for session token
// rows, the durable half of the login state machine.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Assign(ctx context.Context, accountID int64, token string, level models.AuthLevel, expiry time.Time) error {
	updateQuery := `
		UPDATE sessions
		SET token = $2, auth_level = $3, expires_at = $4
		WHERE account_id = $1 AND expires_at > now()
	`
	res, err := r.db.ExecContext(ctx, updateQuery, accountID, token, int(level), expiry)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected > 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO sessions (account_id, token, auth_level, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, insertQuery, accountID, token, int(level), expiry); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, account_id, token, auth_level, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > now()
		ORDER BY id DESC
		LIMIT 1
	`
	s := &models.Session{}
	var level int
	err := r.db.QueryRowContext(ctx, query, token).Scan(&s.ID, &s.AccountID, &s.Token, &level, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.Level = models.AuthLevel(level)
	return s, nil
}

func (r *PostgresRepository) InvalidateAll(ctx context.Context, accountID int64) error {
	query := `
		UPDATE sessions
		SET expires_at = now() - interval '1 second'
		WHERE account_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
