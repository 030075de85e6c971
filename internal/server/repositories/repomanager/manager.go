package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/banksim/internal/dbx"
	"github.com/dmitrijs2005/banksim/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/banksim/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/banksim/internal/server/repositories/sessions"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
