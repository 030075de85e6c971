package credentials

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/dmitrijs2005/banksim/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	createQ = `(?s)^\s*INSERT\s+INTO\s+credentials\s*\(account_id,\s*password_hash,\s*password_salt,\s*hash_iterations,\s*otac_secret\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	getQ    = `(?s)^\s*SELECT\s+account_id,\s*password_hash,\s*password_salt,\s*hash_iterations,\s*otac_secret\s+FROM\s+credentials\s+WHERE\s+account_id\s*=\s*\$1\s*$`
	updateQ = `(?s)^\s*UPDATE\s+credentials\s+SET\s+password_hash\s*=\s*\$2,\s*password_salt\s*=\s*\$3,\s*hash_iterations\s*=\s*\$4\s+WHERE\s+account_id\s*=\s*\$1\s*$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(createQ).
		WithArgs(int64(7), []byte("hash"), []byte("salt"), 8, []byte("otac")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	cred := &models.Credential{AccountID: 7, PasswordHash: []byte("hash"), PasswordSalt: []byte("salt"), HashIterations: 8, OtacSecret: []byte("otac")}
	if err := repo.Create(context.Background(), cred); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(createQ).
		WithArgs(int64(7), []byte("hash"), []byte("salt"), 8, []byte("otac")).
		WillReturnError(errors.New("db down"))

	cred := &models.Credential{AccountID: 7, PasswordHash: []byte("hash"), PasswordSalt: []byte("salt"), HashIterations: 8, OtacSecret: []byte("otac")}
	err := repo.Create(context.Background(), cred)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"account_id", "password_hash", "password_salt", "hash_iterations", "otac_secret"}).
		AddRow(int64(7), []byte("hash"), []byte("salt"), 8, []byte("otac"))
	mock.ExpectQuery(getQ).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.AccountID != 7 || got.HashIterations != 8 {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).
		WithArgs(int64(7), []byte("newhash"), []byte("salt"), 16).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), 7, []byte("newhash"), []byte("salt"), 16); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
}

func TestUpdatePassword_MissingRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).
		WithArgs(int64(99), []byte("newhash"), []byte("salt"), 16).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 99, []byte("newhash"), []byte("salt"), 16)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
