package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

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
	updateQ = `(?s)^\s*UPDATE\s+sessions\s+SET\s+token\s*=\s*\$2,\s*auth_level\s*=\s*\$3,\s*expires_at\s*=\s*\$4\s+WHERE\s+account_id\s*=\s*\$1\s+AND\s+expires_at\s*>\s*now\(\)\s*$`
	insertQ = `(?s)^\s*INSERT\s+INTO\s+sessions\s*\(account_id,\s*token,\s*auth_level,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`
	findQ   = `(?s)^\s*SELECT\s+id,\s*account_id,\s*token,\s*auth_level,\s*expires_at\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s+AND\s+expires_at\s*>\s*now\(\)\s+ORDER\s+BY\s+id\s+DESC\s+LIMIT\s+1\s*$`
	invalQ  = `(?s)^\s*UPDATE\s+sessions\s+SET\s+expires_at\s*=\s*now\(\)\s*-\s*interval\s*'1 second'\s+WHERE\s+account_id\s*=\s*\$1\s*$`
)

func TestAssign_UpdatesLiveRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expiry := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(updateQ).
		WithArgs(int64(7), "tok", int(models.LevelPasswordVerified), expiry).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Assign(context.Background(), 7, "tok", models.LevelPasswordVerified, expiry); err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssign_InsertsWhenNoLiveRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expiry := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(updateQ).
		WithArgs(int64(7), "tok", int(models.LevelFullyAuthenticated), expiry).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insertQ).
		WithArgs(int64(7), "tok", int(models.LevelFullyAuthenticated), expiry).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Assign(context.Background(), 7, "tok", models.LevelFullyAuthenticated, expiry); err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssign_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expiry := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(updateQ).
		WithArgs(int64(7), "tok", int(models.LevelPasswordVerified), expiry).
		WillReturnError(errors.New("db down"))

	err := repo.Assign(context.Background(), 7, "tok", models.LevelPasswordVerified, expiry)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByToken_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expiry := time.Now().Add(10 * time.Minute)
	rows := sqlmock.NewRows([]string{"id", "account_id", "token", "auth_level", "expires_at"}).
		AddRow(int64(3), int64(7), "tok", int(models.LevelFullyAuthenticated), expiry)
	mock.ExpectQuery(findQ).
		WithArgs("tok").
		WillReturnRows(rows)

	got, err := repo.FindByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FindByToken error: %v", err)
	}
	if got.AccountID != 7 || got.Level != models.LevelFullyAuthenticated {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQ).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByToken(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestInvalidateAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(invalQ).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.InvalidateAll(context.Background(), 7); err != nil {
		t.Fatalf("InvalidateAll error: %v", err)
	}
}

func TestInvalidateAll_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(invalQ).
		WithArgs(int64(7)).
		WillReturnError(errors.New("db err"))

	err := repo.InvalidateAll(context.Background(), 7)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
