package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/parksujin/lifeshare/internal/common"
	"github.com/parksujin/lifeshare/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const findQuery = `(?s)^\s*SELECT\s+user_id,\s*password_hash,\s*name,\s*email,\s*enabled,\s*last_login_at,\s*last_logout_at\s+FROM\s+users\s+WHERE\s+user_id\s*=\s*\$1\s*$`

func TestFindByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "password_hash", "name", "email", "enabled", "last_login_at", "last_logout_at"}).
		AddRow("admin01", "$2a$10$hash", "관리자", "enc-email", true, nil, nil)
	mock.ExpectQuery(findQuery).
		WithArgs("admin01").
		WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), "admin01")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.ID != "admin01" || got.PasswordHash != "$2a$10$hash" || !got.Enabled {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("admin01").
		WillReturnError(errors.New("db down"))

	_, err := repo.FindByID(context.Background(), "admin01")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(user_id,\s*password_hash,\s*name,\s*email,\s*enabled\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+user_id\s*$`

	rows := sqlmock.NewRows([]string{"user_id"}).AddRow("admin01")
	mock.ExpectQuery(q).
		WithArgs("admin01", "$2a$10$hash", "관리자", "enc-email", true).
		WillReturnRows(rows)

	u := &models.User{ID: "admin01", PasswordHash: "$2a$10$hash", Name: "관리자", Email: "enc-email", Enabled: true}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "admin01" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUpdateLastLoginAt_RowsAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+last_login_at\s*=\s*now\(\)\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("admin01").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateLastLoginAt(context.Background(), "admin01")
	if err != nil {
		t.Fatalf("UpdateLastLoginAt error: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows affected: got %d want 1", n)
	}
}

func TestUpdateLastLogoutAt_ZeroRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+last_logout_at\s*=\s*now\(\)\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.UpdateLastLogoutAt(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("UpdateLastLogoutAt error: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows affected: got %d want 0", n)
	}
}
