package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
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
	qByLogin = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*email\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	qByID    = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*email\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	qUpsert  = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*password_hash,\s*email\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*ON\s+CONFLICT\s*\(id\)\s*DO\s+UPDATE.*$`
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "email"})
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByLogin).
		WithArgs("admin").
		WillReturnRows(userRows().AddRow(1, "admin", "hash", "admin@example.com"))

	got, err := repo.GetUserByLogin(context.Background(), "admin")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if got.ID != 1 || got.UserName != "admin" || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByLogin).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByID).
		WithArgs(1).
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByID(context.Background(), 1)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSave(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qUpsert).
		WithArgs(1, "admin", "hash", "admin@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &models.User{ID: 1, UserName: "admin", PasswordHash: "hash", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSave_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qUpsert).WillReturnError(errors.New("boom"))

	err := repo.Save(context.Background(), &models.User{ID: 1})
	if err == nil || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
