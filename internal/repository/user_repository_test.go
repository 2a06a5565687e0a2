package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/reelhub/media-rental/internal/utils"
)

func newUserMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db), mock
}

func TestUserCreate_HashesAndNormalizes(t *testing.T) {
	repo, mock := newUserMock(t)

	mock.ExpectExec("INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)").
		WithArgs("alice", "alice@example.com", sqlmock.AnyArg(), "public").
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := repo.Create(context.Background(), " alice ", "Alice@Example.COM", "secret99", "public", 4)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_DuplicateIsConflict(t *testing.T) {
	repo, mock := newUserMock(t)

	mock.ExpectExec("INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'uq_users_username'"))

	_, err := repo.Create(context.Background(), "alice", "alice@example.com", "secret99", "public", 4)
	require.ErrorIs(t, err, ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByUsername(t *testing.T) {
	repo, mock := newUserMock(t)
	hash, err := utils.HashPassword("secret99", 4)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id,username,email,password_hash,role,created_at FROM users WHERE username=? LIMIT 1").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
			AddRow(1, "alice", "alice@example.com", hash, "public", time.Now()))

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(1), u.ID)
	require.True(t, utils.VerifyPassword(u.PasswordHash, "secret99"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	repo, mock := newUserMock(t)

	mock.ExpectQuery("SELECT id,username,email,password_hash,role,created_at FROM users WHERE username=? LIMIT 1").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserList_OldestFirst(t *testing.T) {
	repo, mock := newUserMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id,username,email,password_hash,role,created_at FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
			AddRow(1, "alice", "alice@example.com", "h", "public", now).
			AddRow(2, "bob", "bob@example.com", "h", "staff", now))

	rows, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "alice", rows[0].Username)
	require.Equal(t, "staff", rows[1].Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateProfile_NothingToDo(t *testing.T) {
	repo, _ := newUserMock(t)

	n, err := repo.UpdateProfile(context.Background(), 1, "", "")
	require.NoError(t, err)
	require.Zero(t, n)
}
