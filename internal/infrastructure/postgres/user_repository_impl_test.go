package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
)

func newUserRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewUserRepository(mock), mock
}

func TestUserCreate(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "John", "john@example.com", "user", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &entity.User{Name: "John", Email: "john@example.com", Role: "user", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	require.NotEmpty(t, u.ID)
	require.Equal(t, now, u.CreatedAt)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "John", "john@example.com", "user", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &entity.User{Name: "John", Email: "john@example.com", Role: "user", Password: "hash"})
	require.True(t, domain.IsConflict(err))
}

func TestUserGetByIDNotFound(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, role, password, created_at, updated_at`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
}

func TestUserGetByEmail(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, email, role, password, created_at, updated_at`).
		WithArgs("john@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "role", "password", "created_at", "updated_at"}).
			AddRow("u1", "John", "john@example.com", "publisher", "hash", now, now))

	u, err := repo.GetByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.Equal(t, entity.RolePublisher, u.Role)
}

func TestUserDeleteMissing(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
}

func TestUserUpdatePassword(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET password = \$1, updated_at = now\(\) WHERE id = \$2`).
		WithArgs("newhash", "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "u1", "newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}
