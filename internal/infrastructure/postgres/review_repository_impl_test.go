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

func newReviewRepo(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewReviewRepository(mock), mock
}

func TestReviewCreate(t *testing.T) {
	repo, mock := newReviewRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), "bc1", "u1", "Great", "Learned a lot", 9).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	rv := &entity.Review{BootcampID: "bc1", UserID: "u1", Title: "Great", Text: "Learned a lot", Rating: 9}
	require.NoError(t, repo.Create(context.Background(), rv))
	require.NotEmpty(t, rv.ID)
}

func TestReviewCreateDuplicate(t *testing.T) {
	repo, mock := newReviewRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reviews_user_id_bootcamp_id_key"})

	err := repo.Create(context.Background(), &entity.Review{BootcampID: "bc1", UserID: "u1"})
	require.True(t, domain.IsConflict(err))
}

func TestReviewGetByUserAndBootcampNilWhenNone(t *testing.T) {
	repo, mock := newReviewRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM reviews WHERE user_id = \$1 AND bootcamp_id = \$2`).
		WithArgs("u1", "bc1").
		WillReturnError(pgx.ErrNoRows)

	rv, err := repo.GetByUserAndBootcamp(context.Background(), "u1", "bc1")
	require.NoError(t, err)
	require.Nil(t, rv)
}

func TestReviewDeleteByBootcamp(t *testing.T) {
	repo, mock := newReviewRepo(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM reviews WHERE bootcamp_id = \$1`).
		WithArgs("bc1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, repo.DeleteByBootcamp(context.Background(), "bc1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
