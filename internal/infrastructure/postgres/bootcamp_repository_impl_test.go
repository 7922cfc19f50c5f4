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
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
)

func newBootcampRepo(t *testing.T) (*BootcampRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewBootcampRepository(mock), mock
}

func bootcampRow(id, userID, name string) *pgxmock.Rows {
	lat, lng := 42.35, -71.05
	rating := 8.5
	cost := 10000
	return pgxmock.NewRows([]string{
		"id", "user_id", "name", "slug", "description", "website", "phone", "email",
		"address", "latitude", "longitude", "careers", "average_rating", "average_cost",
		"photo", "housing", "job_assistance", "job_guarantee", "accept_gi", "created_at",
	}).AddRow(id, userID, name, "devworks", "d", "", "", "", "addr",
		&lat, &lng, []string{"Web Development"}, &rating, &cost,
		"no-photo.jpg", true, false, false, false, time.Now())
}

func TestBootcampCreateDuplicateName(t *testing.T) {
	repo, mock := newBootcampRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO bootcamps`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "bootcamps_name_key"})

	err := repo.Create(context.Background(), &entity.Bootcamp{Name: "Devworks"})
	require.True(t, domain.IsConflict(err))
}

func TestBootcampGetByOwnerNilWhenNone(t *testing.T) {
	repo, mock := newBootcampRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM bootcamps WHERE user_id = \$1`).
		WithArgs("p1").
		WillReturnError(pgx.ErrNoRows)

	b, err := repo.GetByOwner(context.Background(), "p1")
	require.NoError(t, err)
	require.Nil(t, b)
}

func TestBootcampGetByOwnerFound(t *testing.T) {
	repo, mock := newBootcampRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM bootcamps WHERE user_id = \$1`).
		WithArgs("p1").
		WillReturnRows(bootcampRow("bc1", "p1", "Devworks"))

	b, err := repo.GetByOwner(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "bc1", b.ID)
	require.Equal(t, "p1", b.UserID)
}

func TestBootcampGetByIDNotFound(t *testing.T) {
	repo, mock := newBootcampRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM bootcamps WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
}

func TestBootcampRecomputeAverages(t *testing.T) {
	repo, mock := newBootcampRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE bootcamps\s+SET average_cost = \(\s*SELECT CEIL\(AVG\(tuition\)\) FROM courses WHERE bootcamp_id = \$1`).
		WithArgs("bc1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.RecomputeAverageCost(context.Background(), "bc1"))

	mock.ExpectExec(`UPDATE bootcamps\s+SET average_rating = \(\s*SELECT ROUND\(AVG\(rating\)::numeric, 1\) FROM reviews WHERE bootcamp_id = \$1`).
		WithArgs("bc1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.RecomputeAverageRating(context.Background(), "bc1"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampFindInBounds(t *testing.T) {
	repo, mock := newBootcampRepo(t)
	defer mock.Close()

	b := repository.Bounds{MinLat: 42.0, MaxLat: 43.0, MinLng: -72.0, MaxLng: -71.0}
	mock.ExpectQuery(`WHERE latitude BETWEEN \$1 AND \$2 AND longitude BETWEEN \$3 AND \$4`).
		WithArgs(b.MinLat, b.MaxLat, b.MinLng, b.MaxLng).
		WillReturnRows(bootcampRow("bc1", "p1", "Devworks"))

	out, err := repo.FindInBounds(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Devworks", out[0].Name)
}

func TestBootcampDeleteMissing(t *testing.T) {
	repo, mock := newBootcampRepo(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM bootcamps WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
}
