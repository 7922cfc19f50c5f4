package query

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
)

func newSource(t *testing.T, populates map[string]PopulateFunc) (*Source, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &Source{DB: mock, Schema: testSchema(), Populates: populates}, mock
}

func TestSourceRun(t *testing.T) {
	src, mock := newSource(t, nil)
	defer mock.Close()

	spec := &Spec{Page: 1, Limit: 25, Sort: []SortKey{{Column: "created_at", Desc: true}}}

	mock.ExpectQuery(`SELECT count\(\*\) FROM bootcamps`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM bootcamps ORDER BY created_at DESC LIMIT 25 OFFSET 0`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow("b1", "Devworks").
			AddRow("b2", "ModernTech"))

	env, err := src.Run(context.Background(), spec)
	require.NoError(t, err)
	require.True(t, env.Success)
	require.Equal(t, 2, env.Count)
	require.Nil(t, env.Pagination)

	records, ok := env.Data.([]map[string]any)
	require.True(t, ok)
	require.Equal(t, "Devworks", records[0]["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceRunWithFilterArgs(t *testing.T) {
	src, mock := newSource(t, nil)
	defer mock.Close()

	spec := &Spec{
		Filters: []Filter{{Column: "average_cost", Op: OpLte, Value: int64(10000)}},
		Page:    1, Limit: 25,
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM bootcamps WHERE average_cost <= \$1`).
		WithArgs(int64(10000)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM bootcamps WHERE average_cost <= \$1 LIMIT 25 OFFSET 0`).
		WithArgs(int64(10000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	env, err := src.Run(context.Background(), spec)
	require.NoError(t, err)
	require.Equal(t, 0, env.Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceRunPopulate(t *testing.T) {
	called := false
	populates := map[string]PopulateFunc{
		"courses": func(ctx context.Context, rows []map[string]any) error {
			called = true
			for _, r := range rows {
				r["courses"] = []string{"stub"}
			}
			return nil
		},
	}
	src, mock := newSource(t, populates)
	defer mock.Close()

	spec := &Spec{Page: 1, Limit: 25, Populate: "courses"}

	mock.ExpectQuery(`SELECT count\(\*\) FROM bootcamps`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM bootcamps LIMIT 25 OFFSET 0`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("b1"))

	env, err := src.Run(context.Background(), spec)
	require.NoError(t, err)
	require.True(t, called)

	records := env.Data.([]map[string]any)
	require.Equal(t, []string{"stub"}, records[0]["courses"])
}

func TestSourceRunUnknownPopulateRejected(t *testing.T) {
	src, mock := newSource(t, nil)
	defer mock.Close()

	spec := &Spec{Page: 1, Limit: 25, Populate: "owners"}
	_, err := src.Run(context.Background(), spec)
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))
	// Nothing reached the database.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceRunCountError(t *testing.T) {
	src, mock := newSource(t, nil)
	defer mock.Close()

	spec := &Spec{Page: 1, Limit: 25}
	mock.ExpectQuery(`SELECT count\(\*\) FROM bootcamps`).
		WillReturnError(errors.New("connection refused"))

	_, err := src.Run(context.Background(), spec)
	require.Error(t, err)
}
