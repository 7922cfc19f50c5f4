package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSelectBare(t *testing.T) {
	spec := &Spec{Page: 1, Limit: 25, Sort: []SortKey{{Column: "created_at", Desc: true}}}
	sql, args := BuildSelect(testSchema(), spec)
	require.Equal(t, "SELECT * FROM bootcamps ORDER BY created_at DESC LIMIT 25 OFFSET 0", sql)
	require.Empty(t, args)
}

func TestBuildSelectFull(t *testing.T) {
	spec := &Spec{
		Filters: []Filter{
			{Column: "average_cost", Op: OpLte, Value: int64(10000)},
			{Column: "housing", Op: OpEq, Value: true},
		},
		Select: []string{"name", "average_cost"},
		Sort:   []SortKey{{Column: "name"}},
		Page:   3,
		Limit:  10,
	}
	sql, args := BuildSelect(testSchema(), spec)
	require.Equal(t,
		"SELECT name, average_cost FROM bootcamps WHERE average_cost <= $1 AND housing = $2 ORDER BY name ASC LIMIT 10 OFFSET 20",
		sql)
	require.Equal(t, []any{int64(10000), true}, args)
}

func TestBuildWhereInList(t *testing.T) {
	spec := &Spec{
		Filters: []Filter{{Column: "tuition", Op: OpIn, Values: []any{int64(5000), int64(9000)}}},
		Page:    1, Limit: 25,
	}
	sql, args := BuildCount(testSchema(), spec)
	require.Equal(t, "SELECT count(*) FROM bootcamps WHERE tuition = ANY($1)", sql)
	require.Equal(t, []any{[]int64{5000, 9000}}, args)
}

func TestBuildWhereArrayOverlap(t *testing.T) {
	spec := &Spec{
		Filters: []Filter{{Column: "careers", Op: OpIn, Values: []any{"Business"}, Array: true}},
		Page:    1, Limit: 25,
	}
	sql, args := BuildCount(testSchema(), spec)
	require.Equal(t, "SELECT count(*) FROM bootcamps WHERE careers && $1", sql)
	require.Equal(t, []any{[]string{"Business"}}, args)
}

func TestBuildWhereMixedInListFallsBackToStrings(t *testing.T) {
	spec := &Spec{
		Filters: []Filter{{Column: "slug", Op: OpIn, Values: []any{"devworks", int64(7)}}},
		Page:    1, Limit: 25,
	}
	_, args := BuildCount(testSchema(), spec)
	require.Equal(t, []any{[]string{"devworks", "7"}}, args)
}
