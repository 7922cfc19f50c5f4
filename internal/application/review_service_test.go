package application

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
)

func newReviewService(rv *stubReviewRepo, bc *stubBootcampRepo) *ReviewService {
	return NewReviewService(rv, bc, testConfig(), testLogger())
}

func TestReviewCreateOnePerUserPerBootcamp(t *testing.T) {
	bc := &stubBootcampRepo{byID: map[string]*entity.Bootcamp{
		"bc1": {ID: "bc1", UserID: "p1"},
	}}
	rv := &stubReviewRepo{byUserBootcamp: map[string]*entity.Review{
		"u1/bc1": {ID: "r1", UserID: "u1", BootcampID: "bc1"},
	}}
	svc := newReviewService(rv, bc)

	_, err := svc.Create(context.Background(), &entity.User{ID: "u1", Role: entity.RoleUser}, "bc1", ReviewInput{
		Title: "Great", Text: "t", Rating: 9,
	})
	require.True(t, domain.IsConflict(err))
	require.Empty(t, rv.created, "duplicate review must not reach the store")
}

func TestReviewCreateMissingBootcamp(t *testing.T) {
	svc := newReviewService(&stubReviewRepo{}, &stubBootcampRepo{})
	_, err := svc.Create(context.Background(), &entity.User{ID: "u1", Role: entity.RoleUser}, "nope", ReviewInput{
		Title: "Great", Text: "t", Rating: 9,
	})
	require.True(t, domain.IsNotFound(err))
}

func TestReviewCreateRecomputesRating(t *testing.T) {
	bc := &stubBootcampRepo{byID: map[string]*entity.Bootcamp{
		"bc1": {ID: "bc1", UserID: "p1"},
	}}
	rv := &stubReviewRepo{}
	svc := newReviewService(rv, bc)

	r, err := svc.Create(context.Background(), &entity.User{ID: "u1", Role: entity.RoleUser}, "bc1", ReviewInput{
		Title: "Great", Text: "t", Rating: 9,
	})
	require.NoError(t, err)
	require.Equal(t, "u1", r.UserID)
	require.Equal(t, []string{"bc1"}, bc.ratings)
}

func TestReviewUpdateOwnershipAndRange(t *testing.T) {
	bc := &stubBootcampRepo{}
	rv := &stubReviewRepo{byID: map[string]*entity.Review{
		"r1": {ID: "r1", UserID: "u1", BootcampID: "bc1", Rating: 8},
	}}
	svc := newReviewService(rv, bc)

	rating := 10
	_, err := svc.Update(context.Background(), &entity.User{ID: "u2", Role: entity.RoleUser}, "r1", UpdateReviewInput{Rating: &rating})
	require.True(t, domain.IsForbidden(err))

	bad := 11
	_, err = svc.Update(context.Background(), &entity.User{ID: "u1", Role: entity.RoleUser}, "r1", UpdateReviewInput{Rating: &bad})
	require.True(t, domain.IsValidation(err))

	r, err := svc.Update(context.Background(), &entity.User{ID: "u1", Role: entity.RoleUser}, "r1", UpdateReviewInput{Rating: &rating})
	require.NoError(t, err)
	require.Equal(t, 10, r.Rating)
	require.Equal(t, []string{"bc1"}, bc.ratings)
}

func TestReviewListNestedScopesToBootcamp(t *testing.T) {
	rv := &stubReviewRepo{}
	svc := newReviewService(rv, &stubBootcampRepo{})

	values, _ := url.ParseQuery("rating[gte]=8")
	_, err := svc.List(context.Background(), "bc1", values)
	require.NoError(t, err)

	spec := rv.listSpecs[0]
	last := spec.Filters[len(spec.Filters)-1]
	require.Equal(t, "bootcamp_id", last.Column)
	require.Equal(t, "bc1", last.Value)
}
