package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/bootcamphub/bootcamp-api/config"
	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	return &config.Config{MaxPageSize: 100, MaxFileUpload: 1 << 20}
}

// stubBootcampRepo records calls so tests can assert ordering rules like
// "the ownership conflict is checked before the insert".
type stubBootcampRepo struct {
	byID    map[string]*entity.Bootcamp
	byOwner map[string]*entity.Bootcamp

	created   []*entity.Bootcamp
	updated   []*entity.Bootcamp
	deleted   []string
	costs     []string
	ratings   []string
	bounds    []repository.Bounds
	inBounds  []entity.Bootcamp
}

func (s *stubBootcampRepo) Create(_ context.Context, b *entity.Bootcamp) error {
	b.ID = "bc-new"
	s.created = append(s.created, b)
	return nil
}

func (s *stubBootcampRepo) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	if b, ok := s.byID[id]; ok {
		return b, nil
	}
	return nil, domain.NotFoundError{Resource: "bootcamp", ID: id}
}

func (s *stubBootcampRepo) GetByOwner(_ context.Context, userID string) (*entity.Bootcamp, error) {
	return s.byOwner[userID], nil
}

func (s *stubBootcampRepo) Update(_ context.Context, b *entity.Bootcamp) error {
	s.updated = append(s.updated, b)
	return nil
}

func (s *stubBootcampRepo) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBootcampRepo) UpdatePhoto(context.Context, string, string) error { return nil }

func (s *stubBootcampRepo) RecomputeAverageCost(_ context.Context, id string) error {
	s.costs = append(s.costs, id)
	return nil
}

func (s *stubBootcampRepo) RecomputeAverageRating(_ context.Context, id string) error {
	s.ratings = append(s.ratings, id)
	return nil
}

func (s *stubBootcampRepo) FindInBounds(_ context.Context, b repository.Bounds) ([]entity.Bootcamp, error) {
	s.bounds = append(s.bounds, b)
	return s.inBounds, nil
}

func (s *stubBootcampRepo) List(context.Context, *query.Spec) (*query.Envelope, error) {
	return &query.Envelope{Success: true}, nil
}

func (s *stubBootcampRepo) Schema() *query.Schema {
	return &query.Schema{Table: "bootcamps", Fields: map[string]query.Field{
		"name": {Column: "name"},
	}}
}

type stubCourseRepo struct {
	byID            map[string]*entity.Course
	created         []*entity.Course
	updated         []*entity.Course
	deleted         []string
	deletedBootcamp []string
	listSpecs       []*query.Spec
}

func (s *stubCourseRepo) Create(_ context.Context, c *entity.Course) error {
	c.ID = "c-new"
	s.created = append(s.created, c)
	return nil
}

func (s *stubCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, domain.NotFoundError{Resource: "course", ID: id}
}

func (s *stubCourseRepo) Update(_ context.Context, c *entity.Course) error {
	s.updated = append(s.updated, c)
	return nil
}

func (s *stubCourseRepo) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCourseRepo) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	s.deletedBootcamp = append(s.deletedBootcamp, bootcampID)
	return nil
}

func (s *stubCourseRepo) List(_ context.Context, spec *query.Spec) (*query.Envelope, error) {
	s.listSpecs = append(s.listSpecs, spec)
	return &query.Envelope{Success: true}, nil
}

func (s *stubCourseRepo) Schema() *query.Schema {
	return &query.Schema{Table: "courses", Fields: map[string]query.Field{
		"tuition":     {Column: "tuition"},
		"bootcamp_id": {Column: "bootcamp_id"},
	}}
}

type stubReviewRepo struct {
	byID            map[string]*entity.Review
	byUserBootcamp  map[string]*entity.Review // userID+"/"+bootcampID
	created         []*entity.Review
	deletedBootcamp []string
	listSpecs       []*query.Spec
}

func (s *stubReviewRepo) Create(_ context.Context, r *entity.Review) error {
	r.ID = "r-new"
	s.created = append(s.created, r)
	return nil
}

func (s *stubReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	if r, ok := s.byID[id]; ok {
		return r, nil
	}
	return nil, domain.NotFoundError{Resource: "review", ID: id}
}

func (s *stubReviewRepo) GetByUserAndBootcamp(_ context.Context, userID, bootcampID string) (*entity.Review, error) {
	return s.byUserBootcamp[userID+"/"+bootcampID], nil
}

func (s *stubReviewRepo) Update(context.Context, *entity.Review) error { return nil }
func (s *stubReviewRepo) Delete(context.Context, string) error         { return nil }

func (s *stubReviewRepo) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	s.deletedBootcamp = append(s.deletedBootcamp, bootcampID)
	return nil
}

func (s *stubReviewRepo) List(_ context.Context, spec *query.Spec) (*query.Envelope, error) {
	s.listSpecs = append(s.listSpecs, spec)
	return &query.Envelope{Success: true}, nil
}

func (s *stubReviewRepo) Schema() *query.Schema {
	return &query.Schema{Table: "reviews", Fields: map[string]query.Field{
		"rating":      {Column: "rating"},
		"bootcamp_id": {Column: "bootcamp_id"},
	}}
}

func newBootcampService(bc *stubBootcampRepo, cr *stubCourseRepo, rv *stubReviewRepo) *BootcampService {
	return NewBootcampService(bc, cr, rv, nil, nil, nil, testConfig(), testLogger())
}

func TestBootcampCreatePublisherLimit(t *testing.T) {
	bc := &stubBootcampRepo{byOwner: map[string]*entity.Bootcamp{
		"p1": {ID: "bc1", UserID: "p1"},
	}}
	svc := newBootcampService(bc, &stubCourseRepo{}, &stubReviewRepo{})

	caller := &entity.User{ID: "p1", Role: entity.RolePublisher}
	_, err := svc.Create(context.Background(), caller, &entity.Bootcamp{Name: "Second One"})

	require.Error(t, err)
	require.True(t, domain.IsConflict(err))
	require.Empty(t, bc.created, "conflicting create must not reach the store")
}

func TestBootcampCreateAdminBypassesLimit(t *testing.T) {
	bc := &stubBootcampRepo{byOwner: map[string]*entity.Bootcamp{
		"a1": {ID: "bc1", UserID: "a1"},
	}}
	svc := newBootcampService(bc, &stubCourseRepo{}, &stubReviewRepo{})

	caller := &entity.User{ID: "a1", Role: entity.RoleAdmin}
	b, err := svc.Create(context.Background(), caller, &entity.Bootcamp{Name: "Devworks Bootcamp"})

	require.NoError(t, err)
	require.Len(t, bc.created, 1)
	require.Equal(t, "a1", b.UserID)
	require.Equal(t, "devworks-bootcamp", b.Slug)
}

func TestBootcampCreateRejectsUnknownCareer(t *testing.T) {
	bc := &stubBootcampRepo{}
	svc := newBootcampService(bc, &stubCourseRepo{}, &stubReviewRepo{})

	caller := &entity.User{ID: "p1", Role: entity.RolePublisher}
	_, err := svc.Create(context.Background(), caller, &entity.Bootcamp{
		Name: "X", Careers: []string{"Underwater Basket Weaving"},
	})
	require.True(t, domain.IsValidation(err))
	require.Empty(t, bc.created)
}

func TestBootcampUpdateOwnership(t *testing.T) {
	bc := &stubBootcampRepo{byID: map[string]*entity.Bootcamp{
		"bc1": {ID: "bc1", UserID: "p1", Name: "Devworks"},
	}}
	svc := newBootcampService(bc, &stubCourseRepo{}, &stubReviewRepo{})

	name := "Renamed"
	_, err := svc.Update(context.Background(), &entity.User{ID: "p2", Role: entity.RolePublisher}, "bc1", UpdateBootcampInput{Name: &name})
	require.True(t, domain.IsForbidden(err))
	require.Empty(t, bc.updated)

	b, err := svc.Update(context.Background(), &entity.User{ID: "p1", Role: entity.RolePublisher}, "bc1", UpdateBootcampInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", b.Name)
	require.Equal(t, "renamed", b.Slug)
}

func TestBootcampUpdateMissingIsNotFound(t *testing.T) {
	// NotFound must win even for a caller who owns nothing.
	svc := newBootcampService(&stubBootcampRepo{}, &stubCourseRepo{}, &stubReviewRepo{})
	_, err := svc.Update(context.Background(), &entity.User{ID: "p2", Role: entity.RolePublisher}, "nope", UpdateBootcampInput{})
	require.True(t, domain.IsNotFound(err))
}

func TestBootcampDeleteCascades(t *testing.T) {
	bc := &stubBootcampRepo{byID: map[string]*entity.Bootcamp{
		"bc1": {ID: "bc1", UserID: "p1"},
	}}
	cr := &stubCourseRepo{}
	rv := &stubReviewRepo{}
	svc := newBootcampService(bc, cr, rv)

	err := svc.Delete(context.Background(), &entity.User{ID: "p1", Role: entity.RolePublisher}, "bc1")
	require.NoError(t, err)
	require.Equal(t, []string{"bc1"}, cr.deletedBootcamp)
	require.Equal(t, []string{"bc1"}, rv.deletedBootcamp)
	require.Equal(t, []string{"bc1"}, bc.deleted)
}

func TestBootcampUploadPhotoValidation(t *testing.T) {
	bc := &stubBootcampRepo{byID: map[string]*entity.Bootcamp{
		"bc1": {ID: "bc1", UserID: "p1"},
	}}
	svc := newBootcampService(bc, &stubCourseRepo{}, &stubReviewRepo{})
	caller := &entity.User{ID: "p1", Role: entity.RolePublisher}

	_, err := svc.UploadPhoto(context.Background(), caller, "bc1", "report.pdf", "application/pdf", 100, nil)
	require.True(t, domain.IsValidation(err))

	_, err = svc.UploadPhoto(context.Background(), caller, "bc1", "big.png", "image/png", 2<<20, nil)
	require.True(t, domain.IsValidation(err))

	_, err = svc.UploadPhoto(context.Background(), &entity.User{ID: "p2", Role: entity.RolePublisher}, "bc1", "a.png", "image/png", 100, nil)
	require.True(t, domain.IsForbidden(err))
}
