package application

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/config"
	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

// ReviewService handles reviews, one per user per bootcamp.
type ReviewService struct {
	Reviews   repository.ReviewRepository
	Bootcamps repository.BootcampRepository
	Cfg       *config.Config
	Logger    *logrus.Logger
}

func NewReviewService(reviews repository.ReviewRepository, bootcamps repository.BootcampRepository, cfg *config.Config, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Reviews: reviews, Bootcamps: bootcamps, Cfg: cfg, Logger: logger}
}

// List serves both /reviews and /bootcamps/:id/reviews, scoping the
// nested route with a server-side filter appended after parsing.
func (s *ReviewService) List(ctx context.Context, bootcampID string, values url.Values) (*query.Envelope, error) {
	spec, err := query.Parse(values, s.Reviews.Schema(), query.Options{
		MaxLimit: s.Cfg.MaxPageSize,
		Populate: "bootcamp",
	})
	if err != nil {
		return nil, err
	}
	if bootcampID != "" {
		spec.Filters = append(spec.Filters, query.Filter{
			Field:  "bootcamp_id",
			Column: "bootcamp_id",
			Op:     query.OpEq,
			Value:  bootcampID,
		})
	}
	return s.Reviews.List(ctx, spec)
}

func (s *ReviewService) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return s.Reviews.GetByID(ctx, id)
}

type ReviewInput struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Create adds a review to a bootcamp. The bootcamp must exist, and the
// duplicate check runs before the insert so a second review from the
// same user is reported as a conflict rather than a storage error.
func (s *ReviewService) Create(ctx context.Context, caller *entity.User, bootcampID string, in ReviewInput) (*entity.Review, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	existing, err := s.Reviews.GetByUserAndBootcamp(ctx, caller.ID, b.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ConflictError{
			Resource: "review",
			Msg:      fmt.Sprintf("user %s has already reviewed bootcamp %s", caller.ID, b.ID),
		}
	}

	r := &entity.Review{
		BootcampID: b.ID,
		UserID:     caller.ID,
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	if err := s.Bootcamps.RecomputeAverageRating(ctx, b.ID); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Error("failed to recompute average rating")
	}
	return r, nil
}

type UpdateReviewInput struct {
	Title  *string `json:"title"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func (s *ReviewService) Update(ctx context.Context, caller *entity.User, id string, in UpdateReviewInput) (*entity.Review, error) {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(r.UserID) {
		return nil, domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to update review %s", caller.ID, r.ID),
		}
	}
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Text != nil {
		r.Text = *in.Text
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 10 {
			return nil, domain.ValidationError{Field: "rating", Msg: "must be between 1 and 10"}
		}
		r.Rating = *in.Rating
	}
	if err := s.Reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := s.Bootcamps.RecomputeAverageRating(ctx, r.BootcampID); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", r.BootcampID).Error("failed to recompute average rating")
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, caller *entity.User, id string) error {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanAccess(r.UserID) {
		return domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to delete review %s", caller.ID, r.ID),
		}
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Bootcamps.RecomputeAverageRating(ctx, r.BootcampID); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", r.BootcampID).Error("failed to recompute average rating")
	}
	return nil
}
