package repository

import (
	"context"

	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	// GetByUserAndBootcamp returns the user's review of a bootcamp, or
	// nil when none exists. Used for the one-review-per-user rule.
	GetByUserAndBootcamp(ctx context.Context, userID, bootcampID string) (*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
	List(ctx context.Context, spec *query.Spec) (*query.Envelope, error)
	Schema() *query.Schema
}
