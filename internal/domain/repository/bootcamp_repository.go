package repository

import (
	"context"

	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

// Bounds is a latitude/longitude box used by the radius search.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BootcampRepository defines the persistence contract for bootcamps.
type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	// GetByOwner returns the bootcamp owned by userID, or nil when the
	// owner has not published one yet.
	GetByOwner(ctx context.Context, userID string) (*entity.Bootcamp, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	// RecomputeAverageCost refreshes average_cost from the bootcamp's
	// courses. Called as an explicit step after course writes.
	RecomputeAverageCost(ctx context.Context, id string) error
	// RecomputeAverageRating refreshes average_rating from reviews.
	RecomputeAverageRating(ctx context.Context, id string) error
	FindInBounds(ctx context.Context, b Bounds) ([]entity.Bootcamp, error)
	List(ctx context.Context, spec *query.Spec) (*query.Envelope, error)
	Schema() *query.Schema
}
