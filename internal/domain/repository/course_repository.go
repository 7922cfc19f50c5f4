package repository

import (
	"context"

	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

// CourseRepository defines the persistence contract for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
	List(ctx context.Context, spec *query.Spec) (*query.Envelope, error)
	Schema() *query.Schema
}
