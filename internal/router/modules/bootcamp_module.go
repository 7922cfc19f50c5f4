package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bootcamphub/bootcamp-api/internal/container"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	handlers "github.com/bootcamphub/bootcamp-api/internal/interface/http"
	"github.com/bootcamphub/bootcamp-api/internal/interface/middleware"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
)

// BootcampModule wires bootcamp routes, including the nested course and
// review collections that live under a bootcamp.
type BootcampModule struct {
	Bootcamps *handlers.BootcampHandler
	Courses   *handlers.CourseHandler
	Reviews   *handlers.ReviewHandler
	JWT       *helpers.JWTManager
	Users     repository.UserRepository
}

func NewBootcampModule(b *handlers.BootcampHandler, c *handlers.CourseHandler, r *handlers.ReviewHandler, jwt *helpers.JWTManager, users repository.UserRepository) *BootcampModule {
	return &BootcampModule{Bootcamps: b, Courses: c, Reviews: r, JWT: jwt, Users: users}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())
	protect := middleware.Protect(m.JWT, m.Users)
	publisherOnly := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)
	userOnly := middleware.Authorize(entity.RoleUser, entity.RoleAdmin)
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser())

	bc := rg.Group("/bootcamps")
	{
		bc.GET("", readLimiter, m.Bootcamps.List)
		bc.GET("/search", readLimiter, m.Bootcamps.Search)
		bc.GET("/radius/:zipcode/:distance", readLimiter, m.Bootcamps.Radius)
		bc.GET("/:bootcampId", readLimiter, m.Bootcamps.Get)

		bc.POST("", protect, publisherOnly, writeLimiter, m.Bootcamps.Create)
		bc.PUT("/:bootcampId", protect, publisherOnly, writeLimiter, m.Bootcamps.Update)
		bc.DELETE("/:bootcampId", protect, publisherOnly, writeLimiter, m.Bootcamps.Delete)
		bc.PUT("/:bootcampId/photo", protect, publisherOnly, writeLimiter, m.Bootcamps.UploadPhoto)

		// Nested collections
		bc.GET("/:bootcampId/courses", readLimiter, m.Courses.List)
		bc.POST("/:bootcampId/courses", protect, publisherOnly, writeLimiter, m.Courses.Create)
		bc.GET("/:bootcampId/reviews", readLimiter, m.Reviews.List)
		bc.POST("/:bootcampId/reviews", protect, userOnly, writeLimiter, m.Reviews.Create)
	}
}
