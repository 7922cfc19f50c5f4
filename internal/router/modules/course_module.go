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

// CourseModule wires the flat course routes; creation happens on the
// nested bootcamp route registered by BootcampModule.
type CourseModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewCourseModule(h *handlers.CourseHandler, jwt *helpers.JWTManager, users repository.UserRepository) *CourseModule {
	return &CourseModule{Handler: h, JWT: jwt, Users: users}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())
	protect := middleware.Protect(m.JWT, m.Users)
	publisherOnly := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser())

	courses := rg.Group("/courses")
	{
		courses.GET("", readLimiter, m.Handler.List)
		courses.GET("/:id", readLimiter, m.Handler.Get)
		courses.PUT("/:id", protect, publisherOnly, writeLimiter, m.Handler.Update)
		courses.DELETE("/:id", protect, publisherOnly, writeLimiter, m.Handler.Delete)
	}
}
