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

// ReviewModule wires the flat review routes; creation happens on the
// nested bootcamp route registered by BootcampModule.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager, users repository.UserRepository) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt, Users: users}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())
	protect := middleware.Protect(m.JWT, m.Users)
	reviewerOnly := middleware.Authorize(entity.RoleUser, entity.RoleAdmin)
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser())

	reviews := rg.Group("/reviews")
	{
		reviews.GET("", readLimiter, m.Handler.List)
		reviews.GET("/:id", readLimiter, m.Handler.Get)
		reviews.PUT("/:id", protect, reviewerOnly, writeLimiter, m.Handler.Update)
		reviews.DELETE("/:id", protect, reviewerOnly, writeLimiter, m.Handler.Delete)
	}
}
