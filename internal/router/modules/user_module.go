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

// UserModule wires the admin-only user management routes.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users repository.UserRepository) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(
		middleware.Protect(m.JWT, m.Users),
		middleware.Authorize(entity.RoleAdmin),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser()),
	)
	{
		users.GET("", m.Handler.List)
		users.GET("/:id", m.Handler.Get)
		users.POST("", m.Handler.Create)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
