package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bootcamphub/bootcamp-api/internal/container"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	handlers "github.com/bootcamphub/bootcamp-api/internal/interface/http"
	"github.com/bootcamphub/bootcamp-api/internal/interface/middleware"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
)

// AuthModule wires registration, login and credential management.
// Public: POST /auth/register, /auth/login, /auth/forgotpassword,
// PUT /auth/resetpassword/:resettoken. Everything else requires a token.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, users repository.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/forgotpassword", forgotLimiter, m.Handler.ForgotPassword)
	rg.PUT("/auth/resetpassword/:resettoken", forgotLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/auth")
	auth.Use(middleware.Protect(m.JWT, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser()))
	{
		auth.GET("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/updatedetails", m.Handler.UpdateDetails)
		auth.PUT("/updatepassword", m.Handler.UpdatePassword)
	}
}
