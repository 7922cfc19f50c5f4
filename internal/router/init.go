package router

import (
	"github.com/bootcamphub/bootcamp-api/internal/application"
	"github.com/bootcamphub/bootcamp-api/internal/container"
	pginfra "github.com/bootcamphub/bootcamp-api/internal/infrastructure/postgres"
	handlers "github.com/bootcamphub/bootcamp-api/internal/interface/http"
	"github.com/bootcamphub/bootcamp-api/internal/router/modules"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
)

// InitModules builds the repository/service/handler graph from the
// container singletons and registers every feature module.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	bootcampRepo := pginfra.NewBootcampRepository(pool)
	courseRepo := pginfra.NewCourseRepository(pool)
	reviewRepo := pginfra.NewReviewRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), container.GetRedis(), container.GetRabbitPub(), cfg, logger)
	bootcampSvc := application.NewBootcampService(bootcampRepo, courseRepo, reviewRepo, container.GetGeocoder(), container.GetGCS(), container.GetES(), cfg, logger)
	courseSvc := application.NewCourseService(courseRepo, bootcampRepo, cfg, logger)
	reviewSvc := application.NewReviewService(reviewRepo, bootcampRepo, cfg, logger)
	userSvc := application.NewUserService(userRepo, cfg, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cookies)
	bootcampHandler := handlers.NewBootcampHandler(bootcampSvc, logger)
	courseHandler := handlers.NewCourseHandler(courseSvc, logger)
	reviewHandler := handlers.NewReviewHandler(reviewSvc, logger)
	userHandler := handlers.NewUserHandler(userSvc, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(authHandler, jwt, userRepo))
	r.Add(modules.NewBootcampModule(bootcampHandler, courseHandler, reviewHandler, jwt, userRepo))
	r.Add(modules.NewCourseModule(courseHandler, jwt, userRepo))
	r.Add(modules.NewReviewModule(reviewHandler, jwt, userRepo))
	r.Add(modules.NewUserModule(userHandler, jwt, userRepo))
}
