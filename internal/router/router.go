package router

import (
	"time"

	"github.com/lisalescano/back-mapp/internal/config"
	"github.com/lisalescano/back-mapp/internal/handler"
	"github.com/lisalescano/back-mapp/internal/middleware"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/repository"
	"github.com/lisalescano/back-mapp/internal/service"
	"github.com/lisalescano/back-mapp/internal/token"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.ErrorHandler(cfg.Env))
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	tokens := token.NewService(cfg.JWTSecret, time.Duration(cfg.JWTExpirationDays)*24*time.Hour)
	authSvc := service.NewAuthService(userRepo, tokens)
	incidentSvc := service.NewIncidentService(incidentRepo, rdb)
	userSvc := service.NewUserService(userRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	incidentsH := handler.NewIncidentsHandler(incidentSvc)
	usersH := handler.NewUsersHandler(userSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	jwtMW := middleware.JWTAuth(tokens, userRepo)
	adminMW := middleware.RequireRole(model.RoleAdmin)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authH.Register)
			auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
			auth.GET("/profile", jwtMW, authH.Profile)
		}

		incidents := api.Group("/incidents")
		{
			// Browsing is public; reporting and mutating require a bearer token.
			incidents.GET("", incidentsH.List)
			incidents.POST("", jwtMW, incidentsH.Create)
			incidents.GET("/my-incidents", jwtMW, incidentsH.GetMine)
			incidents.GET("/statistics", jwtMW, adminMW, incidentsH.Statistics)
			incidents.GET("/:id", incidentsH.Get)
			incidents.PUT("/:id", jwtMW, incidentsH.Update)
			incidents.PATCH("/:id/status", jwtMW, adminMW, incidentsH.UpdateStatus)
			incidents.DELETE("/:id", jwtMW, incidentsH.Delete)
		}

		users := api.Group("/users", jwtMW)
		{
			users.PATCH("/profile/me", usersH.UpdateOwnProfile)

			admin := users.Group("", adminMW)
			{
				admin.GET("", usersH.List)
				admin.GET("/:id", usersH.Get)
				admin.PATCH("/:id/role", usersH.UpdateRole)
				admin.PATCH("/:id/status", usersH.SetActive)
				admin.DELETE("/:id", usersH.Delete)
			}
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Generic 404 fallback for unmatched routes
	r.NoRoute(handler.NotFound)

	return r
}
