package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/handlers"
	"github.com/prehab-dev/prehab/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Auth        *handlers.AuthHandler
	Exercises   *handlers.ExerciseHandler
	Engagements *handlers.EngagementHandler
	Export      *handlers.ExportHandler
	Health      *handlers.HealthHandler

	Resolver middleware.AccessResolver
	Users    middleware.UserFinder

	AllowedOrigins []string
	Log            zerolog.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middleware.AuthMiddleware(deps.Resolver, deps.Users)

	r.GET("/health", deps.Health.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/exercises/:id", requireAuth, deps.Exercises.LiveExercise)

	auth := r.Group("/auth")
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/refresh", deps.Auth.Refresh)
		auth.GET("/me", requireAuth, deps.Auth.Me)
		auth.DELETE("/me", requireAuth, deps.Auth.DeleteAccount)
	}

	exercises := r.Group("/exercises", requireAuth)
	{
		exercises.POST("", deps.Exercises.CreateExercise)
		exercises.GET("", deps.Exercises.ListExercises)
		exercises.GET("/:id", deps.Exercises.GetExercise)
		exercises.PUT("/:id", deps.Exercises.UpdateExercise)
		exercises.DELETE("/:id", deps.Exercises.DeleteExercise)
		exercises.GET("/:id/users", deps.Exercises.GetExerciseUsers)
	}

	favorites := r.Group("/favorites", requireAuth)
	{
		favorites.GET("", deps.Engagements.ListFavorites)
		favorites.POST("/:id", deps.Engagements.AddFavorite)
		favorites.DELETE("/:id", deps.Engagements.RemoveFavorite)
	}

	saves := r.Group("/saves", requireAuth)
	{
		saves.GET("", deps.Engagements.ListSaves)
		saves.POST("/:id", deps.Engagements.AddSave)
		saves.DELETE("/:id", deps.Engagements.RemoveSave)
	}

	r.POST("/ratings/:id", requireAuth, deps.Engagements.RateExercise)
	r.GET("/collection", requireAuth, deps.Engagements.GetCollection)
	r.POST("/migrate/exercises", requireAuth, deps.Export.ExportExercises)

	return r
}
