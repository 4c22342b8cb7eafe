// api/router.go
package api

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arcaload/arcaload-backend/api/handlers"
	"github.com/arcaload/arcaload-backend/api/middleware"
	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/auth"
)

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(db *sql.DB, cfg *config.Config) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Refreshed-Token"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Centralized error mapping; runs after Logger/Recovery but wraps the handlers.
	router.Use(middleware.ErrorHandler())

	// Token revocation state shared by the auth middleware and logout
	revocations := auth.NewRevocationList()

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(db, cfg, revocations)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	requestHandler := handlers.NewRequestHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// --- Public Routes ---
	router.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	router.GET("/search", catalogHandler.SearchBasic)
	router.POST("/request-game", requestHandler.SubmitRequest)

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/games", catalogHandler.ListGames)
		apiRoutes.GET("/games/featured", catalogHandler.FeaturedGames)
		apiRoutes.GET("/games/:game_id", catalogHandler.GetGame)
		apiRoutes.GET("/genres", catalogHandler.ListGenres)
		apiRoutes.GET("/requests", requestHandler.ListRequests)
		apiRoutes.GET("/search", catalogHandler.Search)
		apiRoutes.GET("/stats", catalogHandler.Stats)
	}

	// --- Admin Routes ---
	loginLimiter := middleware.NewRateLimiter()
	adminRoutes := router.Group("/admin")
	adminRoutes.POST("/login", middleware.RateLimitMiddleware(loginLimiter), authHandler.Login)

	protected := adminRoutes.Group("")
	protected.Use(middleware.AuthMiddleware(cfg, revocations))
	{
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/me", authHandler.Me)
		protected.GET("/dashboard", adminHandler.Dashboard)

		protected.POST("/api/game/add", adminHandler.AddGame)
		protected.PUT("/api/game/:game_id/update", adminHandler.UpdateGame)
		protected.DELETE("/api/game/:game_id/delete", adminHandler.DeleteGame)
		protected.PUT("/api/request/:request_id/update", adminHandler.UpdateRequestStatus)
	}

	return router
}
