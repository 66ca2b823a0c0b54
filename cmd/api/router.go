package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mediareview-backend/internal/shared/middleware"
	"mediareview-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupReviewRoutes(v1, c)
		setupCatalogRoutes(v1, c)
	}

	return router
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/genres", c.CatalogHandler.ListGenres)
	v1.GET("/media", c.CatalogHandler.ListMedia)
	v1.GET("/platforms", c.CatalogHandler.ListPlatforms)
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)

	reviews := v1.Group("/reviews")
	{
		// Reads are public.
		reviews.GET("", c.ReviewHandler.ListReviews)
		reviews.GET("/blocked", c.ReviewHandler.ListBlockedReviews)
		reviews.GET("/search/:title", c.ReviewHandler.SearchReviews)
		reviews.GET("/:id", c.ReviewHandler.GetReview)

		// Mutations require a bearer token.
		reviews.POST("", auth, c.ReviewHandler.CreateReview)
		reviews.PUT("/:id", auth, c.ReviewHandler.UpdateReview)
		reviews.PUT("/:id/block", auth, c.ReviewHandler.BlockReview)
		reviews.PUT("/:id/unblock", auth, c.ReviewHandler.UnblockReview)
		reviews.POST("/:id/gesture", auth, c.ReviewHandler.RateReview)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		redisStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":      "ok",
			"environment": c.Config.App.Environment,
			"version":     c.Config.App.Version,
			"database":    dbStatus,
			"redis":       redisStatus,
		})
	}
}
