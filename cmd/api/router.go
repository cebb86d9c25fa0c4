package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupUserRoutes(v1, c)
	}

	return router
}

// setupUserRoutes mounts the whole surface under /api/v1/user, the
// prefix the frontend was built against. Blog routes live under it too.
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	user := v1.Group("/user")
	{
		// Account
		user.POST("/register", c.UserHandler.Register)
		user.POST("/login", c.UserHandler.Login)
		user.GET("/profile/:id", c.UserHandler.GetProfile)
		user.PUT("/profile/:id", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.UpdateProfile)

		// Posts: reads are public, writes require a verified token.
		user.GET("/blog/all", c.BlogHandler.GetAll)
		user.GET("/blog/user/:userId", c.BlogHandler.GetByUser)
		user.GET("/blog/:id", c.BlogHandler.GetByID)
		user.POST("/blog/create", middleware.AuthMiddleware(c.JWTManager), c.BlogHandler.Create)
		user.PUT("/blog/:id", middleware.AuthMiddleware(c.JWTManager), c.BlogHandler.Update)
		user.DELETE("/blog/:id", middleware.AuthMiddleware(c.JWTManager), c.BlogHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Redis being down degrades caching only, never availability.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
