package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanwanruwoxin/my-zero2prod/internal/shared/middleware"
	"github.com/wanwanruwoxin/my-zero2prod/internal/shared/response"
	"github.com/wanwanruwoxin/my-zero2prod/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(c.Log),
		middleware.RequestID(),
		middleware.Logger(c.Log),
	)

	router.GET("/health_check", healthCheckHandler(c))

	router.POST("/subscriptions", c.SubscriptionHandler.Subscribe)
	router.GET("/subscriptions/confirm", c.SubscriptionHandler.Confirm)

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unreachable")
			return
		}
		ctx.Status(http.StatusOK)
	}
}
