package auth

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-hrms/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitByIP(rate.Limit(5), 10))
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
	}
}
