package dashboard

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	group := r.Group("/dashboard")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.RBACAuthorize(rbacService, "dashboard", "read"))
	{
		group.GET("/stats", h.Stats)
		group.GET("/activity", h.Activity)
	}
}
