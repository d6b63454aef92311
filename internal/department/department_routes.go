package department

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", h.GetAll)
		departments.GET("/:id", h.GetByID)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "write"), h.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", "write"), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "write"), h.Delete)
	}
}
