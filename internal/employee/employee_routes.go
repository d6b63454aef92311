package employee

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", h.GetAll)
		employees.GET("/:id", h.GetByID)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "write"), h.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "write"), h.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "write"), h.Delete)
	}
}
