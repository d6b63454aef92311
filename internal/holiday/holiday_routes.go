package holiday

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", h.GetAll)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "write"), h.Create)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "write"), h.Update)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "write"), h.Delete)
	}
}
