package leave

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	// The decision link lands here straight from the approver's inbox;
	// it sits outside the authenticated group and the signed token is
	// the only credential.
	r.GET("/leaves/decision", middleware.RateLimitByIP(rate.Limit(2), 5), h.Decision)

	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "write"), h.Create)
		leaves.GET("/my", middleware.RBACAuthorize(rbacService, "leave", "read"), h.My)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "decide"), h.Pending)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "decide"), h.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "decide"), h.Reject)
	}
}
