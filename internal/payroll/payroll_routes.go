package payroll

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/slips/my", h.My)
		payroll.GET("/slips/:id/pdf", h.DownloadPDF)

		admin := payroll.Group("")
		admin.Use(middleware.RBACAuthorize(rbacService, "payroll", "write"))
		{
			admin.POST("/slips", middleware.Idempotency(rdb), h.Create)
			admin.GET("/slips", h.GetByMonth)
			admin.GET("/slips/:id", h.GetByID)
			admin.GET("/slips/export", h.ExportMonth)
			admin.GET("/employees/:employeeId/slips", h.GetByEmployee)
			admin.PUT("/slips/:id/paid", h.MarkPaid)
			admin.DELETE("/slips/:id", h.Delete)
		}
	}
}
