package attendance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		// Device and portal taps are rate limited per user; a tap burst
		// from a stuck device should not flood the event log.
		taps := attendance.Group("")
		taps.Use(middleware.RateLimitByUser(rate.Limit(1), 5))
		{
			taps.POST("/check-in", h.CheckIn)
			taps.POST("/check-out", h.CheckOut)
			taps.POST("/clock-in", h.ClockIn)
			taps.POST("/clock-out", h.ClockOut)
		}

		attendance.GET("/status", h.Status)
		attendance.GET("/history", h.History)

		reports := attendance.Group("")
		reports.Use(middleware.RBACAuthorize(rbacService, "report", "read"))
		{
			reports.GET("", h.GetAll)
			reports.GET("/summary", h.Summary)
			reports.GET("/report", h.Report)
			reports.GET("/report/export", h.ExportReport)
			reports.GET("/logs", h.Logs)
		}

		attendance.POST("/manual",
			middleware.RBACAuthorize(rbacService, "attendance", "write"),
			h.CreateManual)
	}
}
