package attendance

import (
	"net/http"
	"strconv"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
		logger:  zap.L().Named("attendance.handler"),
	}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// CheckIn appends a biometric check-in event for the logged-in user.
func (h *Handler) CheckIn(c *gin.Context) {
	h.recordEvent(c, ActionCheckIn)
}

// CheckOut appends a biometric check-out event for the logged-in user.
func (h *Handler) CheckOut(c *gin.Context) {
	h.recordEvent(c, ActionCheckOut)
}

func (h *Handler) recordEvent(c *gin.Context, action string) {
	var req CheckRequest
	// Body is optional; a bare tap carries no location payload.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	userID := c.GetString("user_id_validated")
	resp, err := h.service.RecordBiometricEvent(c.Request.Context(), userID, action, req.Location)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockIn(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		writeServiceError(c, attendanceerrors.ErrEmployeeNotLinked)
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		writeServiceError(c, attendanceerrors.ErrEmployeeNotLinked)
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Status returns today's live summary for the logged-in user.
func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.GetMyStatus(c.Request.Context(), c.GetString("user_id_validated"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	resp, err := h.service.GetDailySummary(c.Request.Context(),
		c.Query("employee_id"), c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Report(c *gin.Context) {
	resp, err := h.service.GetReport(c.Request.Context(), reportFilterFromQuery(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ExportReport streams the report as an Excel workbook.
func (h *Handler) ExportReport(c *gin.Context) {
	filter := reportFilterFromQuery(c)
	summaries, err := h.service.GetReport(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	workbook, err := BuildReportWorkbook(summaries)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+ReportFileName(filter)+`"`)
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("report export write failed", zap.Error(err))
	}
}

func (h *Handler) History(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		employeeID = c.GetString("employee_id")
	}
	if employeeID == "" {
		writeServiceError(c, attendanceerrors.ErrEmployeeNotLinked)
		return
	}

	resp, err := h.service.GetHistory(c.Request.Context(), employeeID,
		c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	resp, err := h.service.GetAll(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	events, total, err := h.service.GetBiometricLogs(c.Request.Context(), LogQuery{
		UserID:    c.Query("user_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, events, &meta)
}

func (h *Handler) CreateManual(c *gin.Context) {
	var req ManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateManual(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func reportFilterFromQuery(c *gin.Context) ReportFilter {
	return ReportFilter{
		EmployeeID:   c.Query("employee_id"),
		DepartmentID: c.Query("department_id"),
		Date:         c.Query("date"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
	}
}
