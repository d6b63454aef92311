package leave

import (
	"net/http"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		writeServiceError(c, leaveerrors.ErrEmployeeNotLinked)
		return
	}

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Request(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) My(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		writeServiceError(c, leaveerrors.ErrEmployeeNotLinked)
		return
	}

	resp, err := h.service.MyRequests(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	resp, err := h.service.Pending(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Decide(c.Request.Context(),
		c.Param("id"), StatusApproved, c.GetString("user_id_validated"), "")
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.Decide(c.Request.Context(),
		c.Param("id"), StatusRejected, c.GetString("user_id_validated"), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Decision handles the emailed one-click approve/reject link. It is
// unauthenticated; the signed token is the credential.
func (h *Handler) Decision(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		writeServiceError(c, leaveerrors.ErrInvalidDecisionToken)
		return
	}

	resp, err := h.service.DecideByToken(c.Request.Context(), token)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
