package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	apperror.Init()
}

type fakeService struct {
	requestFn       func(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	myRequestsFn    func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	pendingFn       func(ctx context.Context) ([]leave.LeaveResponse, error)
	decideFn        func(ctx context.Context, leaveID, decision, decidedBy, reason string) (leave.LeaveResponse, error)
	decideByTokenFn func(ctx context.Context, token string) (leave.DecisionResponse, error)
}

func (f *fakeService) Request(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.requestFn(ctx, employeeID, req)
}
func (f *fakeService) MyRequests(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.myRequestsFn(ctx, employeeID)
}
func (f *fakeService) Pending(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.pendingFn(ctx)
}
func (f *fakeService) Decide(ctx context.Context, leaveID, decision, decidedBy, reason string) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, leaveID, decision, decidedBy, reason)
}
func (f *fakeService) DecideByToken(ctx context.Context, token string) (leave.DecisionResponse, error) {
	return f.decideByTokenFn(ctx, token)
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		requestFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, leave.TypeCasual, req.Type)
			return leave.LeaveResponse{ID: uuid.NewString(), Days: 3, Status: leave.StatusPending}, nil
		},
	}
	h := leave.NewHandler(svc)

	body := `{"type":"casual","from_date":"2026-03-10","to_date":"2026-03-12","reason":"family event"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"pending"`)
}

func TestHandler_Create_InvalidTypeRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leave.NewHandler(&fakeService{})

	body := `{"type":"sabbatical","from_date":"2026-03-10","to_date":"2026-03-12","reason":"long trip"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Create_WithoutEmployeeLink(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Reject_OptionalBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	leaveID := uuid.New().String()
	deciderID := uuid.New().String()

	svc := &fakeService{
		decideFn: func(ctx context.Context, lid, decision, decidedBy, reason string) (leave.LeaveResponse, error) {
			assert.Equal(t, leaveID, lid)
			assert.Equal(t, leave.StatusRejected, decision)
			assert.Equal(t, deciderID, decidedBy)
			assert.Empty(t, reason)
			return leave.LeaveResponse{ID: lid, Status: leave.StatusRejected}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id_validated", deciderID)
	c.Params = gin.Params{{Key: "id", Value: leaveID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", nil)
	h.Reject(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Decision_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/decision", nil)
	h.Decision(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Decision_AlreadyProcessed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		decideByTokenFn: func(ctx context.Context, token string) (leave.DecisionResponse, error) {
			return leave.DecisionResponse{
				LeaveID:          uuid.NewString(),
				Status:           leave.StatusApproved,
				Message:          "This leave request was already approved.",
				AlreadyProcessed: true,
			}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/decision?token=abc", nil)
	h.Decision(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already approved")
}

func TestHandler_Approve_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		decideFn: func(ctx context.Context, lid, decision, decidedBy, reason string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveAlreadyProcessed
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/approve", nil)
	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
