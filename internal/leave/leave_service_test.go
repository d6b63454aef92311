package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrms/internal/employee"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/settings"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn          func(ctx context.Context, req *LeaveRequest) error
	saveFn            func(ctx context.Context, req *LeaveRequest) error
	findByIDFn        func(ctx context.Context, id string) (*LeaveRequest, error)
	findForUpdateFn   func(ctx context.Context, id string) (*LeaveRequest, error)
	findByEmployeeFn  func(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	findByStatusFn    func(ctx context.Context, status string) ([]LeaveRequest, error)
	findOverlappingFn func(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, req *LeaveRequest) error {
	return f.createFn(ctx, req)
}
func (f *fakeRepo) Save(ctx context.Context, req *LeaveRequest) error { return f.saveFn(ctx, req) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	return f.findForUpdateFn(ctx, id)
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return f.findByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	return f.findByStatusFn(ctx, status)
}
func (f *fakeRepo) FindOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error) {
	return f.findOverlappingFn(ctx, employeeID, from, to)
}
func (f *fakeRepo) CountApprovedOn(ctx context.Context, day time.Time) (int64, error) {
	return 0, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error      { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, _ string) error { return nil }

type fakeDirectory struct {
	listEntriesFn func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error)
}

func (f *fakeDirectory) ListEntries(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
	return f.listEntriesFn(ctx, filter)
}
func (f *fakeDirectory) FindEntryByUserID(ctx context.Context, userID string) (*employee.DirectoryEntry, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDirectory) FindIDByUserID(ctx context.Context, userID string) (string, error) {
	return "", nil
}

type fakeSettings struct {
	approverEmails []string
}

func (f *fakeSettings) Get(ctx context.Context) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}
func (f *fakeSettings) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}
func (f *fakeSettings) ApproverEmails(ctx context.Context) ([]string, error) {
	return f.approverEmails, nil
}

func singleEntryDirectory(empID uuid.UUID) *fakeDirectory {
	return &fakeDirectory{
		listEntriesFn: func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
			return []employee.DirectoryEntry{{
				ID:   empID.String(),
				User: &employee.UserInfo{ID: uuid.NewString(), Name: "Ana", Email: "ana@co.test"},
			}}, nil
		},
	}
}

func newTestService(t *testing.T, repo Repository, outbox kafka.OutboxRepository, dir employee.Directory, now time.Time) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, repo, outbox, dir, &fakeSettings{approverEmails: []string{"hr@co.test"}}).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func testNow(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-02T09:00:00Z")
	require.NoError(t, err)
	return ts
}

func TestService_Request_InclusiveDayCount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	empID := uuid.New()

	var created *LeaveRequest
	repo := &fakeRepo{
		findOverlappingFn: func(ctx context.Context, id string, from, to time.Time) ([]LeaveRequest, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, req *LeaveRequest) error { created = req; return nil },
	}
	outbox := &fakeOutbox{}
	svc, mock := newTestService(t, repo, outbox, singleEntryDirectory(empID), testNow(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Request(context.Background(), empID.String(), CreateLeaveRequest{
		Type:     TypeCasual,
		FromDate: "2026-03-10",
		ToDate:   "2026-03-12",
		Reason:   "family event",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 3, created.Days)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, 3, resp.Days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Request_OneDayLeaveIsOneDay(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	empID := uuid.New()

	var created *LeaveRequest
	repo := &fakeRepo{
		findOverlappingFn: func(ctx context.Context, id string, from, to time.Time) ([]LeaveRequest, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, req *LeaveRequest) error { created = req; return nil },
	}
	svc, mock := newTestService(t, repo, &fakeOutbox{}, singleEntryDirectory(empID), testNow(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Request(context.Background(), empID.String(), CreateLeaveRequest{
		Type:     TypeSick,
		FromDate: "2026-03-10",
		ToDate:   "2026-03-10",
		Reason:   "fever",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, created.Days)
}

func TestInclusiveDayCount_SpansDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// March 8 2026 loses an hour to spring-forward, so the elapsed
	// time from the 7th to the 9th is 47 hours, not 48.
	from := time.Date(2026, 3, 7, 0, 0, 0, 0, loc)
	to := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	assert.Equal(t, 3, inclusiveDayCount(from, to))
}

func TestService_Request_InvertedRangeRejected(t *testing.T) {
	empID := uuid.New()
	svc, _ := newTestService(t, &fakeRepo{}, &fakeOutbox{}, singleEntryDirectory(empID), testNow(t))

	_, err := svc.Request(context.Background(), empID.String(), CreateLeaveRequest{
		Type:     TypeCasual,
		FromDate: "2026-03-12",
		ToDate:   "2026-03-10",
		Reason:   "oops",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestService_Request_OverlapRejected(t *testing.T) {
	empID := uuid.New()

	repo := &fakeRepo{
		findOverlappingFn: func(ctx context.Context, id string, from, to time.Time) ([]LeaveRequest, error) {
			return []LeaveRequest{{ID: uuid.New(), Status: StatusApproved}}, nil
		},
	}
	svc, mock := newTestService(t, repo, &fakeOutbox{}, singleEntryDirectory(empID), testNow(t))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Request(context.Background(), empID.String(), CreateLeaveRequest{
		Type:     TypeCasual,
		FromDate: "2026-03-10",
		ToDate:   "2026-03-12",
		Reason:   "family event",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrOverlappingLeave)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Request_EnqueuesOutboxEventWithTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	empID := uuid.New()

	repo := &fakeRepo{
		findOverlappingFn: func(ctx context.Context, id string, from, to time.Time) ([]LeaveRequest, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, req *LeaveRequest) error { return nil },
	}
	outbox := &fakeOutbox{}
	svc, mock := newTestService(t, repo, outbox, singleEntryDirectory(empID), testNow(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Request(context.Background(), empID.String(), CreateLeaveRequest{
		Type:     TypeEarned,
		FromDate: "2026-03-10",
		ToDate:   "2026-03-12",
		Reason:   "vacation",
	})

	require.NoError(t, err)
	require.Len(t, outbox.events, 1)
	ev := outbox.events[0]
	assert.Equal(t, "leave.requested", ev.EventType)
	assert.Equal(t, "leave_request", ev.AggregateType)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.Contains(t, string(ev.Payload), "approve_token")
	assert.Contains(t, string(ev.Payload), "hr@co.test")
}

func TestService_Decide_ApprovesPendingRequest(t *testing.T) {
	leaveID := uuid.New()
	empID := uuid.New()

	pending := LeaveRequest{
		ID:         leaveID,
		EmployeeID: empID,
		Type:       TypeCasual,
		Status:     StatusPending,
		FromDate:   testNow(t),
		ToDate:     testNow(t),
		Days:       1,
	}
	var saved *LeaveRequest
	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
			req := pending
			return &req, nil
		},
		saveFn: func(ctx context.Context, req *LeaveRequest) error { saved = req; return nil },
	}
	outbox := &fakeOutbox{}
	svc, mock := newTestService(t, repo, outbox, singleEntryDirectory(empID), testNow(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Decide(context.Background(), leaveID.String(), StatusApproved, "manager-1", "")

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, StatusApproved, saved.Status)
	require.NotNil(t, saved.DecidedBy)
	assert.Equal(t, "manager-1", *saved.DecidedBy)
	assert.Equal(t, StatusApproved, resp.Status)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, "leave.decided", outbox.events[0].EventType)
}

func TestService_Decide_RejectKeepsReason(t *testing.T) {
	leaveID := uuid.New()
	empID := uuid.New()

	var saved *LeaveRequest
	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
			return &LeaveRequest{ID: leaveID, EmployeeID: empID, Status: StatusPending}, nil
		},
		saveFn: func(ctx context.Context, req *LeaveRequest) error { saved = req; return nil },
	}
	svc, mock := newTestService(t, repo, &fakeOutbox{}, singleEntryDirectory(empID), testNow(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Decide(context.Background(), leaveID.String(), StatusRejected, "manager-1", "headcount freeze")

	require.NoError(t, err)
	require.NotNil(t, saved.RejectionReason)
	assert.Equal(t, "headcount freeze", *saved.RejectionReason)
}

func TestService_Decide_AlreadyProcessedIsAnErrorWithoutMutation(t *testing.T) {
	leaveID := uuid.New()

	saveCalled := false
	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
			return &LeaveRequest{ID: leaveID, Status: StatusApproved}, nil
		},
		saveFn: func(ctx context.Context, req *LeaveRequest) error { saveCalled = true; return nil },
	}
	outbox := &fakeOutbox{}
	svc, mock := newTestService(t, repo, outbox, singleEntryDirectory(uuid.New()), testNow(t))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Decide(context.Background(), leaveID.String(), StatusRejected, "manager-2", "")

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveAlreadyProcessed)
	assert.False(t, saveCalled)
	assert.Empty(t, outbox.events)
}

func TestService_DecideByToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	leaveID := uuid.New()
	empID := uuid.New()

	token, err := signDecisionToken(leaveID.String(), StatusApproved, time.Now())
	require.NoError(t, err)

	var saved *LeaveRequest
	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
			assert.Equal(t, leaveID.String(), id)
			return &LeaveRequest{ID: leaveID, EmployeeID: empID, Status: StatusPending}, nil
		},
		saveFn: func(ctx context.Context, req *LeaveRequest) error { saved = req; return nil },
	}
	svc, mock := newTestService(t, repo, &fakeOutbox{}, singleEntryDirectory(empID), testNow(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.DecideByToken(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.False(t, resp.AlreadyProcessed)
	require.NotNil(t, saved.DecidedBy)
	assert.Equal(t, "email approver", *saved.DecidedBy)
}

func TestService_DecideByToken_SecondClickIsFriendlyNoOp(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	leaveID := uuid.New()

	token, err := signDecisionToken(leaveID.String(), StatusApproved, time.Now())
	require.NoError(t, err)

	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
			return &LeaveRequest{ID: leaveID, Status: StatusApproved}, nil
		},
	}
	svc, mock := newTestService(t, repo, &fakeOutbox{}, singleEntryDirectory(uuid.New()), testNow(t))

	mock.ExpectBegin()
	mock.ExpectRollback()

	resp, err := svc.DecideByToken(context.Background(), token)

	require.NoError(t, err)
	assert.True(t, resp.AlreadyProcessed)
	assert.Contains(t, resp.Message, "already approved")
}

func TestService_DecideByToken_TamperedTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := signDecisionToken(uuid.NewString(), StatusApproved, time.Now())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	svc, _ := newTestService(t, &fakeRepo{}, &fakeOutbox{}, singleEntryDirectory(uuid.New()), testNow(t))

	_, err = svc.DecideByToken(context.Background(), token)

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecisionToken)
}

func TestParseDecisionToken_RejectsWrongTypeOrDecision(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := signDecisionToken(uuid.NewString(), "promoted", time.Now())
	require.NoError(t, err)

	_, err = parseDecisionToken(token)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecisionToken)
}
