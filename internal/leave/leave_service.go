package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/settings"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Request(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	MyRequests(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	Pending(ctx context.Context) ([]LeaveResponse, error)
	Decide(ctx context.Context, leaveID, decision, decidedBy, reason string) (LeaveResponse, error)
	DecideByToken(ctx context.Context, token string) (DecisionResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	directory employee.Directory
	settings  settings.Service
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	directory employee.Directory,
	settingsService settings.Service,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outbox,
		directory: directory,
		settings:  settingsService,
		logger:    zap.L().Named("leave.service"),
		now:       time.Now,
	}
}

func (s *service) Request(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotLinked
	}

	from, err := time.ParseInLocation("2006-01-02", req.FromDate, time.Local)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	to, err := time.ParseInLocation("2006-01-02", req.ToDate, time.Local)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if from.After(to) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	days := inclusiveDayCount(from, to)

	entries, err := s.directory.ListEntries(ctx, employee.DirectoryFilter{EmployeeID: employeeID})
	if err != nil {
		return LeaveResponse{}, err
	}
	if len(entries) == 0 {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotLinked
	}
	entry := entries[0]

	approverEmails, err := s.settings.ApproverEmails(ctx)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlapping, err := qtx.FindOverlapping(ctx, employeeID, from, to)
	if err != nil {
		return LeaveResponse{}, err
	}
	if len(overlapping) > 0 {
		return LeaveResponse{}, leaveerrors.ErrOverlappingLeave
	}

	leave := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: empUUID,
		Type:       req.Type,
		FromDate:   from,
		ToDate:     to,
		Days:       days,
		Reason:     req.Reason,
		Status:     StatusPending,
	}
	if err := qtx.Create(ctx, leave); err != nil {
		return LeaveResponse{}, err
	}

	if err := s.enqueueRequested(ctx, tx, *leave, entry, approverEmails); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave requested",
		zap.String("leave_id", leave.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("days", days))
	return mapToResponse(*leave), nil
}

func (s *service) MyRequests(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrEmployeeNotLinked
	}

	reqs, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapAll(reqs), nil
}

func (s *service) Pending(ctx context.Context) ([]LeaveResponse, error) {
	reqs, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapAll(reqs), nil
}

// Decide settles a pending request from the portal. Deciding an
// already settled request is an error here, unlike the email link
// path, which reports it as a friendly no-op.
func (s *service) Decide(ctx context.Context, leaveID, decision, decidedBy, reason string) (LeaveResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	leave, alreadyProcessed, err := s.settle(ctx, leaveID, decision, decidedBy, reason)
	if err != nil {
		return LeaveResponse{}, err
	}
	if alreadyProcessed {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyProcessed
	}
	return mapToResponse(*leave), nil
}

// DecideByToken settles a request from an emailed one-click link. A
// link clicked twice reports the earlier outcome instead of erroring,
// since approvers often reopen the same email.
func (s *service) DecideByToken(ctx context.Context, token string) (DecisionResponse, error) {
	claims, err := parseDecisionToken(token)
	if err != nil {
		return DecisionResponse{}, err
	}

	leave, alreadyProcessed, err := s.settle(ctx, claims.LeaveID, claims.Decision, "email approver", "")
	if err != nil {
		return DecisionResponse{}, err
	}

	resp := DecisionResponse{
		LeaveID:          leave.ID.String(),
		Status:           leave.Status,
		AlreadyProcessed: alreadyProcessed,
	}
	if alreadyProcessed {
		resp.Message = "This leave request was already " + leave.Status + "."
	} else {
		resp.Message = "Leave request " + leave.Status + "."
	}
	return resp, nil
}

// settle performs the locked pending-only state transition shared by
// both decision paths. alreadyProcessed reports that the row was
// settled before this call, with no mutation performed.
func (s *service) settle(ctx context.Context, leaveID, decision, decidedBy, reason string) (*LeaveRequest, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	leave, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, leaveerrors.ErrLeaveNotFound
		}
		return nil, false, err
	}

	if leave.Status != StatusPending {
		return leave, true, nil
	}

	now := s.now()
	leave.Status = decision
	leave.DecidedBy = &decidedBy
	leave.DecidedAt = &now
	if decision == StatusRejected && reason != "" {
		leave.RejectionReason = &reason
	}

	if err := qtx.Save(ctx, leave); err != nil {
		return nil, false, err
	}
	if err := s.enqueueDecided(ctx, tx, *leave); err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	s.logger.Info("leave decided",
		zap.String("leave_id", leaveID),
		zap.String("decision", decision),
		zap.String("decided_by", decidedBy))
	return leave, false, nil
}

func (s *service) enqueueRequested(ctx context.Context, tx *sql.Tx, leave LeaveRequest, entry employee.DirectoryEntry, approverEmails []string) error {
	now := s.now()
	approveToken, err := signDecisionToken(leave.ID.String(), StatusApproved, now)
	if err != nil {
		return err
	}
	rejectToken, err := signDecisionToken(leave.ID.String(), StatusRejected, now)
	if err != nil {
		return err
	}

	event := events.LeaveRequestedEvent{
		EventType:      "leave.requested",
		LeaveID:        leave.ID.String(),
		EmployeeID:     leave.EmployeeID.String(),
		EmployeeName:   entry.DisplayName(),
		LeaveType:      leave.Type,
		FromDate:       leave.FromDate,
		ToDate:         leave.ToDate,
		Days:           leave.Days,
		Reason:         leave.Reason,
		ApproverEmails: approverEmails,
		ApproveToken:   approveToken,
		RejectToken:    rejectToken,
		OccurredAt:     now,
	}
	if entry.User != nil {
		event.ApplicantEmail = entry.User.Email
	}

	return s.enqueue(ctx, tx, leave.ID.String(), event.EventType, events.LeaveRequestedTopic, event)
}

func (s *service) enqueueDecided(ctx context.Context, tx *sql.Tx, leave LeaveRequest) error {
	entries, err := s.directory.ListEntries(ctx, employee.DirectoryFilter{EmployeeID: leave.EmployeeID.String()})
	if err != nil {
		return err
	}

	event := events.LeaveDecidedEvent{
		EventType:  "leave.decided",
		LeaveID:    leave.ID.String(),
		LeaveType:  leave.Type,
		FromDate:   leave.FromDate,
		ToDate:     leave.ToDate,
		Days:       leave.Days,
		Decision:   leave.Status,
		OccurredAt: s.now(),
	}
	if leave.DecidedBy != nil {
		event.DecidedBy = *leave.DecidedBy
	}
	if leave.RejectionReason != nil {
		event.RejectionReason = *leave.RejectionReason
	}
	if len(entries) > 0 {
		event.EmployeeName = entries[0].DisplayName()
		if entries[0].User != nil {
			event.ApplicantEmail = entries[0].User.Email
		}
	}

	return s.enqueue(ctx, tx, leave.ID.String(), event.EventType, events.LeaveDecidedTopic, event)
}

// enqueue writes the event into the transactional outbox; the producer
// worker relays it to Kafka after commit.
func (s *service) enqueue(ctx context.Context, tx *sql.Tx, aggregateID, eventType, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       raw,
		Status:        kafka.OutboxStatusPending,
	})
}

// inclusiveDayCount counts calendar days from from to to, both
// endpoints included. Counting by date components keeps the total
// stable across DST transitions, where elapsed hours fall short of
// a multiple of 24.
func inclusiveDayCount(from, to time.Time) int {
	days := 1
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func mapAll(reqs []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, len(reqs))
	for i, req := range reqs {
		out[i] = mapToResponse(req)
	}
	return out
}
