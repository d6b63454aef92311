package settings

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// ApproverEmails feeds the leave workflow; empty means no approval
	// emails go out and requests wait for an in-portal decision.
	ApproverEmails(ctx context.Context) ([]string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("settings.service"),
	}
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	current, err := s.getOrCreate(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapToResponse(*current), nil
}

func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettingsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.Find(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := defaults()
		current = &row
		if err := qtx.Create(ctx, current); err != nil {
			return SettingsResponse{}, err
		}
	} else if err != nil {
		return SettingsResponse{}, err
	}

	current.CompanyName = req.CompanyName
	current.WorkingHoursPerDay = req.WorkingHoursPerDay
	current.LeavePerYear = req.LeavePerYear
	current.LeaveApprovalEmails = datatypes.JSONSlice[string](req.LeaveApprovalEmails)

	if err := qtx.Save(ctx, current); err != nil {
		return SettingsResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SettingsResponse{}, err
	}

	s.logger.Info("settings updated",
		zap.Int("approver_emails", len(req.LeaveApprovalEmails)))
	return mapToResponse(*current), nil
}

func (s *service) ApproverEmails(ctx context.Context) ([]string, error) {
	current, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return []string(current.LeaveApprovalEmails), nil
}

func (s *service) getOrCreate(ctx context.Context) (*Settings, error) {
	current, err := s.repo.Find(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := defaults()
	if err := s.repo.Create(ctx, &row); err != nil {
		return nil, err
	}
	s.logger.Info("settings row created with defaults")
	return &row, nil
}
