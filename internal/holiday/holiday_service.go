package holiday

import (
	"context"
	"database/sql"
	"errors"
	"time"

	holidayerrors "go-hrms/internal/holiday/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context, year int) ([]HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
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
		logger: zap.L().Named("holiday.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByDate(ctx, day); err == nil {
		return HolidayResponse{}, holidayerrors.ErrDuplicateHoliday
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:   uuid.New(),
		Name: req.Name,
		Date: day,
		Type: req.Type,
	}
	if err := qtx.Create(ctx, h); err != nil {
		return HolidayResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	s.logger.Info("holiday created", zap.String("name", h.Name), zap.String("date", req.Date))
	return mapToResponse(*h), nil
}

// GetAll lists holidays, narrowed to one year when year > 0.
func (s *service) GetAll(ctx context.Context, year int) ([]HolidayResponse, error) {
	var (
		holidays []Holiday
		err      error
	)
	if year > 0 {
		holidays, err = s.repo.FindByYear(ctx, year)
	} else {
		holidays, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		out[i] = mapToResponse(h)
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	h.Name = req.Name
	h.Date = day
	h.Type = req.Type

	if err := qtx.Update(ctx, h); err != nil {
		return HolidayResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}
