package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/settings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSlipRequest) (SlipResponse, error)
	GetByID(ctx context.Context, id string) (SlipResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]SlipResponse, error)
	GetByMonth(ctx context.Context, month string) ([]SlipResponse, error)
	MarkPaid(ctx context.Context, id string) (SlipResponse, error)
	DownloadPDF(ctx context.Context, id string) (string, []byte, error)
	ExportMonth(ctx context.Context, month string) (*excelize.File, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	settings settings.Service
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, settingsService settings.Service) Service {
	return &service{
		db:       db,
		repo:     repo,
		settings: settingsService,
		logger:   zap.L().Named("payroll.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateSlipRequest) (SlipResponse, error) {
	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidMonth
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByEmployeeAndMonth(ctx, req.EmployeeID, req.Month); err == nil {
		return SlipResponse{}, payrollerrors.ErrDuplicateSlip
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SlipResponse{}, err
	}

	slip := &SalarySlip{
		ID:              uuid.New(),
		EmployeeID:      empUUID,
		Month:           req.Month,
		Basic:           req.Basic,
		HRA:             req.HRA,
		Allowances:      req.Allowances,
		Overtime:        req.Overtime,
		ProfessionalTax: req.ProfessionalTax,
		ProvidentFund:   req.ProvidentFund,
		ESI:             req.ESI,
		TDS:             req.TDS,
		Status:          StatusGenerated,
	}
	slip.recompute()

	if err := qtx.Create(ctx, slip); err != nil {
		return SlipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SlipResponse{}, err
	}

	s.logger.Info("salary slip created",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.Int64("net", slip.Net))
	return mapToResponse(*slip), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SlipResponse, error) {
	slip, err := s.findByID(ctx, id)
	if err != nil {
		return SlipResponse{}, err
	}
	return mapToResponse(*slip), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]SlipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	slips, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]SlipResponse, len(slips))
	for i, slip := range slips {
		out[i] = mapToResponse(slip)
	}
	return out, nil
}

func (s *service) GetByMonth(ctx context.Context, month string) ([]SlipResponse, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, payrollerrors.ErrInvalidMonth
	}

	slips, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	out := make([]SlipResponse, len(slips))
	for i, slip := range slips {
		out[i] = mapToResponse(slip)
	}
	return out, nil
}

func (s *service) MarkPaid(ctx context.Context, id string) (SlipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidSlipID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlipResponse{}, payrollerrors.ErrSlipNotFound
		}
		return SlipResponse{}, err
	}

	slip.Status = StatusPaid
	if err := qtx.Save(ctx, slip); err != nil {
		return SlipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SlipResponse{}, err
	}
	return mapToResponse(*slip), nil
}

func (s *service) DownloadPDF(ctx context.Context, id string) (string, []byte, error) {
	slip, err := s.findByID(ctx, id)
	if err != nil {
		return "", nil, err
	}

	companyName := ""
	if cfg, err := s.settings.Get(ctx); err == nil {
		companyName = cfg.CompanyName
	}

	resp := mapToResponse(*slip)
	name := fmt.Sprintf("payslip_%s_%s.pdf", resp.EmployeeID, resp.Month)
	return name, buildPayslipPDF(companyName, resp), nil
}

var exportColumns = []string{
	"Employee", "Month", "Basic", "HRA", "Allowances", "Overtime",
	"Gross", "Prof. Tax", "PF", "ESI", "TDS", "Deductions", "Net", "Status",
}

// ExportMonth renders every slip of one month into an Excel workbook.
func (s *service) ExportMonth(ctx context.Context, month string) (*excelize.File, error) {
	slips, err := s.GetByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Payroll"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	for i, slip := range slips {
		values := []any{
			slip.Name, slip.Month, slip.Basic, slip.HRA, slip.Allowances,
			slip.Overtime, slip.Gross, slip.ProfessionalTax, slip.ProvidentFund,
			slip.ESI, slip.TDS, slip.TotalDeductions, slip.Net, slip.Status,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "N", 16); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidSlipID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrSlipNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) findByID(ctx context.Context, id string) (*SalarySlip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidSlipID
	}
	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrSlipNotFound
		}
		return nil, err
	}
	return slip, nil
}
