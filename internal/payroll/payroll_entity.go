package payroll

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
)

const (
	StatusGenerated = "generated"
	StatusPaid      = "paid"
)

// SalarySlip is one employee's payslip for one month. Amounts are
// stored in the smallest currency unit to avoid floating point drift;
// Gross, TotalDeductions and Net are derived and cached on write.
type SalarySlip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_slip_employee_month" json:"employee_id"`
	Month      string    `gorm:"size:7;not null;uniqueIndex:idx_slip_employee_month" json:"month"`

	Basic      int64 `gorm:"type:bigint;not null;default:0" json:"basic"`
	HRA        int64 `gorm:"type:bigint;not null;default:0" json:"hra"`
	Allowances int64 `gorm:"type:bigint;not null;default:0" json:"allowances"`
	Overtime   int64 `gorm:"type:bigint;not null;default:0" json:"overtime"`

	ProfessionalTax int64 `gorm:"type:bigint;not null;default:0" json:"professional_tax"`
	ProvidentFund   int64 `gorm:"type:bigint;not null;default:0" json:"provident_fund"`
	ESI             int64 `gorm:"type:bigint;not null;default:0" json:"esi"`
	TDS             int64 `gorm:"type:bigint;not null;default:0" json:"tds"`

	Gross           int64 `gorm:"type:bigint;not null;default:0" json:"gross"`
	TotalDeductions int64 `gorm:"type:bigint;not null;default:0" json:"total_deductions"`
	Net             int64 `gorm:"type:bigint;not null;default:0" json:"net"`

	Status    string    `gorm:"size:20;not null;default:'generated'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (SalarySlip) TableName() string {
	return "salary_slips"
}

// recompute refreshes the cached totals from the component amounts.
func (s *SalarySlip) recompute() {
	s.Gross = s.Basic + s.HRA + s.Allowances + s.Overtime
	s.TotalDeductions = s.ProfessionalTax + s.ProvidentFund + s.ESI + s.TDS
	s.Net = s.Gross - s.TotalDeductions
}
