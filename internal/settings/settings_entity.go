package settings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Settings is a single-row table; the service creates the row with
// defaults on first read.
type Settings struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName         string                      `gorm:"size:255;not null" json:"company_name"`
	WorkingHoursPerDay  int                         `gorm:"not null" json:"working_hours_per_day"`
	LeavePerYear        int                         `gorm:"not null" json:"leave_per_year"`
	LeaveApprovalEmails datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"leave_approval_emails"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

const (
	defaultCompanyName        = "HRMS Company"
	defaultWorkingHoursPerDay = 8
	defaultLeavePerYear       = 20
)

func defaults() Settings {
	return Settings{
		ID:                 uuid.New(),
		CompanyName:        defaultCompanyName,
		WorkingHoursPerDay: defaultWorkingHoursPerDay,
		LeavePerYear:       defaultLeavePerYear,
	}
}
