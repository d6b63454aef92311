package attendance

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPresent    = "present"
	StatusAbsent     = "absent"
	StatusHalfDay    = "half-day"
	StatusInProgress = "in-progress"
	StatusManual     = "manual"
)

const (
	ActionCheckIn  = "checkin"
	ActionCheckOut = "checkout"
)

// Session is one clock-in/clock-out pair within a day. Either endpoint
// may be nil: a nil ClockOut marks an open session, a nil ClockIn marks
// an orphaned checkout that reconciliation preserved instead of dropping.
type Session struct {
	ClockIn  *time.Time `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
}

// AttendanceRecord is the per-employee, per-day attendance document.
// Current rows carry Sessions; rows written before the multi-session
// schema carry only the flat ClockIn/ClockOut pair and are adapted at
// read time (RecordSessions) without rewriting the stored row.
type AttendanceRecord struct {
	ID         uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Date       time.Time                    `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	Sessions   datatypes.JSONSlice[Session] `gorm:"type:jsonb" json:"sessions"`
	ClockIn    *time.Time                   `json:"clock_in,omitempty"`
	ClockOut   *time.Time                   `json:"clock_out,omitempty"`
	TotalHours float64                      `gorm:"not null;default:0" json:"total_hours"`
	Status     string                       `gorm:"size:20;not null" json:"status"`
	CreatedAt  time.Time                    `json:"created_at"`
	UpdatedAt  time.Time                    `json:"updated_at"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// BiometricEvent is one physical tap from the device-based check-in
// flow. Events are append-only; ordering within a user is by Timestamp.
type BiometricEvent struct {
	ID        uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID                     `gorm:"type:uuid;not null;index:idx_biometric_user_ts" json:"user_id"`
	Action    string                        `gorm:"size:10;not null" json:"action"`
	Timestamp time.Time                     `gorm:"not null;index:idx_biometric_user_ts" json:"timestamp"`
	Location  *datatypes.JSONType[Location] `gorm:"type:jsonb" json:"location,omitempty"`
	CreatedAt time.Time                     `json:"created_at"`
}

func (BiometricEvent) TableName() string {
	return "biometric_events"
}
