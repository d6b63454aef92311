package leave

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeCasual = "casual"
	TypeSick   = "sick"
	TypeEarned = "earned"
	TypeUnpaid = "unpaid"
)

type LeaveRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Type            string     `gorm:"size:20;not null" json:"type"`
	FromDate        time.Time  `gorm:"not null" json:"from_date"`
	ToDate          time.Time  `gorm:"not null" json:"to_date"`
	Days            int        `gorm:"not null" json:"days"`
	Reason          string     `gorm:"type:text" json:"reason"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DecidedBy       *string    `gorm:"size:255" json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
