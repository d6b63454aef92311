package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-hrms/internal/department"
	"go-hrms/internal/user"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	DepartmentID  *uuid.UUID `gorm:"type:uuid;index"`
	Designation   string     `gorm:"size:255;not null"`
	Position      *string    `gorm:"size:255"`
	Phone         *string    `gorm:"size:30"`
	BankAccountNo *string    `gorm:"size:50"`
	IFSCCode      *string    `gorm:"column:ifsc_code;size:20"`
	Status        string     `gorm:"size:20;not null;default:'active'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	User       *user.User             `gorm:"foreignKey:UserID;references:ID"`
	Department *department.Department `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}
