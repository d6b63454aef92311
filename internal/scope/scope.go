package scope

import (
	"time"

	"gorm.io/gorm"
)

// ByEmployee narrows a query to one employee's rows.
func ByEmployee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// OnDay narrows a date column to the calendar day containing t,
// using the server's local [00:00:00.000, 23:59:59.999] window.
func OnDay(column string, t time.Time) func(db *gorm.DB) *gorm.DB {
	start := StartOfDay(t)
	end := EndOfDay(t)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" <= ?", start, end)
	}
}

// Between narrows a date column to the inclusive [from, to] day range.
func Between(column string, from, to time.Time) func(db *gorm.DB) *gorm.DB {
	start := StartOfDay(from)
	end := EndOfDay(to)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" <= ?", start, end)
	}
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
