package employee

import "context"

// DirectoryEntry is the joined employee/user/department projection the
// attendance report embeds in every summary row.
type DirectoryEntry struct {
	ID          string          `json:"_id"`
	Designation string          `json:"designation,omitempty"`
	Department  *DepartmentInfo `json:"department"`
	User        *UserInfo       `json:"user"`
}

type DepartmentInfo struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type UserInfo struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DirectoryFilter struct {
	EmployeeID   string // optional, narrows to one employee
	DepartmentID string // optional, narrows to one department
}

// Directory is the narrow lookup surface other modules depend on
// instead of the full employee repository.
type Directory interface {
	ListEntries(ctx context.Context, filter DirectoryFilter) ([]DirectoryEntry, error)
	FindEntryByUserID(ctx context.Context, userID string) (*DirectoryEntry, error)
	FindIDByUserID(ctx context.Context, userID string) (string, error)
}

// DisplayName is what report sorting and emails use for an entry; it
// falls back to the email when the user has no name.
func (e DirectoryEntry) DisplayName() string {
	if e.User == nil {
		return ""
	}
	if e.User.Name != "" {
		return e.User.Name
	}
	return e.User.Email
}

func mapToDirectoryEntry(emp Employee) DirectoryEntry {
	entry := DirectoryEntry{
		ID:          emp.ID.String(),
		Designation: emp.Designation,
	}
	if emp.Department != nil {
		entry.Department = &DepartmentInfo{
			ID:   emp.Department.ID.String(),
			Name: emp.Department.Name,
		}
	}
	if emp.User != nil {
		entry.User = &UserInfo{
			ID:    emp.User.ID.String(),
			Name:  emp.User.Name,
			Email: emp.User.Email,
		}
	}
	return entry
}
