package attendance

import "time"

type CheckRequest struct {
	Location *LocationInput `json:"location"`
}

type EventResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Location  *Location `json:"location,omitempty"`
}

type RecordResponse struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id"`
	Date       string        `json:"date"`
	Sessions   []SessionView `json:"sessions"`
	TotalHours float64       `json:"total_hours"`
	Status     string        `json:"status"`
}

// ReportFilter carries the raw query inputs; the service validates and
// parses them so the handler stays a thin binding layer.
type ReportFilter struct {
	EmployeeID   string
	DepartmentID string
	Date         string
	StartDate    string
	EndDate      string
}

type ManualAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	ClockIn    string `json:"clock_in" binding:"required"`
	ClockOut   string `json:"clock_out" binding:"omitempty"`
}

func mapEventToResponse(ev BiometricEvent) EventResponse {
	resp := EventResponse{
		ID:        ev.ID.String(),
		UserID:    ev.UserID.String(),
		Action:    ev.Action,
		Timestamp: ev.Timestamp,
	}
	if ev.Location != nil {
		loc := ev.Location.Data()
		resp.Location = &loc
	}
	return resp
}

func mapRecordToResponse(rec AttendanceRecord) RecordResponse {
	sessions := RecordSessions(rec)
	views := make([]SessionView, 0, len(sessions))
	for i, s := range sessions {
		view := SessionView{
			Order:    i + 1,
			ClockIn:  isoPtr(s.ClockIn),
			ClockOut: isoPtr(s.ClockOut),
		}
		if d, ok := SessionDuration(s); ok {
			r := round2(d)
			view.DurationHours = &r
		}
		views = append(views, view)
	}
	return RecordResponse{
		ID:         rec.ID.String(),
		EmployeeID: rec.EmployeeID.String(),
		Date:       rec.Date.Format("2006-01-02"),
		Sessions:   views,
		TotalHours: rec.TotalHours,
		Status:     rec.Status,
	}
}
