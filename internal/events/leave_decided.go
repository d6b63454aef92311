package events

import "time"

const LeaveDecidedTopic = "hr.leave.decided.v1"

// LeaveDecidedEvent notifies the applicant that their request was
// approved or rejected.
type LeaveDecidedEvent struct {
	EventType       string    `json:"event_type"`
	LeaveID         string    `json:"leave_id"`
	EmployeeName    string    `json:"employee_name"`
	ApplicantEmail  string    `json:"applicant_email"`
	LeaveType       string    `json:"leave_type"`
	FromDate        time.Time `json:"from_date"`
	ToDate          time.Time `json:"to_date"`
	Days            int       `json:"days"`
	Decision        string    `json:"decision"` // approved | rejected
	DecidedBy       string    `json:"decided_by"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
