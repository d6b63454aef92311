package events

import "time"

const LeaveRequestedTopic = "hr.leave.requested.v1"

// LeaveRequestedEvent asks the notification consumer to email the
// configured approvers with approve/reject links for a new request.
type LeaveRequestedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveID        string    `json:"leave_id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	ApplicantEmail string    `json:"applicant_email"`
	LeaveType      string    `json:"leave_type"`
	FromDate       time.Time `json:"from_date"`
	ToDate         time.Time `json:"to_date"`
	Days           int       `json:"days"`
	Reason         string    `json:"reason"`
	ApproverEmails []string  `json:"approver_emails"`
	// Signed single-purpose tokens; the consumer turns these into the
	// one-click decision links in the approval email.
	ApproveToken string    `json:"approve_token"`
	RejectToken  string    `json:"reject_token"`
	OccurredAt   time.Time `json:"occurred_at"`
}
