package leave

type CreateLeaveRequest struct {
	Type     string `json:"type" binding:"required,oneof=casual sick earned unpaid"`
	FromDate string `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" binding:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" binding:"required,min=3,max=2000"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=2000"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Type            string  `json:"type"`
	FromDate        string  `json:"from_date"`
	ToDate          string  `json:"to_date"`
	Days            int     `json:"days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// DecisionResponse is what the emailed one-click link renders.
type DecisionResponse struct {
	LeaveID          string `json:"leave_id"`
	Status           string `json:"status"`
	Message          string `json:"message"`
	AlreadyProcessed bool   `json:"already_processed"`
}

func mapToResponse(req LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:              req.ID.String(),
		EmployeeID:      req.EmployeeID.String(),
		Type:            req.Type,
		FromDate:        req.FromDate.Format("2006-01-02"),
		ToDate:          req.ToDate.Format("2006-01-02"),
		Days:            req.Days,
		Reason:          req.Reason,
		Status:          req.Status,
		DecidedBy:       req.DecidedBy,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
