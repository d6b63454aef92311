package settings

type UpdateSettingsRequest struct {
	CompanyName         string   `json:"company_name" binding:"required,min=2,max=255"`
	WorkingHoursPerDay  int      `json:"working_hours_per_day" binding:"required,min=1,max=24"`
	LeavePerYear        int      `json:"leave_per_year" binding:"required,min=0,max=365"`
	LeaveApprovalEmails []string `json:"leave_approval_emails" binding:"omitempty,dive,email"`
}

type SettingsResponse struct {
	CompanyName         string   `json:"company_name"`
	WorkingHoursPerDay  int      `json:"working_hours_per_day"`
	LeavePerYear        int      `json:"leave_per_year"`
	LeaveApprovalEmails []string `json:"leave_approval_emails"`
}

func mapToResponse(s Settings) SettingsResponse {
	emails := []string(s.LeaveApprovalEmails)
	if emails == nil {
		emails = []string{}
	}
	return SettingsResponse{
		CompanyName:         s.CompanyName,
		WorkingHoursPerDay:  s.WorkingHoursPerDay,
		LeavePerYear:        s.LeavePerYear,
		LeaveApprovalEmails: emails,
	}
}
