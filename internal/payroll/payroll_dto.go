package payroll

type CreateSlipRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"required,datetime=2006-01"`

	Basic      int64 `json:"basic" binding:"required,min=0"`
	HRA        int64 `json:"hra" binding:"min=0"`
	Allowances int64 `json:"allowances" binding:"min=0"`
	Overtime   int64 `json:"overtime" binding:"min=0"`

	ProfessionalTax int64 `json:"professional_tax" binding:"min=0"`
	ProvidentFund   int64 `json:"provident_fund" binding:"min=0"`
	ESI             int64 `json:"esi" binding:"min=0"`
	TDS             int64 `json:"tds" binding:"min=0"`
}

type SlipResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name,omitempty"`
	Month      string `json:"month"`

	Basic      int64 `json:"basic"`
	HRA        int64 `json:"hra"`
	Allowances int64 `json:"allowances"`
	Overtime   int64 `json:"overtime"`

	ProfessionalTax int64 `json:"professional_tax"`
	ProvidentFund   int64 `json:"provident_fund"`
	ESI             int64 `json:"esi"`
	TDS             int64 `json:"tds"`

	Gross           int64 `json:"gross"`
	TotalDeductions int64 `json:"total_deductions"`
	Net             int64 `json:"net"`

	Status string `json:"status"`
}

func mapToResponse(slip SalarySlip) SlipResponse {
	resp := SlipResponse{
		ID:              slip.ID.String(),
		EmployeeID:      slip.EmployeeID.String(),
		Month:           slip.Month,
		Basic:           slip.Basic,
		HRA:             slip.HRA,
		Allowances:      slip.Allowances,
		Overtime:        slip.Overtime,
		ProfessionalTax: slip.ProfessionalTax,
		ProvidentFund:   slip.ProvidentFund,
		ESI:             slip.ESI,
		TDS:             slip.TDS,
		Gross:           slip.Gross,
		TotalDeductions: slip.TotalDeductions,
		Net:             slip.Net,
		Status:          slip.Status,
	}
	if slip.Employee != nil && slip.Employee.User != nil {
		resp.Name = slip.Employee.User.Name
	}
	return resp
}
