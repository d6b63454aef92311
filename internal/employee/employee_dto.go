package employee

type CreateEmployeeRequest struct {
	UserID        string  `json:"user_id" binding:"required,uuid"`
	DepartmentID  *string `json:"department_id" binding:"omitempty,uuid"`
	Designation   string  `json:"designation" binding:"required,min=2,max=255"`
	Position      *string `json:"position"`
	Phone         *string `json:"phone"`
	BankAccountNo *string `json:"bank_account_no"`
	IFSCCode      *string `json:"ifsc_code"`
}

type UpdateEmployeeRequest struct {
	DepartmentID  *string `json:"department_id" binding:"omitempty,uuid"`
	Designation   string  `json:"designation" binding:"required,min=2,max=255"`
	Position      *string `json:"position"`
	Phone         *string `json:"phone"`
	BankAccountNo *string `json:"bank_account_no"`
	IFSCCode      *string `json:"ifsc_code"`
	Status        string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Name          string  `json:"name,omitempty"`
	Email         string  `json:"email,omitempty"`
	DepartmentID  *string `json:"department_id,omitempty"`
	Department    string  `json:"department,omitempty"`
	Designation   string  `json:"designation"`
	Position      *string `json:"position,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	BankAccountNo *string `json:"bank_account_no,omitempty"`
	IFSCCode      *string `json:"ifsc_code,omitempty"`
	Status        string  `json:"status"`
}
