package department

type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	IsActive *bool  `json:"is_active"`
}

type UpdateDepartmentRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	IsActive *bool  `json:"is_active"`
}

type DepartmentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
