package holiday

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Type string `json:"type" binding:"omitempty,oneof=public optional company"`
}

type UpdateHolidayRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Type string `json:"type" binding:"omitempty,oneof=public optional company"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
	Type string `json:"type,omitempty"`
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
		Type: h.Type,
	}
}
