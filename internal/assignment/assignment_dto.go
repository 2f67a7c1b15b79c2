package assignment

type AssignRequest struct {
	UserID       string  `json:"user_id" binding:"required,uuid"`
	DepartmentID string  `json:"department_id" binding:"required,uuid"`
	ShiftStart   *string `json:"shift_start"`
	ShiftEnd     *string `json:"shift_end"`
}

type UpdateShiftRequest struct {
	ShiftStart *string `json:"shift_start"`
	ShiftEnd   *string `json:"shift_end"`
}

type AssignmentResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	DepartmentID string  `json:"department_id"`
	CompanyID    string  `json:"company_id"`
	ShiftStart   *string `json:"shift_start,omitempty"`
	ShiftEnd     *string `json:"shift_end,omitempty"`
	AssignedAt   string  `json:"assigned_at"`
}
