package department

type CreateDepartmentRequest struct {
	Name        string `json:"department_name" binding:"required,max=150"`
	Description string `json:"description"`
	ProfileURI  string `json:"department_profile_uri" binding:"omitempty,max=255"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"department_name" binding:"required,max=150"`
	Description string `json:"description"`
	ProfileURI  string `json:"department_profile_uri" binding:"omitempty,max=255"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Name        string `json:"department_name"`
	Description string `json:"description,omitempty"`
	ProfileURI  string `json:"department_profile_uri,omitempty"`
	CreatedAt   string `json:"created_at"`
}
