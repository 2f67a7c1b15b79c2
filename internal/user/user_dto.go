package user

import "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment"

// CreateUserRequest carries everything provisioning needs in one call: the
// account fields plus the initial department placement. The password here is
// temporary; the welcome email tells the user to replace it via reset.
type CreateUserRequest struct {
	Name         string  `json:"user_name" binding:"required,min=2,max=50"`
	Email        string  `json:"email" binding:"required,email,max=50"`
	Password     string  `json:"password" binding:"required,min=8,max=72"`
	ProfileURI   string  `json:"profile_uri" binding:"omitempty,max=255"`
	Bio          string  `json:"bio" binding:"omitempty,max=255"`
	Role         string  `json:"role" binding:"omitempty"`
	Status       string  `json:"status" binding:"omitempty"`
	DepartmentID string  `json:"department_id" binding:"required,uuid"`
	ShiftStart   *string `json:"shift_start"`
	ShiftEnd     *string `json:"shift_end"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

type UserResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	Name       string `json:"user_name"`
	Email      string `json:"email"`
	ProfileURI string `json:"profile_uri,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`

	DepartmentAssignment *assignment.AssignmentResponse `json:"department_assignment,omitempty"`
}
