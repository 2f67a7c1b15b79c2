package assignment

import (
	"time"

	assignmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment/errors"

	"github.com/google/uuid"
)

type UserDepartment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_departments_user_department"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_departments_user_department"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ShiftStart   *string   `gorm:"type:time"`
	ShiftEnd     *string   `gorm:"type:time"`
	AssignedAt   time.Time `gorm:"autoCreateTime"`
}

func (UserDepartment) TableName() string {
	return "user_departments"
}

// CheckTenantConsistency enforces the cross-tenant invariant before a row
// is persisted: the assignment, the user and the department must all agree
// on the owning company. The coordinating transaction calls this explicitly
// so the invariant stays visible and testable outside the storage layer.
func (a *UserDepartment) CheckTenantConsistency(userCompanyID, departmentCompanyID uuid.UUID) error {
	if a.CompanyID != userCompanyID || a.CompanyID != departmentCompanyID || userCompanyID != departmentCompanyID {
		return assignmenterrors.ErrCrossTenantAssignment
	}
	return nil
}
