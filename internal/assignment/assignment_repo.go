package assignment

import (
	"context"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *UserDepartment) error
	Exists(ctx context.Context, userID, departmentID string) (bool, error)
	FindByUserAndDepartment(ctx context.Context, companyID, userID, departmentID string) (*UserDepartment, error)
	FindAllByUser(ctx context.Context, companyID, userID string) ([]UserDepartment, error)
	FindAllByDepartment(ctx context.Context, companyID, departmentID string) ([]UserDepartment, error)
	Update(ctx context.Context, a *UserDepartment) error
	Delete(ctx context.Context, companyID, userID, departmentID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, a *UserDepartment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Exists(ctx context.Context, userID, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserDepartment{}).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByUserAndDepartment(ctx context.Context, companyID, userID, departmentID string) (*UserDepartment, error) {
	var a UserDepartment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&a, "user_id = ? AND department_id = ?", userID, departmentID).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAllByUser(ctx context.Context, companyID, userID string) ([]UserDepartment, error) {
	var out []UserDepartment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("user_id = ?", userID).
		Find(&out).Error
	return out, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, companyID, departmentID string) ([]UserDepartment, error) {
	var out []UserDepartment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", departmentID).
		Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, a *UserDepartment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, companyID, userID, departmentID string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&UserDepartment{}, "user_id = ? AND department_id = ?", userID, departmentID).Error
}
