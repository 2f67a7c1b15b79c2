package assignment

import (
	"context"
	"errors"

	assignmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department"
	departmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDirectory is the slice of the user store this service needs; the
// user repository satisfies it.
type UserDirectory interface {
	ExistsInCompany(ctx context.Context, companyID, id string) (bool, error)
}

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, companyID string, req AssignRequest) (AssignmentResponse, error)
	Remove(ctx context.Context, companyID, userID, departmentID string) error
	GetUserDepartments(ctx context.Context, companyID, userID string) ([]AssignmentResponse, error)
	GetDepartmentUsers(ctx context.Context, companyID, departmentID string) ([]AssignmentResponse, error)
	UpdateShift(ctx context.Context, companyID, userID, departmentID string, req UpdateShiftRequest) (AssignmentResponse, error)
}

type service struct {
	db             *gorm.DB
	repo           Repository
	departmentRepo department.Repository
	users          UserDirectory
	logger         *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	departmentRepo department.Repository,
	users UserDirectory,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		departmentRepo: departmentRepo,
		users:          users,
		logger:         l,
	}
}

func (s *service) Assign(ctx context.Context, companyID string, req AssignRequest) (AssignmentResponse, error) {
	if err := ValidateShiftWindow(req.ShiftStart, req.ShiftEnd); err != nil {
		return AssignmentResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AssignmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := s.users.ExistsInCompany(ctx, companyID, req.UserID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !exists {
		return AssignmentResponse{}, assignmenterrors.ErrUserNotInCompany
	}

	dept, err := s.departmentRepo.WithTx(tx).FindByIDAndCompany(ctx, companyID, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return AssignmentResponse{}, err
	}

	a := &UserDepartment{
		ID:           uuid.New(),
		UserID:       uuid.MustParse(req.UserID),
		DepartmentID: dept.ID,
		CompanyID:    uuid.MustParse(companyID),
		ShiftStart:   req.ShiftStart,
		ShiftEnd:     req.ShiftEnd,
	}

	if err := a.CheckTenantConsistency(uuid.MustParse(companyID), dept.CompanyID); err != nil {
		return AssignmentResponse{}, err
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create assignment persist failed", zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AssignmentResponse{}, err
	}

	return MapToResponse(*a), nil
}

func (s *service) Remove(ctx context.Context, companyID, userID, departmentID string) error {
	if _, err := s.repo.FindByUserAndDepartment(ctx, companyID, userID, departmentID); err != nil {
		return mapRepositoryError(err)
	}

	return s.repo.Delete(ctx, companyID, userID, departmentID)
}

func (s *service) GetUserDepartments(ctx context.Context, companyID, userID string) ([]AssignmentResponse, error) {
	rows, err := s.repo.FindAllByUser(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetDepartmentUsers(ctx context.Context, companyID, departmentID string) ([]AssignmentResponse, error) {
	rows, err := s.repo.FindAllByDepartment(ctx, companyID, departmentID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) UpdateShift(
	ctx context.Context,
	companyID, userID, departmentID string,
	req UpdateShiftRequest,
) (AssignmentResponse, error) {

	if err := ValidateShiftWindow(req.ShiftStart, req.ShiftEnd); err != nil {
		return AssignmentResponse{}, err
	}

	a, err := s.repo.FindByUserAndDepartment(ctx, companyID, userID, departmentID)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	a.ShiftStart = req.ShiftStart
	a.ShiftEnd = req.ShiftEnd

	if err := s.repo.Update(ctx, a); err != nil {
		return AssignmentResponse{}, err
	}

	return MapToResponse(*a), nil
}

func MapToResponse(a UserDepartment) AssignmentResponse {
	return AssignmentResponse{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		DepartmentID: a.DepartmentID.String(),
		CompanyID:    a.CompanyID.String(),
		ShiftStart:   a.ShiftStart,
		ShiftEnd:     a.ShiftEnd,
		AssignedAt:   a.AssignedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapToListResponse(rows []UserDepartment) []AssignmentResponse {
	out := make([]AssignmentResponse, len(rows))
	for i, a := range rows {
		out[i] = MapToResponse(a)
	}
	return out
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return assignmenterrors.ErrAssignmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_user_departments_user_department" {
			return assignmenterrors.ErrAlreadyAssigned
		}
	}

	return err
}
