package assignment_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment"
	assignmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment/errors"
	assignmentMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment/mock"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department"
	departmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department/errors"
	departmentMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department/mock"
	userMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type assignmentDeps struct {
	db             *sql.DB
	sqlMock        sqlmock.Sqlmock
	service        assignment.Service
	repo           *assignmentMock.MockRepository
	departmentRepo *departmentMock.MockRepository
	users          *userMock.MockRepository
}

func setupAssignmentTest(t *testing.T) *assignmentDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := assignmentMock.NewMockRepository(ctrl)
	departmentRepo := departmentMock.NewMockRepository(ctrl)
	users := userMock.NewMockRepository(ctrl)

	svc := assignment.NewService(gormDB, repo, departmentRepo, users)

	return &assignmentDeps{
		db:             db,
		sqlMock:        sqlMock,
		service:        svc,
		repo:           repo,
		departmentRepo: departmentRepo,
		users:          users,
	}
}

func TestAssignmentService_Assign(t *testing.T) {
	ctx := context.Background()

	companyID := uuid.New()
	userID := uuid.New()
	deptID := uuid.New()

	req := assignment.AssignRequest{
		UserID:       userID.String(),
		DepartmentID: deptID.String(),
	}

	t.Run("success", func(t *testing.T) {
		deps := setupAssignmentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().
			ExistsInCompany(ctx, companyID.String(), userID.String()).
			Return(true, nil)
		deps.departmentRepo.EXPECT().WithTx(gomock.Any()).Return(deps.departmentRepo)
		deps.departmentRepo.EXPECT().
			FindByIDAndCompany(ctx, companyID.String(), deptID.String()).
			Return(&department.Department{ID: deptID, CompanyID: companyID}, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Assign(ctx, companyID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, userID.String(), resp.UserID)
		assert.Equal(t, deptID.String(), resp.DepartmentID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("user from another tenant", func(t *testing.T) {
		deps := setupAssignmentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().
			ExistsInCompany(ctx, companyID.String(), userID.String()).
			Return(false, nil)

		_, err := deps.service.Assign(ctx, companyID.String(), req)

		assert.ErrorIs(t, err, assignmenterrors.ErrUserNotInCompany)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("department from another tenant reads as not found", func(t *testing.T) {
		deps := setupAssignmentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().
			ExistsInCompany(ctx, companyID.String(), userID.String()).
			Return(true, nil)
		deps.departmentRepo.EXPECT().WithTx(gomock.Any()).Return(deps.departmentRepo)
		deps.departmentRepo.EXPECT().
			FindByIDAndCompany(ctx, companyID.String(), deptID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Assign(ctx, companyID.String(), req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("duplicate assignment maps the unique violation", func(t *testing.T) {
		deps := setupAssignmentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().
			ExistsInCompany(ctx, companyID.String(), userID.String()).
			Return(true, nil)
		deps.departmentRepo.EXPECT().WithTx(gomock.Any()).Return(deps.departmentRepo)
		deps.departmentRepo.EXPECT().
			FindByIDAndCompany(ctx, companyID.String(), deptID.String()).
			Return(&department.Department{ID: deptID, CompanyID: companyID}, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_departments_user_department"})

		_, err := deps.service.Assign(ctx, companyID.String(), req)

		assert.ErrorIs(t, err, assignmenterrors.ErrAlreadyAssigned)
	})

	t.Run("incomplete shift window fails before any lookup", func(t *testing.T) {
		deps := setupAssignmentTest(t)
		defer deps.db.Close()

		start := "09:00:00"
		bad := req
		bad.ShiftStart = &start

		_, err := deps.service.Assign(ctx, companyID.String(), bad)

		assert.ErrorIs(t, err, assignmenterrors.ErrShiftWindowIncomplete)
	})
}

func TestAssignmentService_UpdateShift(t *testing.T) {
	ctx := context.Background()

	companyID := uuid.New()
	userID := uuid.New()
	deptID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupAssignmentTest(t)
		defer deps.db.Close()

		start := "08:00:00"
		end := "16:00:00"

		existing := &assignment.UserDepartment{
			ID:           uuid.New(),
			UserID:       userID,
			DepartmentID: deptID,
			CompanyID:    companyID,
		}

		deps.repo.EXPECT().
			FindByUserAndDepartment(ctx, companyID.String(), userID.String(), deptID.String()).
			Return(existing, nil)
		deps.repo.EXPECT().Update(ctx, existing).Return(nil)

		resp, err := deps.service.UpdateShift(ctx, companyID.String(), userID.String(), deptID.String(), assignment.UpdateShiftRequest{
			ShiftStart: &start,
			ShiftEnd:   &end,
		})

		assert.NoError(t, err)
		assert.Equal(t, &start, resp.ShiftStart)
		assert.Equal(t, &end, resp.ShiftEnd)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		deps := setupAssignmentTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByUserAndDepartment(ctx, companyID.String(), userID.String(), deptID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateShift(ctx, companyID.String(), userID.String(), deptID.String(), assignment.UpdateShiftRequest{})

		assert.ErrorIs(t, err, assignmenterrors.ErrAssignmentNotFound)
	})
}
