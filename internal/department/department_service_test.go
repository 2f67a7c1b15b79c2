package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department"
	departmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department/errors"
	departmentMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type departmentDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	service   department.Service
	repo      *departmentMock.MockRepository
}

func setupDepartmentTest(t *testing.T) *departmentDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(gormDB, repo, rdb)

	return &departmentDeps{
		db:        db,
		sqlMock:   sqlMock,
		redisMock: redisMock,
		service:   svc,
		repo:      repo,
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	cacheKey := fmt.Sprintf("departments:all:%s", companyID)

	deptID := uuid.New()
	createdAt := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	rows := []department.Department{
		{ID: deptID, CompanyID: companyID, Name: "Engineering", CreatedAt: createdAt},
	}

	expectedResp := []department.DepartmentResponse{
		{
			ID:        deptID.String(),
			CompanyID: companyID.String(),
			Name:      "Engineering",
			CreatedAt: createdAt.Format("2006-01-02 15:04:05"),
		},
	}
	payload, err := json.Marshal(expectedResp)
	assert.NoError(t, err)

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupDepartmentTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		resp, err := deps.service.GetAll(ctx, companyID.String())

		assert.NoError(t, err)
		assert.Equal(t, expectedResp, resp)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and repopulates", func(t *testing.T) {
		deps := setupDepartmentTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().
			FindAllByCompany(ctx, companyID.String()).
			Return(rows, nil)
		deps.redisMock.ExpectSet(cacheKey, payload, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, companyID.String())

		assert.NoError(t, err)
		assert.Equal(t, expectedResp, resp)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	cacheKey := fmt.Sprintf("departments:all:%s", companyID)

	t.Run("success invalidates the list cache", func(t *testing.T) {
		deps := setupDepartmentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		deps.redisMock.ExpectDel(cacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID.String(), department.CreateDepartmentRequest{
			Name: "Engineering",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate name within the tenant", func(t *testing.T) {
		deps := setupDepartmentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_departments_company_name"})

		_, err := deps.service.Create(ctx, companyID.String(), department.CreateDepartmentRequest{
			Name: "Engineering",
		})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameTaken)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("not found maps to domain error", func(t *testing.T) {
		deps := setupDepartmentTest(t)
		defer deps.db.Close()

		id := uuid.New().String()
		deps.repo.EXPECT().
			FindByIDAndCompany(ctx, companyID.String(), id).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, companyID.String(), id)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
