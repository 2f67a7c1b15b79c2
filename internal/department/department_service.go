package department

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	departmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const listCacheTTL = 30 * time.Minute

func listCacheKey(companyID string) string {
	return fmt.Sprintf("departments:all:%s", companyID)
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return DepartmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		Name:        req.Name,
		Description: req.Description,
		ProfileURI:  req.ProfileURI,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateListCache(ctx, companyID)

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error) {
	cacheKey := listCacheKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// singleflight collapses concurrent cache rebuilds for the same tenant
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		depts, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := make([]DepartmentResponse, len(depts))
		for i, d := range depts {
			resp[i] = mapToResponse(d)
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, listCacheTTL).Err(); err != nil {
					s.logger.Warn("cache department list failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return DepartmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = req.Name
	dept.Description = req.Description
	if req.ProfileURI != "" {
		dept.ProfileURI = req.ProfileURI
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateListCache(ctx, companyID)

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateListCache(ctx, companyID)

	return nil
}

func (s *service) invalidateListCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	key := listCacheKey(companyID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("invalidate department list cache failed", zap.String("key", key), zap.Error(err))
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		CompanyID:   dept.CompanyID.String(),
		Name:        dept.Name,
		Description: dept.Description,
		ProfileURI:  dept.ProfileURI,
		CreatedAt:   dept.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_departments_company_name" {
			return departmenterrors.ErrDepartmentNameTaken
		}
	}

	return err
}
