package company

import (
	"context"
	"errors"

	companyerrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	UpdateProfile(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	return MapToResponse(comp), nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.Logo != "" {
		comp.Logo = req.Logo
	}
	if req.Banner != "" {
		comp.Banner = req.Banner
	}
	if req.Bio != "" {
		comp.Bio = req.Bio
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("update company profile failed", zap.String("company_id", id), zap.Error(err))
		return nil, MapRepositoryError(err)
	}

	return MapToResponse(comp), nil
}

func MapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Subdomain: c.Subdomain,
		Logo:      c.Logo,
		Banner:    c.Banner,
		Bio:       c.Bio,
		Status:    string(c.Status),
	}
}

// MapRepositoryError translates Postgres unique violations on the companies
// table into domain conflicts. Shared with the registration flow, which
// relies on the same constraints as its race backstop.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_companies_subdomain":
			return companyerrors.ErrSubdomainTaken
		case "uq_companies_name":
			return companyerrors.ErrCompanyNameTaken
		}
	}

	return err
}
