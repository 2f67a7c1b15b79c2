package user

import (
	"context"
	"errors"
	"time"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment"
	assignmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company"
	companyerrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department"
	departmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/events"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/resettoken"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/contextutil"
	usererrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateUserRequest) (*UserResponse, error)
	GetAll(ctx context.Context, companyID string) ([]UserResponse, error)
	GetByID(ctx context.Context, companyID, id string) (*UserResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type service struct {
	db             *gorm.DB
	repo           Repository
	companyRepo    company.Repository
	departmentRepo department.Repository
	assignmentRepo assignment.Repository
	tokenRepo      resettoken.Repository
	notifier       Notifier
	logger         *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	departmentRepo department.Repository,
	assignmentRepo assignment.Repository,
	tokenRepo resettoken.Repository,
	notifier Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		companyRepo:    companyRepo,
		departmentRepo: departmentRepo,
		assignmentRepo: assignmentRepo,
		tokenRepo:      tokenRepo,
		notifier:       notifier,
		logger:         l,
	}
}

// Create provisions a user inside the caller's tenant: account row,
// department assignment and hashed reset credential all in one transaction.
// The welcome notification goes out after commit and never affects the
// outcome.
func (s *service) Create(ctx context.Context, companyID string, req CreateUserRequest) (*UserResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	role := Role(req.Role)
	if role == "" {
		role = RoleEmployee
	}
	if !ValidRole(role) {
		return nil, usererrors.ErrInvalidRole
	}

	status := Status(req.Status)
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return nil, usererrors.ErrInvalidStatus
	}

	if err := assignment.ValidateShiftWindow(req.ShiftStart, req.ShiftEnd); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Pre-check for a friendly conflict; the unique index on email is the
	// race backstop, surfaced by mapRepositoryError below.
	if _, err := qtx.FindByEmail(ctx, req.Email); err == nil {
		return nil, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dept, err := s.departmentRepo.WithTx(tx).FindByIDAndCompany(ctx, companyID, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, departmenterrors.ErrDepartmentNotFound
		}
		return nil, err
	}

	comp, err := s.companyRepo.WithTx(tx).GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:         uuid.New(),
		CompanyID:  cid,
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		ProfileURI: req.ProfileURI,
		Bio:        req.Bio,
		Role:       role,
		Status:     status,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	assignmentTx := s.assignmentRepo.WithTx(tx)

	assigned, err := assignmentTx.Exists(ctx, u.ID.String(), dept.ID.String())
	if err != nil {
		return nil, err
	}
	if assigned {
		return nil, assignmenterrors.ErrAlreadyAssigned
	}

	a := &assignment.UserDepartment{
		ID:           uuid.New(),
		UserID:       u.ID,
		DepartmentID: dept.ID,
		CompanyID:    cid,
		ShiftStart:   req.ShiftStart,
		ShiftEnd:     req.ShiftEnd,
	}

	if err := a.CheckTenantConsistency(cid, dept.CompanyID); err != nil {
		return nil, err
	}

	if err := assignmentTx.Create(ctx, a); err != nil {
		return nil, err
	}

	rawToken, tokenHash, err := resettoken.Generate()
	if err != nil {
		return nil, err
	}

	prt := &resettoken.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		Token:     tokenHash,
		ExpiresAt: time.Now().Add(resettoken.TTL),
	}

	if err := s.tokenRepo.WithTx(tx).Create(ctx, prt); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.dispatchProvisionedEvent(ctx, u, comp, rawToken, req.Password)

	resp := MapToResponse(u)
	ar := assignment.MapToResponse(*a)
	resp.DepartmentAssignment = &ar

	return resp, nil
}

func (s *service) dispatchProvisionedEvent(ctx context.Context, u *User, comp *company.Company, rawToken, tempPassword string) {
	event := events.UserProvisionedEvent{
		EventType:    "user.provisioned",
		RequestID:    contextutil.GetRequestID(ctx),
		UserID:       u.ID.String(),
		CompanyID:    u.CompanyID.String(),
		CompanyName:  comp.Name,
		Email:        u.Email,
		UserName:     u.Name,
		TempPassword: tempPassword,
		ResetToken:   rawToken,
		OccurredAt:   time.Now().UTC(),
	}

	// Fire and forget: the request context may be gone by the time the
	// broker answers, so the publish runs on its own deadline.
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notifier.NotifyProvisioned(pctx, event); err != nil {
			s.logger.Error("provisioned notification failed",
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
		}
	}()
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]UserResponse, error) {
	users, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = *MapToResponse(&users[i])
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (*UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}

	return MapToResponse(u), nil
}

// ResetPassword redeems a welcome reset credential. The stored value is a
// bcrypt hash, so candidates are matched by comparison rather than lookup.
// Unknown, expired and already-used tokens all fail the same way.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	tokens, err := s.tokenRepo.ListUnused(ctx)
	if err != nil {
		return err
	}

	var match *resettoken.PasswordResetToken
	for i := range tokens {
		if resettoken.Matches(req.Token, tokens[i].Token) {
			match = &tokens[i]
			break
		}
	}

	if match == nil {
		return usererrors.ErrInvalidResetToken
	}
	if time.Now().After(match.ExpiresAt) {
		return usererrors.ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdatePassword(ctx, match.UserID, string(hashed)); err != nil {
		return err
	}

	if err := s.tokenRepo.WithTx(tx).MarkUsed(ctx, match.ID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("password reset redeemed", zap.String("user_id", match.UserID.String()))
	return nil
}

func MapToResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:         u.ID.String(),
		CompanyID:  u.CompanyID.String(),
		Name:       u.Name,
		Email:      u.Email,
		ProfileURI: u.ProfileURI,
		Bio:        u.Bio,
		Role:       string(u.Role),
		Status:     string(u.Status),
		CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_users_email" {
			return usererrors.ErrEmailTaken
		}
	}

	return err
}
