package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company"
	companyerrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/events"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/messaging/kafka"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/contextutil"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	// dummyHash keeps the login path constant-cost for unknown emails.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (accessToken, refreshToken string, resp AuthResponse, err error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error
}

type service struct {
	db          *gorm.DB
	repo        Repository
	companyRepo company.Repository
	outboxRepo  kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		companyRepo: companyRepo,
		outboxRepo:  outboxRepo,
		logger:      l,
	}
}

// Register creates a tenant and its owner account in one transaction. The
// company starts PENDING; activation is an operator decision, but the owner
// can already sign in and set the workspace up.
func (s *service) Register(ctx context.Context, req RegisterRequest) (string, string, AuthResponse, error) {
	subdomain := strings.ToLower(req.Subdomain)

	// Friendly pre-checks; the unique indexes stay the backstop for
	// concurrent registrations.
	if _, err := s.companyRepo.FindBySubdomain(ctx, subdomain); err == nil {
		return "", "", AuthResponse{}, companyerrors.ErrSubdomainTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", AuthResponse{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return "", "", AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	comp := &company.Company{
		ID:        uuid.New(),
		Name:      req.CompanyName,
		Subdomain: subdomain,
		Status:    company.StatusPending,
	}

	owner := &user.User{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		Name:      req.CompanyName + "_Admin",
		Email:     req.Email,
		Password:  string(hashed),
		Role:      user.RoleOwner,
		Status:    user.StatusActive,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return "", "", AuthResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.companyRepo.WithTx(tx).Create(ctx, comp); err != nil {
		return "", "", AuthResponse{}, company.MapRepositoryError(err)
	}

	if err := s.repo.WithTx(tx).CreateUser(ctx, owner); err != nil {
		s.logger.Error("create owner persist failed", zap.String("subdomain", subdomain), zap.Error(err))
		return "", "", AuthResponse{}, mapOwnerPersistError(err)
	}

	if err := s.enqueueRegisteredEvent(ctx, tx, comp, owner); err != nil {
		return "", "", AuthResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("company registered",
		zap.String("company_id", comp.ID.String()),
		zap.String("subdomain", comp.Subdomain),
	)

	return s.issueTokens(ctx, owner, comp.Subdomain)
}

// enqueueRegisteredEvent stages the lifecycle event in the outbox inside the
// registration transaction, so it is published exactly when the tenant
// exists.
func (s *service) enqueueRegisteredEvent(ctx context.Context, tx *gorm.DB, comp *company.Company, owner *user.User) error {
	payload, err := json.Marshal(events.CompanyRegisteredEvent{
		EventType:  "company.registered",
		RequestID:  contextutil.GetRequestID(ctx),
		CompanyID:  comp.ID.String(),
		Subdomain:  comp.Subdomain,
		OwnerID:    owner.ID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "company",
		AggregateID:   comp.ID.String(),
		EventType:     "company.registered",
		Topic:         events.CompanyRegisteredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Burn a comparison anyway so a missing account costs the same
		// as a wrong password.
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if u.Status != user.StatusActive {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	comp, err := s.companyRepo.GetByID(ctx, u.CompanyID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return s.issueTokens(ctx, u, comp.Subdomain)
}

// RefreshToken rotates the pair. The presented token must match the one
// persisted at issue time, so a stolen-then-rotated token stops working the
// moment the legitimate client refreshes.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	comp, err := s.companyRepo.GetByID(ctx, u.CompanyID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return s.issueTokens(ctx, u, comp.Subdomain)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToAuthResponse(u, "")
	return &resp, nil
}

func (s *service) Logout(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}

	return s.repo.UpdateRefreshToken(ctx, id, nil)
}

func (s *service) issueTokens(ctx context.Context, u *user.User, subdomain string) (string, string, AuthResponse, error) {
	accessToken, err := generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	refreshToken, err := generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	if err := s.repo.UpdateRefreshToken(ctx, u.ID, &refreshToken); err != nil {
		return "", "", AuthResponse{}, err
	}

	return accessToken, refreshToken, mapToAuthResponse(u, subdomain), nil
}

func generateToken(u *user.User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":        u.ID.String(),
		"email":      u.Email,
		"company_id": u.CompanyID.String(),
		"role":       string(u.Role),
		"exp":        time.Now().Add(expiry).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(u *user.User, subdomain string) AuthResponse {
	return AuthResponse{
		ID:        u.ID.String(),
		CompanyID: u.CompanyID.String(),
		Subdomain: subdomain,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
	}
}

func mapOwnerPersistError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_users_email" {
			return autherrors.ErrEmailAlreadyRegistered
		}
	}
	return err
}
