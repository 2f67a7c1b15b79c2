package auth_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth"
	autherrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company"
	companyerrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/events"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/messaging/kafka"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/user"

	authMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth/mock"
	companyMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company/mock"
	kafkaMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type authDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     auth.Service
	repo        *authMock.MockRepository
	companyRepo *companyMock.MockRepository
	outbox      *kafkaMock.MockOutboxRepository
}

func setupAuthTest(t *testing.T) *authDeps {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := authMock.NewMockRepository(ctrl)
	companyRepo := companyMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := auth.NewService(gormDB, repo, companyRepo, outbox)

	return &authDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		companyRepo: companyRepo,
		outbox:      outbox,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	req := auth.RegisterRequest{
		CompanyName: "Acme",
		Subdomain:   "acme",
		Email:       "owner@acme.com",
		Password:    "password123",
	}

	t.Run("success - company, owner and outbox event in one transaction", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().
			FindBySubdomain(ctx, "acme").
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			GetByEmail(ctx, req.Email).
			Return(nil, gorm.ErrRecordNotFound)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var createdCompany *company.Company
		deps.companyRepo.EXPECT().WithTx(gomock.Any()).Return(deps.companyRepo)
		deps.companyRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, comp *company.Company) error {
				createdCompany = comp
				return nil
			})

		var createdOwner *user.User
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				createdOwner = u
				return nil
			})

		var staged kafka.OutboxEvent
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
				staged = event
				return nil
			})

		deps.repo.EXPECT().
			UpdateRefreshToken(ctx, gomock.Any(), gomock.Any()).
			Return(nil)

		accessToken, refreshToken, resp, err := deps.service.Register(ctx, req)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)

		assert.Equal(t, company.StatusPending, createdCompany.Status)
		assert.Equal(t, "acme", createdCompany.Subdomain)

		assert.Equal(t, "Acme_Admin", createdOwner.Name)
		assert.Equal(t, user.RoleOwner, createdOwner.Role)
		assert.Equal(t, createdCompany.ID, createdOwner.CompanyID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdOwner.Password), []byte(req.Password)))

		assert.Equal(t, events.CompanyRegisteredTopic, staged.Topic)
		assert.Equal(t, "company.registered", staged.EventType)
		assert.Equal(t, kafka.OutboxStatusPending, staged.Status)
		assert.Equal(t, createdCompany.ID.String(), staged.AggregateID)

		assert.Equal(t, createdOwner.ID.String(), resp.ID)
		assert.Equal(t, "OWNER", resp.Role)
		assert.Equal(t, "acme", resp.Subdomain)

		// Access token carries the identity claims the middleware expects.
		token, err := jwt.Parse(accessToken, func(_ *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, createdOwner.ID.String(), claims["sub"])
		assert.Equal(t, createdCompany.ID.String(), claims["company_id"])
		assert.Equal(t, "OWNER", claims["role"])

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("subdomain already taken", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().
			FindBySubdomain(ctx, "acme").
			Return(&company.Company{ID: uuid.New(), Subdomain: "acme"}, nil)

		_, _, _, err := deps.service.Register(ctx, req)

		assert.ErrorIs(t, err, companyerrors.ErrSubdomainTaken)
	})

	t.Run("email already registered", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().
			FindBySubdomain(ctx, "acme").
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			GetByEmail(ctx, req.Email).
			Return(&user.User{ID: uuid.New(), Email: req.Email}, nil)

		_, _, _, err := deps.service.Register(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("owner persist failure rolls back the company", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().
			FindBySubdomain(ctx, "acme").
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			GetByEmail(ctx, req.Email).
			Return(nil, gorm.ErrRecordNotFound)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.companyRepo.EXPECT().WithTx(gomock.Any()).Return(deps.companyRepo)
		deps.companyRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			CreateUser(ctx, gomock.Any()).
			Return(gorm.ErrInvalidData)

		_, _, _, err := deps.service.Register(ctx, req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	companyID := uuid.New()
	mockUser := &user.User{
		ID:        uuid.New(),
		CompanyID: companyID,
		Email:     "admin@acme.com",
		Name:      "Acme_Admin",
		Password:  string(pw),
		Role:      user.RoleOwner,
		Status:    user.StatusActive,
	}

	t.Run("success", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			GetByEmail(ctx, mockUser.Email).
			Return(mockUser, nil)
		deps.companyRepo.EXPECT().
			GetByID(ctx, companyID).
			Return(&company.Company{ID: companyID, Subdomain: "acme"}, nil)
		deps.repo.EXPECT().
			UpdateRefreshToken(ctx, mockUser.ID, gomock.Any()).
			Return(nil)

		accessToken, refreshToken, resp, err := deps.service.Login(ctx, mockUser.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, mockUser.Email, resp.Email)
		assert.Equal(t, companyID.String(), resp.CompanyID)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			GetByEmail(ctx, "nobody@acme.com").
			Return(nil, gorm.ErrRecordNotFound)

		_, _, _, errUnknown := deps.service.Login(ctx, "nobody@acme.com", password)

		deps.repo.EXPECT().
			GetByEmail(ctx, mockUser.Email).
			Return(mockUser, nil)

		_, _, _, errWrongPass := deps.service.Login(ctx, mockUser.Email, "wrongpass")

		assert.ErrorIs(t, errUnknown, autherrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPass, autherrors.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})

	t.Run("inactive account cannot sign in", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		retired := *mockUser
		retired.Status = user.StatusRetired

		deps.repo.EXPECT().
			GetByEmail(ctx, retired.Email).
			Return(&retired, nil)

		_, _, _, err := deps.service.Login(ctx, retired.Email, password)

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	companyID := uuid.New()
	mockUser := &user.User{
		ID:        uuid.New(),
		CompanyID: companyID,
		Email:     "admin@acme.com",
		Name:      "Acme_Admin",
		Password:  string(pw),
		Role:      user.RoleOwner,
		Status:    user.StatusActive,
	}

	t.Run("rotation issues a new persisted pair", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		// Sign in first so a refresh token is persisted.
		deps.repo.EXPECT().
			GetByEmail(ctx, mockUser.Email).
			Return(mockUser, nil)
		deps.companyRepo.EXPECT().
			GetByID(ctx, companyID).
			Return(&company.Company{ID: companyID, Subdomain: "acme"}, nil).
			Times(2)
		deps.repo.EXPECT().
			UpdateRefreshToken(ctx, mockUser.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, token *string) error {
				mockUser.RefreshToken = token
				return nil
			}).
			Times(2)

		_, refreshToken, _, err := deps.service.Login(ctx, mockUser.Email, password)
		assert.NoError(t, err)

		deps.repo.EXPECT().
			GetByID(ctx, mockUser.ID).
			Return(mockUser, nil)

		newAccess, newRefresh, resp, err := deps.service.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, mockUser.Email, resp.Email)
		assert.Equal(t, newRefresh, *mockUser.RefreshToken)
	})

	t.Run("token that does not match the persisted one is rejected", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		// Persist some other token, then present a freshly signed one.
		other := "some-other-token"
		u := *mockUser
		u.RefreshToken = &other

		deps.repo.EXPECT().
			GetByEmail(ctx, u.Email).
			Return(&u, nil)
		deps.companyRepo.EXPECT().
			GetByID(ctx, companyID).
			Return(&company.Company{ID: companyID, Subdomain: "acme"}, nil)
		deps.repo.EXPECT().
			UpdateRefreshToken(ctx, u.ID, gomock.Any()).
			Return(nil)

		_, refreshToken, _, err := deps.service.Login(ctx, u.Email, password)
		assert.NoError(t, err)

		deps.repo.EXPECT().
			GetByID(ctx, u.ID).
			Return(&u, nil)

		_, _, _, err = deps.service.RefreshToken(ctx, refreshToken)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		deps := setupAuthTest(t)
		defer deps.db.Close()

		_, _, _, err := deps.service.RefreshToken(ctx, "not.a.jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}
