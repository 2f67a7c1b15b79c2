package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth"
	autherrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth/errors"
	authMock "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth/mock"
	companyerrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company/errors"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)
	router := setupAuthRouter()
	router.POST("/auth/register", handler.Register)

	reqData := auth.RegisterRequest{
		CompanyName: "Acme",
		Subdomain:   "acme",
		Email:       "owner@acme.test",
		Password:    "superSecret1",
	}

	t.Run("success sets cookies and returns tokens", func(t *testing.T) {
		body, _ := json.Marshal(reqData)

		mockService.EXPECT().
			Register(gomock.Any(), reqData).
			Return("access-token", "refresh-token", auth.AuthResponse{
				Email:     reqData.Email,
				Subdomain: reqData.Subdomain,
				Role:      "OWNER",
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 2)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "access-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, "refresh_token", cookies[1].Name)

		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]interface{})
		assert.Equal(t, "access-token", data["access_token"])
		assert.Equal(t, "OWNER", data["user"].(map[string]interface{})["role"])
	})

	t.Run("invalid subdomain rejected before the service runs", func(t *testing.T) {
		body := []byte(`{"company_name": "Acme", "subdomain": "not a hostname", "email": "owner@acme.test", "password": "superSecret1"}`)

		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("subdomain taken", func(t *testing.T) {
		body, _ := json.Marshal(reqData)

		mockService.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return("", "", auth.AuthResponse{}, companyerrors.ErrSubdomainTaken)

		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, false, res["ok"])
	})
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)
	router := setupAuthRouter()
	router.POST("/auth/login", handler.Login)

	t.Run("success", func(t *testing.T) {
		reqBody := auth.LoginRequest{Email: "owner@acme.test", Password: "superSecret1"}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return("access-token", "refresh-token", auth.AuthResponse{Email: reqBody.Email}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		user := res["data"].(map[string]interface{})["user"].(map[string]interface{})
		assert.Equal(t, reqBody.Email, user["email"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "owner@acme.test", Password: "wrongwrong"})

		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)
	router := setupAuthRouter()
	router.POST("/auth/refresh", handler.RefreshToken)

	t.Run("token taken from cookie when present", func(t *testing.T) {
		mockService.EXPECT().
			RefreshToken(gomock.Any(), "cookie-refresh").
			Return("new-access", "new-refresh", auth.AuthResponse{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token taken from body for API clients", func(t *testing.T) {
		mockService.EXPECT().
			RefreshToken(gomock.Any(), "body-refresh").
			Return("new-access", "new-refresh", auth.AuthResponse{}, nil)

		body, _ := json.Marshal(auth.RefreshRequest{RefreshToken: "body-refresh"})
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		mockService.EXPECT().
			RefreshToken(gomock.Any(), "stale").
			Return("", "", auth.AuthResponse{}, autherrors.ErrInvalidRefreshToken)

		body, _ := json.Marshal(auth.RefreshRequest{RefreshToken: "stale"})
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)
	router := setupAuthRouter()
	router.POST("/auth/logout", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.Logout(c)
	})

	mockService.EXPECT().Logout(gomock.Any(), "user-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		assert.Equal(t, -1, cookie.MaxAge)
		assert.Empty(t, cookie.Value)
	}
}
