package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"
)

type stubResolver struct {
	identity middleware.Identity
	err      error
}

func (s *stubResolver) ResolveIdentity(_ context.Context, _ string) (middleware.Identity, error) {
	return s.identity, s.err
}

func signToken(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func setupProtectedRouter(resolver middleware.IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(resolver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetString("user_id"),
			"company_id": c.GetString("company_id"),
			"role":       c.GetString("role"),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	activeIdentity := middleware.Identity{
		UserID:    "user-1",
		CompanyID: "company-1",
		Email:     "jane@acme.test",
		Role:      "ADMIN",
		Active:    true,
	}

	t.Run("valid bearer token passes store identity downstream", func(t *testing.T) {
		router := setupProtectedRouter(&stubResolver{identity: activeIdentity})

		token := signToken(t, "test-secret", "user-1", time.Now().Add(time.Minute))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"company_id":"company-1"`)
		assert.Contains(t, w.Body.String(), `"role":"ADMIN"`)
	})

	t.Run("token accepted from cookie", func(t *testing.T) {
		router := setupProtectedRouter(&stubResolver{identity: activeIdentity})

		token := signToken(t, "test-secret", "user-1", time.Now().Add(time.Minute))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		router := setupProtectedRouter(&stubResolver{identity: activeIdentity})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		router := setupProtectedRouter(&stubResolver{identity: activeIdentity})

		token := signToken(t, "test-secret", "user-1", time.Now().Add(-time.Minute))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		router := setupProtectedRouter(&stubResolver{identity: activeIdentity})

		token := signToken(t, "other-secret", "user-1", time.Now().Add(time.Minute))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("retired account rejected despite valid token", func(t *testing.T) {
		retired := activeIdentity
		retired.Active = false
		router := setupProtectedRouter(&stubResolver{identity: retired})

		token := signToken(t, "test-secret", "user-1", time.Now().Add(time.Minute))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown subject rejected", func(t *testing.T) {
		router := setupProtectedRouter(&stubResolver{err: errors.New("record not found")})

		token := signToken(t, "test-secret", "ghost", time.Now().Add(time.Minute))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	newRouter := func(role string, allowed ...string) *gin.Engine {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/admin",
			func(c *gin.Context) { c.Set("role", role) },
			middleware.RoleMiddleware(allowed...),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)
		return router
	}

	t.Run("allowed role passes", func(t *testing.T) {
		router := newRouter("OWNER", "OWNER", "ADMIN")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other role forbidden", func(t *testing.T) {
		router := newRouter("EMPLOYEE", "OWNER", "ADMIN")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
