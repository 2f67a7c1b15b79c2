package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth/errors"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/contextutil"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the store-backed view of the token subject.
type Identity struct {
	UserID    string
	CompanyID string
	Email     string
	Role      string
	Active    bool
}

// IdentityResolver re-resolves a token subject against the user store.
// Claims alone are never trusted for authorization: a deleted or retired
// account must be rejected even while its token is still unexpired.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (Identity, error)
}

func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Subject not found in token", nil)
			c.Abort()
			return
		}

		identity, err := resolver.ResolveIdentity(c.Request.Context(), userID)
		if err != nil || !identity.Active {
			errObj := autherrors.ErrInvalidToken
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		// Tenant and role come from the store, not the claims, so a role
		// change takes effect on the next request rather than at token expiry.
		c.Set("user_id", identity.UserID)
		c.Set("company_id", identity.CompanyID)
		c.Set("email", identity.Email)
		c.Set("role", identity.Role)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, identity.UserID)
		ctx = contextutil.WithCompanyID(ctx, identity.CompanyID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
