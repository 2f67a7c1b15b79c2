package user

import (
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, resolver middleware.IdentityResolver) {
	// Unauthenticated: the token itself is the credential.
	rg.POST("/users/reset-password", h.ResetPassword)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(resolver))
	{
		users.POST("", middleware.RoleMiddleware(string(RoleOwner), string(RoleAdmin)), h.Create)
		users.GET("", h.GetAll)
		users.GET("/:id", h.GetByID)
	}
}
