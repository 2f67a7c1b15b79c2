package auth

import (
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, resolver middleware.IdentityResolver) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
		authGroup.GET("/me", middleware.AuthMiddleware(resolver), h.Me)
		authGroup.POST("/logout", middleware.AuthMiddleware(resolver), h.Logout)
	}
}
