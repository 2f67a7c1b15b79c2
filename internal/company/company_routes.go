package company

import (
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, resolver middleware.IdentityResolver) {
	companies := rg.Group("/companies")
	companies.Use(middleware.AuthMiddleware(resolver))
	{
		companies.GET("/me", h.GetMe)
		companies.PATCH("/me", middleware.RoleMiddleware("OWNER", "ADMIN"), h.UpdateMe)
	}
}
