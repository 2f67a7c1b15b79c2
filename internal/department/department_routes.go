package department

import (
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, resolver middleware.IdentityResolver) {
	departments := rg.Group("/departments")
	departments.Use(middleware.AuthMiddleware(resolver))
	{
		departments.GET("", h.GetAll)
		departments.GET("/:id", h.GetByID)

		manage := middleware.RoleMiddleware("OWNER", "ADMIN")
		departments.POST("", manage, h.Create)
		departments.PATCH("/:id", manage, h.Update)
		departments.DELETE("/:id", manage, h.Delete)
	}
}
