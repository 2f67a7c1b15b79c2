package assignment

import (
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, resolver middleware.IdentityResolver) {
	assignments := rg.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware(resolver))
	{
		assignments.GET("/users/:userId", h.GetUserDepartments)
		assignments.GET("/departments/:departmentId", h.GetDepartmentUsers)

		manage := middleware.RoleMiddleware("OWNER", "ADMIN")
		assignments.POST("", manage, h.Assign)
		assignments.PATCH("/users/:userId/departments/:departmentId", manage, h.UpdateShift)
		assignments.DELETE("/users/:userId/departments/:departmentId", manage, h.Remove)
	}
}
