package assignment

import (
	"net/http"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/apperror"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("assignment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.handler")
	}
	return &Handler{svc: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperror.AppError); ok {
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Internal server error", nil)
}

func (h *Handler) Assign(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.Assign(c.Request.Context(), companyID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Remove(c *gin.Context) {
	companyID := c.GetString("company_id")
	userID := c.Param("userId")
	departmentID := c.Param("departmentId")

	if err := h.svc.Remove(c.Request.Context(), companyID, userID, departmentID); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Assignment removed"})
}

func (h *Handler) GetUserDepartments(c *gin.Context) {
	companyID := c.GetString("company_id")
	userID := c.Param("userId")

	resp, err := h.svc.GetUserDepartments(c.Request.Context(), companyID, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetDepartmentUsers(c *gin.Context) {
	companyID := c.GetString("company_id")
	departmentID := c.Param("departmentId")

	resp, err := h.svc.GetDepartmentUsers(c.Request.Context(), companyID, departmentID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) UpdateShift(c *gin.Context) {
	companyID := c.GetString("company_id")
	userID := c.Param("userId")
	departmentID := c.Param("departmentId")

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.UpdateShift(c.Request.Context(), companyID, userID, departmentID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
