package company

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
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
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

// GetMe returns the caller's own company profile.
func (h *Handler) GetMe(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.svc.GetByID(c.Request.Context(), companyID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.UpdateProfile(c.Request.Context(), companyID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
