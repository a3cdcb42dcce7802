package handler

import (
	"errors"
	"net/http"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides the envelope helpers shared by handlers
type BaseHandler struct{}

// Success sends a success envelope with the given status
func (h *BaseHandler) Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.NewSuccessResponse(data, message, status))
}

// Error sends an error envelope
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponse(message, status, code).WithRequestID(middleware.GetRequestID(c)))
}

// BadRequest sends a 400 error envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 error envelope
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// ValidationError sends a 400 envelope listing the failed fields
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(details).WithRequestID(middleware.GetRequestID(c)))
}

// HandleBindError reports a failed bind as a validation error, a body too
// large, or a malformed request.
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	if details := middleware.ValidationDetails(err); details != nil {
		h.ValidationError(c, details)
		return
	}
	h.BadRequest(c, "Malformed request: "+err.Error())
}

// HandleError maps domain errors to their status and hides everything else behind a 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Internal server error")
}
