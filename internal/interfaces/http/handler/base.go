package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kirana/backend/internal/domain/shared"
	"github.com/kirana/backend/internal/interfaces/http/dto"
	"github.com/kirana/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared helpers for all HTTP handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// HandleError writes an error response. Domain errors map to their HTTP
// status; anything else is a 500 with the detail kept out of the body.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		c.JSON(dto.GetHTTPStatus(derr.Code), dto.ErrorResponse{
			Code:    derr.Code,
			Message: derr.Message,
		})
		return
	}

	h.logger.Error("unhandled error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString("request_id")))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}

// BadRequest writes a 400 with the given message
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    "INVALID_INPUT",
		Message: message,
	})
}

// TenantID returns the authenticated store ID or aborts with 401
func (h *BaseHandler) TenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.StoreID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "not authenticated",
		})
		return uuid.Nil, false
	}
	return id, true
}

// PathUUID parses a UUID path parameter or writes a 400
func (h *BaseHandler) PathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
