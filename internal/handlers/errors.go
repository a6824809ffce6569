package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error category to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Storage failures are logged with their cause
// and reported with a generic reason.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	kind, reason := apperrors.KindOf(err)

	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
		if status == http.StatusInternalServerError {
			reason = msg
		}
	} else {
		logger.Warn(msg, slog.String("kind", string(kind)), slog.String("reason", reason))
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: dto.ErrorBody{Kind: kind, Reason: reason}})
}

// respondBindError reports a malformed request body or query string.
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperrors.NewValidationError(apperrors.KindInvalidRequest, "Invalid request format: "+err.Error()), "Failed to bind request")
}
