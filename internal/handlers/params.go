package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// idParam parses a positive int64 path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(apperrors.KindInvalidRequest, fmt.Sprintf("invalid %s %q", name, raw))
	}
	return id, nil
}

// asOfParam parses the optional asOf query parameter.
func asOfParam(c *gin.Context) (*time.Time, error) {
	asOf, err := dto.ParseOptionalDate(c.Query("asOf"))
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, err.Error())
	}
	return asOf, nil
}
