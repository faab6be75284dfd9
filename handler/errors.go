package handler

import (
	"errors"

	"main/apperrors"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the usecase error taxonomy onto the response envelope.
// Forbidden is reported as 403, never disguised as 404.
func respondError(c *gin.Context, err error) {
	var invalid *apperrors.InvalidInputError
	var limited *apperrors.RateLimitedError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		utils.NotFound(c, "Record not found")
	case errors.Is(err, apperrors.ErrForbidden):
		utils.Forbidden(c, "You do not own this record")
	case errors.As(err, &invalid):
		utils.BadRequest(c, invalid.Error())
	case errors.As(err, &limited):
		utils.TooManyRequests(c, "Rate limit exceeded", gin.H{
			"retry_after_ms": limited.RetryAfter.Milliseconds(),
		})
	default:
		utils.InternalError(c, err.Error())
	}
}
