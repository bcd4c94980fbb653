package core

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError sends the unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// respondServiceError classifies a service-layer error and maps it to a
// transport status. Unknown errors become an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", ErrUnauthorized.Error())
	case errors.Is(err, ErrPermissionDenied):
		respondError(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrAlreadyExists):
		respondError(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled service error")
		respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	}
}
