package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse is the standard error envelope.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains the caller-visible error fields.
type HTTPErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// WriteError logs the full error server-side and renders the caller-safe
// mapping: validation -> 400, unauthorized -> 401, not-found -> 404 and
// everything else (provider, database, internal) -> a generic 500.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	kind := KindOf(err)

	switch kind {
	case KindValidation:
		log.Debug().Err(err).Msg("request validation failed")
		writeDetail(c, http.StatusBadRequest, err.Error(), "validation_error")
	case KindUnauthorized:
		log.Debug().Err(err).Msg("unauthorized request")
		writeDetail(c, http.StatusUnauthorized, "unauthorized", "unauthorized_error")
	case KindNotFound:
		log.Debug().Err(err).Msg("resource not found")
		writeDetail(c, http.StatusNotFound, "not found", "not_found_error")
	default:
		log.Error().Err(err).Str("kind", string(kind)).Msg("internal failure")
		writeDetail(c, http.StatusInternalServerError, "internal server error", "internal_error")
	}
}

// WriteValidationError writes a 400 Bad Request response.
func WriteValidationError(c *gin.Context, message string) {
	writeDetail(c, http.StatusBadRequest, message, "validation_error")
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(c *gin.Context, message string) {
	writeDetail(c, http.StatusUnauthorized, message, "unauthorized_error")
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(c *gin.Context, message string) {
	writeDetail(c, http.StatusNotFound, message, "not_found_error")
}

func writeDetail(c *gin.Context, status int, message, errType string) {
	c.AbortWithStatusJSON(status, HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message: message,
			Type:    errType,
		},
	})
}
