package middlewares

import (
	"DentalSimple/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Int("status", status).
		Str("path", c.Request.URL.Path).
		Msg(message)
	c.JSON(status, gin.H{"error": message})
}

// RespondError maps a service error onto its HTTP status. Persistence
// failures are logged with their cause and reported without it.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrValidationMissing), errors.Is(err, utils.ErrInvalidInput):
		HttpError(c, err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, utils.ErrNotFound):
		HttpError(c, err.Error(), http.StatusNotFound, err)
	case errors.Is(err, utils.ErrAlreadyRegistered):
		HttpError(c, err.Error(), http.StatusConflict, err)
	default:
		HttpError(c, "internal server error", http.StatusInternalServerError, err)
	}
}
