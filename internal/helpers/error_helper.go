package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/services"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

func RespondWithValidationError(c *gin.Context, message string, fieldErrors map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   http.StatusText(http.StatusUnprocessableEntity),
		Message: message,
		Errors:  fieldErrors,
	})
}

// RespondWithServiceError maps the service layer's typed failures onto
// the HTTP taxonomy. Anything unrecognized is an unexpected fault:
// logged with context, opaque 500 to the client.
func RespondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrRegistrationClosed),
		errors.Is(err, services.ErrOrganizerSelfSignup):
		RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		RespondWithError(c, http.StatusNotFound, "Resource not found.")
	default:
		userID, _ := c.Get("user_id")
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Interface("user_id", userID).
			Msg("unexpected error")
		RespondWithError(c, http.StatusInternalServerError, "Something went wrong.")
	}
}
