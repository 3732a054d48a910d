package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps a business error kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindBusiness:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error. Anything that is not a BusinessError
// is logged and reported as a generic internal error.
func Respond(c *gin.Context, logger *slog.Logger, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusFor(be.Kind), be.Code, messages[be.Code])
		return
	}

	if logger != nil {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"err", err,
		)
	}
	Internal(c, CodeInternal, "Unexpected error.")
}

var messages = map[string]string{
	CodeInvalidInput:        "Invalid request data.",
	CodeInvalidDate:         "Invalid date or time.",
	CodeInvalidPlatform:     "Unknown booking platform.",
	CodeNoServices:          "Select at least one service.",
	CodeServiceInactive:     "One of the selected services is not available.",
	CodeDateInPast:          "The selected time is in the past.",
	CodeDateBeyondHorizon:   "The selected date is too far ahead.",
	CodeDateBlocked:         "The barber is not available on this date.",
	CodeNotWorkingDay:       "The barber does not work on this date.",
	CodeOutsideWorkingHours: "The selected time is outside working hours.",
	CodeInvalidState:        "The appointment cannot change to this status.",
	CodeSlotUnavailable:     "This time was just taken. Please pick another slot.",
	CodeBarbershopNotFound:  "Barbershop not found.",
	CodeBarberNotFound:      "Barber not found.",
	CodeServiceNotFound:     "Service not found.",
	CodeAppointmentNotFound: "Appointment not found.",
	CodeExceptionNotFound:   "Schedule exception not found.",
}
