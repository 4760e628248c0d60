package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var messages = map[string]string{
	"invalid_request":       "Invalid request payload.",
	"invalid_date":          "Date must use the YYYY-MM-DD format.",
	"missing_date":          "Date is required.",
	"date_in_past":          "Date cannot be in the past.",
	"invalid_time_slot":     "Time is not a bookable slot.",
	"invalid_category":      "Unknown maintenance category.",
	"invalid_status":        "Unknown appointment status.",
	"invalid_transition":    "Status change is not allowed from the current status.",
	"appointment_closed":    "Appointment is already completed or cancelled.",
	"empty_update":          "Nothing to update.",
	"invalid_id":            "Invalid appointment id.",
	"invalid_range":         "Date range start must not be after its end.",
	"slot_unavailable":      "The selected slot is no longer available.",
	"status_changed":        "Appointment was changed by another request, reload and retry.",
	"appointment_not_found": "Appointment not found.",
	"forbidden":             "You are not allowed to perform this action.",
	"admin_only":            "Administrator access required.",
	"email_taken":           "Email is already registered.",
	"invalid_credentials":   "Invalid email or password.",
	"missing_field":         "A required field is missing.",
	"invalid_email":         "Email address is not valid.",
	"invalid_phone":         "Phone number is not valid.",
	"invalid_vehicle_year":  "Vehicle year is out of range.",
	"too_long":              "Field is too long.",
	"weak_password":         "Password must have at least 8 characters.",
	"rate_limited":          "Too many requests, try again later.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Request failed."
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Respond maps err to its transport status. Internal failures are logged and
// answered with a generic body.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be BusinessError
	if !errors.As(err, &be) || be.Kind == KindInternal {
		if log != nil {
			log.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		Internal(c, "internal_error", "Internal server error.")
		return
	}

	body := HTTPError{Code: be.Code, Message: messageFor(be.Code), Field: be.Field}
	if be.Kind == KindForbidden {
		body.Message = messageFor("forbidden")
	}
	c.JSON(StatusFor(be.Kind), body)
}
