package validators

import (
	"strings"
	"time"
	"unicode"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/timezone"
)

const (
	minVehicleYear = 1900
	maxTextLength  = 1000
)

// Date parses a YYYY-MM-DD query or body value.
func Date(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, httperr.ErrValidation("missing_date", field)
	}
	d, err := timezone.ParseDate(value)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date", field)
	}
	return d, nil
}

// NotInPast rejects dates before today's UTC day.
func NotInPast(field string, date, now time.Time) error {
	if date.Before(timezone.Today(now)) {
		return httperr.ErrValidation("date_in_past", field)
	}
	return nil
}

// Slot rejects labels that are not in the catalog.
func Slot(catalog *appointment.SlotCatalog, field, label string) error {
	if !catalog.Contains(label) {
		return httperr.ErrValidation("invalid_time_slot", field)
	}
	return nil
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return httperr.ErrValidation("missing_field", field)
	}
	return nil
}

func Email(field, value string) error {
	if !IsEmail(value) {
		return httperr.ErrValidation("invalid_email", field)
	}
	return nil
}

// Phone accepts digits with an optional leading + and common separators.
func Phone(field, value string) error {
	value = strings.TrimSpace(value)
	digits := 0
	for i, r := range value {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return httperr.ErrValidation("invalid_phone", field)
		}
	}
	if digits < 7 || digits > 15 {
		return httperr.ErrValidation("invalid_phone", field)
	}
	return nil
}

func VehicleYear(field string, year int, now time.Time) error {
	if year < minVehicleYear || year > now.Year()+1 {
		return httperr.ErrValidation("invalid_vehicle_year", field)
	}
	return nil
}

func MaxLength(field, value string, max int) error {
	if max <= 0 {
		max = maxTextLength
	}
	if len([]rune(value)) > max {
		return httperr.ErrValidation("too_long", field)
	}
	return nil
}
