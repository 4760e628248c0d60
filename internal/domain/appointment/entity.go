package appointment

import (
	"time"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// StatusPatch validates from → to for ap and returns the columns to write,
// stamping completion or cancellation time.
func StatusPatch(ap *models.Appointment, to Status, now time.Time) (Patch, error) {
	from := Status(ap.Status)
	if err := Transition(from, to); err != nil {
		return Patch{}, err
	}

	p := Patch{From: &from, Status: &to}
	switch to {
	case StatusCompleted:
		p.CompletedAt = &now
	case StatusCancelled:
		p.CancelledAt = &now
	}
	return p, nil
}
