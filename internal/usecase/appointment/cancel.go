package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// CancelAppointment is the dedicated cancel route. It runs the same gate and
// transition checks as any other status change.
type CancelAppointment struct {
	update *UpdateAppointment
}

func NewCancelAppointment(update *UpdateAppointment) *CancelAppointment {
	return &CancelAppointment{update: update}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	rawID string,
) (*models.Appointment, error) {
	return uc.update.Execute(ctx, actor, rawID, UpdateRequest{
		Status: &StatusChange{To: string(domain.StatusCancelled)},
	})
}
