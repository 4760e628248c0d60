package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	rawID string,
) (*models.Appointment, error) {

	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperr.ErrInternal("load_failed", err)
	}
	if ap == nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if err := domain.CanAccess(actor, ap); err != nil {
		return nil, err
	}
	return ap, nil
}
