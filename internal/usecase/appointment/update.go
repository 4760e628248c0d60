package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/audit"
	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/timezone"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/validators"
)

// StatusChange moves an appointment along its lifecycle.
type StatusChange struct {
	To string
}

// DetailUpdate sets workshop-side fields. Nil leaves a field untouched.
type DetailUpdate struct {
	Technician      *string
	Cost            *string
	Notes           *string
	AdditionalNotes *string
}

func (d DetailUpdate) isEmpty() bool {
	return d.Technician == nil && d.Cost == nil && d.Notes == nil && d.AdditionalNotes == nil
}

// UpdateRequest carries either change, or both.
type UpdateRequest struct {
	Status  *StatusChange
	Details *DetailUpdate
}

func (r UpdateRequest) IsEmpty() bool {
	return r.Status == nil && (r.Details == nil || r.Details.isEmpty())
}

type UpdateAppointment struct {
	repo  domain.Repository
	cache Cache
	audit *audit.Dispatcher
	now   clock
}

func NewUpdateAppointment(
	repo domain.Repository,
	cache Cache,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		cache: orNoop(cache),
		audit: audit,
		now:   utcNow,
	}
}

func (uc *UpdateAppointment) WithClock(now func() time.Time) *UpdateAppointment {
	uc.now = now
	return uc
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	rawID string,
	req UpdateRequest,
) (*models.Appointment, error) {

	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, httperr.ErrValidation("empty_update", "")
	}

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperr.ErrInternal("load_failed", err)
	}
	if ap == nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	// --------------------------------------------------
	// Gate
	// --------------------------------------------------
	if err := domain.CanAccess(actor, ap); err != nil {
		return nil, err
	}

	var to domain.Status
	if req.Status != nil {
		// Non-admins may only cancel, so any other value is refused before
		// it is parsed.
		if err := domain.AuthorizeStatusChange(actor, domain.NormalizeStatus(req.Status.To)); err != nil {
			return nil, err
		}
		to, err = domain.ParseStatus(req.Status.To)
		if err != nil {
			return nil, err
		}
	}
	if req.Details != nil && !req.Details.isEmpty() {
		if err := domain.AuthorizeDetailUpdate(actor); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Patch
	// --------------------------------------------------
	var patch domain.Patch
	if req.Status != nil {
		patch, err = domain.StatusPatch(ap, to, uc.now())
		if err != nil {
			return nil, err
		}
	}
	if req.Details != nil {
		if err := applyDetails(&patch, *req.Details); err != nil {
			return nil, err
		}
	}

	updated, err := uc.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return nil, err
		}
		return nil, httperr.ErrInternal("update_failed", err)
	}
	if updated == nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if patch.Status != nil {
		uc.cache.Invalidate(ctx, timezone.FormatDate(ap.AppointmentDate))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   auditAction(patch),
		Entity:   "appointment",
		EntityID: updated.ID.String(),
		Metadata: map[string]any{
			"from": ap.Status,
			"to":   updated.Status,
		},
	})

	return updated, nil
}

func applyDetails(p *domain.Patch, d DetailUpdate) error {
	if d.Technician != nil {
		v := strings.TrimSpace(*d.Technician)
		if err := validators.MaxLength("technician", v, 100); err != nil {
			return err
		}
		p.Technician = &v
	}
	if d.Cost != nil {
		v := strings.TrimSpace(*d.Cost)
		if err := validators.MaxLength("cost", v, 50); err != nil {
			return err
		}
		p.Cost = &v
	}
	if d.Notes != nil {
		if err := validators.MaxLength("notes", *d.Notes, 0); err != nil {
			return err
		}
		p.Notes = d.Notes
	}
	if d.AdditionalNotes != nil {
		if err := validators.MaxLength("additional_notes", *d.AdditionalNotes, 0); err != nil {
			return err
		}
		p.AdditionalNotes = d.AdditionalNotes
	}
	return nil
}

func auditAction(p domain.Patch) string {
	if p.Status == nil {
		return "appointment_updated"
	}
	if *p.Status == domain.StatusCancelled {
		return "appointment_cancelled"
	}
	return "appointment_status_changed"
}
