package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

type Sort int

const (
	// SortDateDesc lists the newest appointment date first.
	SortDateDesc Sort = iota
	SortDateAsc
)

// ListFilter narrows Count and List. Zero fields do not filter.
type ListFilter struct {
	OwnerID  *uint
	Statuses []Status
	// From is inclusive, To exclusive.
	From   *time.Time
	To     *time.Time
	Search string
}

// Patch holds the mutable columns of an appointment. Nil means unchanged.
// A Technician or Cost pointing at "" clears the column.
type Patch struct {
	// From is the status the change was validated against. When set, the
	// write only applies while the stored status still equals it.
	From            *Status
	Status          *Status
	Technician      *string
	Cost            *string
	Notes           *string
	AdditionalNotes *string
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Technician == nil && p.Cost == nil &&
		p.Notes == nil && p.AdditionalNotes == nil
}

// Repository is the persistence port of the scheduling engine.
//
// Insert and UpdateByID must return a conflict error (httperr.KindConflict) when
// the write would leave two scheduled appointments on the same date and time.
// UpdateByID must return a conflict error (status_changed) when Patch.From is
// set and no longer matches the stored status.
// FindByID and UpdateByID return nil, nil when the id is unknown.
type Repository interface {
	FindByDateRange(
		ctx context.Context,
		start time.Time,
		end time.Time,
		statuses ...Status,
	) ([]models.Appointment, error)

	Insert(
		ctx context.Context,
		ap *models.Appointment,
	) (*models.Appointment, error)

	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateByID(
		ctx context.Context,
		id uuid.UUID,
		patch Patch,
	) (*models.Appointment, error)

	Count(
		ctx context.Context,
		filter ListFilter,
	) (int64, error)

	List(
		ctx context.Context,
		filter ListFilter,
		page int,
		limit int,
		sort Sort,
	) ([]models.Appointment, error)
}
