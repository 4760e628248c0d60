package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// AppointmentMemoryRepository keeps appointments in process. It enforces the
// same one-scheduled-per-slot rule as the partial unique index.
type AppointmentMemoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Appointment
	now  func() time.Time
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		byID: make(map[uuid.UUID]models.Appointment),
		now:  time.Now,
	}
}

func (r *AppointmentMemoryRepository) FindByDateRange(
	_ context.Context,
	start time.Time,
	end time.Time,
	statuses ...domain.Status,
) ([]models.Appointment, error) {
	return r.filter(domain.ListFilter{From: &start, To: &end, Statuses: statuses}), nil
}

func (r *AppointmentMemoryRepository) Insert(
	_ context.Context,
	ap *models.Appointment,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if domain.Status(ap.Status) == domain.StatusScheduled &&
		r.slotTaken(uuid.Nil, ap.AppointmentDate, ap.AppointmentTime) {
		return nil, httperr.ErrConflict("slot_unavailable")
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	now := r.now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	r.byID[ap.ID] = *ap

	out := *ap
	return &out, nil
}

func (r *AppointmentMemoryRepository) FindByID(
	_ context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &ap, nil
}

func (r *AppointmentMemoryRepository) UpdateByID(
	_ context.Context,
	id uuid.UUID,
	p domain.Patch,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.byID[id]
	if !ok {
		return nil, nil
	}

	if p.From != nil && domain.Status(ap.Status) != *p.From {
		return nil, httperr.ErrConflict("status_changed")
	}
	if p.Status != nil {
		if *p.Status == domain.StatusScheduled &&
			r.slotTaken(id, ap.AppointmentDate, ap.AppointmentTime) {
			return nil, httperr.ErrConflict("slot_unavailable")
		}
		ap.Status = string(*p.Status)
	}
	if p.Technician != nil {
		ap.Technician = nullableString(*p.Technician)
	}
	if p.Cost != nil {
		ap.Cost = nullableString(*p.Cost)
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	if p.AdditionalNotes != nil {
		ap.AdditionalNotes = *p.AdditionalNotes
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		ap.CompletedAt = &t
	}
	if p.CancelledAt != nil {
		t := *p.CancelledAt
		ap.CancelledAt = &t
	}
	ap.UpdatedAt = r.now()
	r.byID[id] = ap

	return &ap, nil
}

func (r *AppointmentMemoryRepository) Count(
	_ context.Context,
	filter domain.ListFilter,
) (int64, error) {
	return int64(len(r.filter(filter))), nil
}

func (r *AppointmentMemoryRepository) List(
	_ context.Context,
	filter domain.ListFilter,
	page int,
	limit int,
	order domain.Sort,
) ([]models.Appointment, error) {
	apps := r.filter(filter)

	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		if !a.AppointmentDate.Equal(b.AppointmentDate) {
			if order == domain.SortDateAsc {
				return a.AppointmentDate.Before(b.AppointmentDate)
			}
			return a.AppointmentDate.After(b.AppointmentDate)
		}
		if order == domain.SortDateAsc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	offset := (page - 1) * limit
	if offset < 0 || offset >= len(apps) {
		return []models.Appointment{}, nil
	}
	end := offset + limit
	if end > len(apps) {
		end = len(apps)
	}
	return apps[offset:end], nil
}

func (r *AppointmentMemoryRepository) filter(f domain.ListFilter) []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Appointment, 0)
	for _, ap := range r.byID {
		if f.OwnerID != nil && ap.OwnerID != *f.OwnerID {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, domain.Status(ap.Status)) {
			continue
		}
		if f.From != nil && ap.AppointmentDate.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.AppointmentDate.Before(*f.To) {
			continue
		}
		if search != "" && !matchesSearch(ap, search) {
			continue
		}
		out = append(out, ap)
	}
	return out
}

// slotTaken must be called with the lock held.
func (r *AppointmentMemoryRepository) slotTaken(except uuid.UUID, date time.Time, label string) bool {
	for id, ap := range r.byID {
		if id == except {
			continue
		}
		if domain.Status(ap.Status) == domain.StatusScheduled &&
			ap.AppointmentDate.Equal(date) &&
			ap.AppointmentTime == label {
			return true
		}
	}
	return false
}

func hasStatus(list []domain.Status, s domain.Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func matchesSearch(ap models.Appointment, needle string) bool {
	fields := []string{
		ap.Vehicle.Make,
		ap.Vehicle.Model,
		strconv.Itoa(ap.Vehicle.Year),
		ap.Customer.Name,
		ap.Customer.Phone,
		ap.Customer.Email,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func nullableString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
