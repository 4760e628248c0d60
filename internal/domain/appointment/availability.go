package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/timezone"
)

type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type Availability struct {
	Morning   []SlotAvailability `json:"morning"`
	Afternoon []SlotAvailability `json:"afternoon"`
	Evening   []SlotAvailability `json:"evening"`
}

func (a *Availability) period(p Period) *[]SlotAvailability {
	switch p {
	case PeriodMorning:
		return &a.Morning
	case PeriodAfternoon:
		return &a.Afternoon
	case PeriodEvening:
		return &a.Evening
	}
	return nil
}

func (a *Availability) all() [][]SlotAvailability {
	return [][]SlotAvailability{a.Morning, a.Afternoon, a.Evening}
}

// MarkBooked closes the slot with the given label. It reports false when no
// period carries that label.
func (a *Availability) MarkBooked(label string) bool {
	for _, slots := range a.all() {
		for i := range slots {
			if slots[i].Time == label {
				slots[i].Available = false
				return true
			}
		}
	}
	return false
}

func (a Availability) IsAvailable(label string) bool {
	for _, slots := range a.all() {
		for _, s := range slots {
			if s.Time == label {
				return s.Available
			}
		}
	}
	return false
}

func (a Availability) Clone() Availability {
	return Availability{
		Morning:   append([]SlotAvailability(nil), a.Morning...),
		Afternoon: append([]SlotAvailability(nil), a.Afternoon...),
		Evening:   append([]SlotAvailability(nil), a.Evening...),
	}
}

// Punch clones the catalog template and closes every slot held by a scheduled
// appointment. Labels missing from the catalog are stale data and are skipped.
func Punch(catalog *SlotCatalog, booked []models.Appointment) Availability {
	out := catalog.Template()
	for _, ap := range booked {
		if Status(ap.Status) != StatusScheduled {
			continue
		}
		out.MarkBooked(ap.AppointmentTime)
	}
	return out
}

// ===============================
// Resolver
// ===============================

type Resolver struct {
	repo    Repository
	catalog *SlotCatalog
}

func NewResolver(repo Repository, catalog *SlotCatalog) *Resolver {
	return &Resolver{repo: repo, catalog: catalog}
}

func (r *Resolver) Catalog() *SlotCatalog {
	return r.catalog
}

// Resolve computes slot availability for the UTC calendar day containing date.
// Only scheduled appointments hold a slot.
func (r *Resolver) Resolve(ctx context.Context, date time.Time) (Availability, error) {
	start, end := timezone.DayBounds(date)

	booked, err := r.repo.FindByDateRange(ctx, start, end, StatusScheduled)
	if err != nil {
		return Availability{}, fmt.Errorf("load booked slots: %w", err)
	}

	return Punch(r.catalog, booked), nil
}
