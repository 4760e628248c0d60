package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// rangeRepo answers FindByDateRange from a fixed list and records the bounds.
type rangeRepo struct {
	Repository
	apps       []models.Appointment
	start, end time.Time
	statuses   []Status
	err        error
}

func (r *rangeRepo) FindByDateRange(_ context.Context, start, end time.Time, statuses ...Status) ([]models.Appointment, error) {
	r.start, r.end, r.statuses = start, end, statuses
	return r.apps, r.err
}

func booked(label string, status Status) models.Appointment {
	return models.Appointment{
		ID:              uuid.New(),
		AppointmentDate: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		AppointmentTime: label,
		Status:          string(status),
	}
}

func TestPunchEmptyDayIsFullyOpen(t *testing.T) {
	a := Punch(NewSlotCatalog(), nil)

	for _, slots := range [][]SlotAvailability{a.Morning, a.Afternoon, a.Evening} {
		for _, s := range slots {
			if !s.Available {
				t.Fatalf("slot %s should be open", s.Time)
			}
		}
	}
}

func TestPunchClosesOnlyScheduledSlot(t *testing.T) {
	a := Punch(NewSlotCatalog(), []models.Appointment{
		booked("10:00 AM", StatusScheduled),
		booked("02:00 PM", StatusCancelled),
		booked("03:00 PM", StatusPending),
		booked("10:30 AM", StatusScheduled),
	})

	closed := 0
	for _, slots := range [][]SlotAvailability{a.Morning, a.Afternoon, a.Evening} {
		for _, s := range slots {
			if !s.Available {
				closed++
				if s.Time != "10:00 AM" {
					t.Fatalf("unexpected closed slot %s", s.Time)
				}
			}
		}
	}
	if closed != 1 {
		t.Fatalf("expected exactly one closed slot, got %d", closed)
	}
}

func TestResolverQueriesUTCDay(t *testing.T) {
	repo := &rangeRepo{apps: []models.Appointment{booked("08:00 AM", StatusScheduled)}}
	r := NewResolver(repo, NewSlotCatalog())

	// 23:30 at UTC-3 is already the next UTC day.
	loc := time.FixedZone("UTC-3", -3*60*60)
	a, err := r.Resolve(context.Background(), time.Date(2025, 5, 14, 23, 30, 0, 0, loc))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	wantStart := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	if !repo.start.Equal(wantStart) || !repo.end.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected bounds [%s, %s)", repo.start, repo.end)
	}
	if len(repo.statuses) != 1 || repo.statuses[0] != StatusScheduled {
		t.Fatalf("resolver should ask for scheduled only, got %v", repo.statuses)
	}
	if a.IsAvailable("08:00 AM") {
		t.Fatal("08:00 AM should be taken")
	}
}

func TestResolverWrapsStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewResolver(&rangeRepo{err: boom}, NewSlotCatalog())

	if _, err := r.Resolve(context.Background(), time.Now()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
