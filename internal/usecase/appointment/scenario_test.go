package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/infra/repository"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

var (
	alice = domain.Actor{ID: 1, Role: domain.RoleUser}
	bob   = domain.Actor{ID: 2, Role: domain.RoleUser}
	admin = domain.Actor{ID: 99, Role: domain.RoleAdmin}

	fixedNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
)

type suite struct {
	repo         *repository.AppointmentMemoryRepository
	cache        *mapCache
	create       *CreateAppointment
	get          *GetAppointment
	update       *UpdateAppointment
	cancel       *CancelAppointment
	availability *GetAvailability
	history      *ListHistory
	listAll      *ListAll
	overview     *Overview
}

func newSuite() *suite {
	repo := repository.NewAppointmentMemoryRepository()
	cache := newMapCache()
	resolver := domain.NewResolver(repo, domain.NewSlotCatalog())
	clock := func() time.Time { return fixedNow }

	update := NewUpdateAppointment(repo, cache, nil).WithClock(clock)
	return &suite{
		repo:         repo,
		cache:        cache,
		create:       NewCreateAppointment(repo, resolver, cache, nil).WithClock(clock),
		get:          NewGetAppointment(repo),
		update:       update,
		cancel:       NewCancelAppointment(update),
		availability: NewGetAvailability(resolver, cache),
		history:      NewListHistory(repo),
		listAll:      NewListAll(repo),
		overview:     NewOverview(repo).WithClock(clock),
	}
}

// mapCache is an in-process Cache that records invalidations.
type mapCache struct {
	entries     map[string]domain.Availability
	generations map[string]int64
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{
		entries:     make(map[string]domain.Availability),
		generations: make(map[string]int64),
	}
}

func (c *mapCache) Get(_ context.Context, date string) (domain.Availability, bool) {
	a, ok := c.entries[date]
	return a, ok
}

func (c *mapCache) Generation(_ context.Context, date string) int64 {
	return c.generations[date]
}

func (c *mapCache) Set(_ context.Context, date string, gen int64, a domain.Availability) {
	if c.generations[date] != gen {
		return
	}
	c.entries[date] = a
}

func (c *mapCache) Invalidate(_ context.Context, date string) {
	c.generations[date]++
	delete(c.entries, date)
	c.invalidated = append(c.invalidated, date)
}

// hookRepo runs a callback once, right after the wrapped read returns, to
// interleave another request between a read and the write that follows it.
type hookRepo struct {
	*repository.AppointmentMemoryRepository
	afterFindByID        func()
	afterFindByDateRange func()
}

func (r *hookRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	ap, err := r.AppointmentMemoryRepository.FindByID(ctx, id)
	if hook := r.afterFindByID; hook != nil {
		r.afterFindByID = nil
		hook()
	}
	return ap, err
}

func (r *hookRepo) FindByDateRange(
	ctx context.Context,
	start time.Time,
	end time.Time,
	statuses ...domain.Status,
) ([]models.Appointment, error) {
	apps, err := r.AppointmentMemoryRepository.FindByDateRange(ctx, start, end, statuses...)
	if hook := r.afterFindByDateRange; hook != nil {
		r.afterFindByDateRange = nil
		hook()
	}
	return apps, err
}

func validInput(date, slot string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ServiceCategory: "routine",
		SpecificService: "Oil change",
		Date:            date,
		Time:            slot,
		Vehicle:         models.VehicleSnapshot{Make: "Toyota", Model: "Corolla", Year: 2019, Registration: "abc-123"},
		Customer:        models.CustomerSnapshot{Name: "John Smith", Email: "John@Example.com", Phone: "555-123-4567"},
	}
}

func (s *suite) book(t *testing.T, actor domain.Actor, slot string) *models.Appointment {
	t.Helper()
	ap, err := s.create.Execute(context.Background(), actor, domain.EntryBooking, validInput("2025-05-15", slot))
	if err != nil {
		t.Fatalf("booking %s failed: %v", slot, err)
	}
	return ap
}

func mustAvailability(t *testing.T, s *suite, date string) domain.Availability {
	t.Helper()
	a, err := s.availability.Execute(context.Background(), date)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	return a
}

func str(s string) *string { return &s }

// ======================================================
// Booking and availability
// ======================================================

func TestBookingClosesSlotAndSecondBookingConflicts(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	if a := mustAvailability(t, s, "2025-05-15"); !a.IsAvailable("10:00 AM") {
		t.Fatal("10:00 AM should start open")
	}

	ap := s.book(t, alice, "10:00 AM")
	if ap.Status != string(domain.StatusScheduled) || ap.OwnerID != alice.ID {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if ap.Customer.Email != "john@example.com" || ap.Vehicle.Registration != "ABC-123" {
		t.Fatalf("snapshot not normalised: %+v / %+v", ap.Customer, ap.Vehicle)
	}

	a := mustAvailability(t, s, "2025-05-15")
	if a.IsAvailable("10:00 AM") {
		t.Fatal("10:00 AM should be taken")
	}
	if !a.IsAvailable("11:00 AM") {
		t.Fatal("other slots must stay open")
	}

	_, err := s.create.Execute(ctx, bob, domain.EntryBooking, validInput("2025-05-15", "10:00 AM"))
	if !httperr.IsBusiness(err, "slot_unavailable") || !httperr.Is(err, httperr.KindConflict) {
		t.Fatalf("expected slot_unavailable conflict, got %v", err)
	}
}

func TestBookingInvalidatesCachedDay(t *testing.T) {
	s := newSuite()

	mustAvailability(t, s, "2025-05-15")
	if _, ok := s.cache.entries["2025-05-15"]; !ok {
		t.Fatal("availability should be cached")
	}

	s.book(t, alice, "09:00 AM")
	if _, ok := s.cache.entries["2025-05-15"]; ok {
		t.Fatal("booking must invalidate the cached day")
	}
	if mustAvailability(t, s, "2025-05-15").IsAvailable("09:00 AM") {
		t.Fatal("fresh availability should show the booking")
	}
}

func TestAvailabilityReadOverlappingBookingIsNotCached(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	repo := &hookRepo{AppointmentMemoryRepository: s.repo}
	availability := NewGetAvailability(domain.NewResolver(repo, domain.NewSlotCatalog()), s.cache)

	// The booking lands after the grid was read but before it is cached.
	repo.afterFindByDateRange = func() { s.book(t, alice, "10:00 AM") }

	stale, err := availability.Execute(ctx, "2025-05-15")
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if !stale.IsAvailable("10:00 AM") {
		t.Fatal("the overlapping read should still see the open slot")
	}
	if _, ok := s.cache.entries["2025-05-15"]; ok {
		t.Fatal("a grid read before the invalidation must not be cached")
	}

	if mustAvailability(t, s, "2025-05-15").IsAvailable("10:00 AM") {
		t.Fatal("next read should show the booking")
	}
	if _, ok := s.cache.entries["2025-05-15"]; !ok {
		t.Fatal("an undisturbed read should be cached")
	}
}

func TestCreateValidation(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	cases := map[string]func(in *CreateAppointmentInput){
		"invalid_date":         func(in *CreateAppointmentInput) { in.Date = "15-05-2025" },
		"date_in_past":         func(in *CreateAppointmentInput) { in.Date = "2025-05-09" },
		"invalid_time_slot":    func(in *CreateAppointmentInput) { in.Time = "10:30 AM" },
		"invalid_category":     func(in *CreateAppointmentInput) { in.ServiceCategory = "tyres" },
		"missing_field":        func(in *CreateAppointmentInput) { in.Vehicle.Make = " " },
		"invalid_email":        func(in *CreateAppointmentInput) { in.Customer.Email = "john" },
		"invalid_phone":        func(in *CreateAppointmentInput) { in.Customer.Phone = "12" },
		"invalid_vehicle_year": func(in *CreateAppointmentInput) { in.Vehicle.Year = 1800 },
	}

	for code, mutate := range cases {
		in := validInput("2025-05-15", "10:00 AM")
		mutate(&in)

		_, err := s.create.Execute(ctx, alice, domain.EntryBooking, in)
		if !httperr.IsBusiness(err, code) || !httperr.Is(err, httperr.KindValidation) {
			t.Fatalf("%s: got %v", code, err)
		}
	}
}

func TestCreateRejectsValuesLongerThanTheirColumns(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	cases := map[string]func(in *CreateAppointmentInput){
		"specific_service":     func(in *CreateAppointmentInput) { in.SpecificService = strings.Repeat("s", 121) },
		"vehicle.make":         func(in *CreateAppointmentInput) { in.Vehicle.Make = strings.Repeat("m", 61) },
		"vehicle.model":        func(in *CreateAppointmentInput) { in.Vehicle.Model = strings.Repeat("m", 61) },
		"vehicle.registration": func(in *CreateAppointmentInput) { in.Vehicle.Registration = strings.Repeat("r", 31) },
		"customer.name":        func(in *CreateAppointmentInput) { in.Customer.Name = strings.Repeat("n", 101) },
		"customer.email":       func(in *CreateAppointmentInput) { in.Customer.Email = strings.Repeat("e", 95) + "@x.com" },
		"customer.phone":       func(in *CreateAppointmentInput) { in.Customer.Phone = "+1 (555) 123-4567 890" },
	}

	for field, mutate := range cases {
		in := validInput("2025-05-15", "10:00 AM")
		mutate(&in)

		_, err := s.create.Execute(ctx, alice, domain.EntryBooking, in)
		var be httperr.BusinessError
		if !errors.As(err, &be) || be.Code != "too_long" || be.Field != field {
			t.Fatalf("%s: expected too_long, got %v", field, err)
		}
	}

	// Exactly at the limit is fine.
	in := validInput("2025-05-15", "10:00 AM")
	in.SpecificService = strings.Repeat("s", 120)
	if _, err := s.create.Execute(ctx, alice, domain.EntryBooking, in); err != nil {
		t.Fatalf("120 characters should fit: %v", err)
	}
}

func TestReviewEntryStartsPendingAndKeepsSlotOpen(t *testing.T) {
	s := newSuite()

	ap, err := s.create.Execute(context.Background(), alice, domain.EntryReview, validInput("2025-05-15", "10:00 AM"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %s", ap.Status)
	}
	if !mustAvailability(t, s, "2025-05-15").IsAvailable("10:00 AM") {
		t.Fatal("pending requests must not hold the slot")
	}

	// Confirming takes the slot.
	if _, err := s.update.Execute(context.Background(), admin, ap.ID.String(), UpdateRequest{
		Status: &StatusChange{To: "scheduled"},
	}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if mustAvailability(t, s, "2025-05-15").IsAvailable("10:00 AM") {
		t.Fatal("confirmed request should hold the slot")
	}
}

func TestConfirmLosesToCancelThatLandsAfterLoad(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	ap, err := s.create.Execute(ctx, alice, domain.EntryReview, validInput("2025-05-15", "10:00 AM"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	repo := &hookRepo{AppointmentMemoryRepository: s.repo}
	confirm := NewUpdateAppointment(repo, s.cache, nil).WithClock(func() time.Time { return fixedNow })

	// The owner cancels between the admin's load and write.
	repo.afterFindByID = func() {
		if _, err := s.cancel.Execute(ctx, alice, ap.ID.String()); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
	}

	_, err = confirm.Execute(ctx, admin, ap.ID.String(), UpdateRequest{Status: &StatusChange{To: "scheduled"}})
	if !httperr.IsBusiness(err, "status_changed") || !httperr.Is(err, httperr.KindConflict) {
		t.Fatalf("expected status_changed conflict, got %v", err)
	}

	final, err := s.get.Execute(ctx, admin, ap.ID.String())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if final.Status != string(domain.StatusCancelled) {
		t.Fatalf("cancelled appointment came back as %s", final.Status)
	}
	if !mustAvailability(t, s, "2025-05-15").IsAvailable("10:00 AM") {
		t.Fatal("slot should stay open")
	}
}

func TestCompleteAndCancelDoNotOverwriteEachOther(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	ap := s.book(t, alice, "10:00 AM")

	repo := &hookRepo{AppointmentMemoryRepository: s.repo}
	complete := NewUpdateAppointment(repo, s.cache, nil).WithClock(func() time.Time { return fixedNow })

	repo.afterFindByID = func() {
		if _, err := s.cancel.Execute(ctx, alice, ap.ID.String()); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
	}

	_, err := complete.Execute(ctx, admin, ap.ID.String(), UpdateRequest{Status: &StatusChange{To: "completed"}})
	if !httperr.IsBusiness(err, "status_changed") {
		t.Fatalf("expected status_changed, got %v", err)
	}
	if got, _ := s.get.Execute(ctx, admin, ap.ID.String()); got.Status != string(domain.StatusCancelled) || got.CompletedAt != nil {
		t.Fatalf("cancel should win, got %+v", got)
	}
}

func TestAvailabilityRejectsBadDate(t *testing.T) {
	s := newSuite()

	if _, err := s.availability.Execute(context.Background(), ""); !httperr.IsBusiness(err, "missing_date") {
		t.Fatalf("expected missing_date, got %v", err)
	}
	if _, err := s.availability.Execute(context.Background(), "2025/05/15"); !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("expected invalid_date, got %v", err)
	}
}

// ======================================================
// Lifecycle and gate
// ======================================================

func TestAdminCompletesWithTechnicianAndOwnerCannotRevert(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	ap := s.book(t, alice, "10:00 AM")

	done, err := s.update.Execute(ctx, admin, ap.ID.String(), UpdateRequest{
		Status:  &StatusChange{To: "completed"},
		Details: &DetailUpdate{Technician: str("Mike Johnson"), Cost: str("$120")},
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if done.Status != string(domain.StatusCompleted) || done.Technician == nil || *done.Technician != "Mike Johnson" {
		t.Fatalf("unexpected completed appointment %+v", done)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(fixedNow) {
		t.Fatalf("CompletedAt should be stamped, got %v", done.CompletedAt)
	}

	_, err = s.update.Execute(ctx, alice, ap.ID.String(), UpdateRequest{Status: &StatusChange{To: "scheduled"}})
	if !httperr.Is(err, httperr.KindForbidden) {
		t.Fatalf("owner revert should be forbidden, got %v", err)
	}

	_, err = s.cancel.Execute(ctx, alice, ap.ID.String())
	if !httperr.IsBusiness(err, "appointment_closed") {
		t.Fatalf("completed appointment should be closed, got %v", err)
	}
}

func TestOwnerCancelFreesSlot(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	ap := s.book(t, alice, "10:00 AM")

	cancelled, err := s.cancel.Execute(ctx, alice, ap.ID.String())
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled appointment %+v", cancelled)
	}

	if !mustAvailability(t, s, "2025-05-15").IsAvailable("10:00 AM") {
		t.Fatal("cancelled slot should reopen")
	}

	// Bob can now book it; the cancelled record stays.
	s.book(t, bob, "10:00 AM")
	still, err := s.get.Execute(ctx, alice, ap.ID.String())
	if err != nil || still.Status != string(domain.StatusCancelled) {
		t.Fatalf("cancelled record should persist, got %v (%v)", still, err)
	}

	if _, err := s.cancel.Execute(ctx, alice, ap.ID.String()); !httperr.IsBusiness(err, "appointment_closed") {
		t.Fatalf("second cancel should fail, got %v", err)
	}
}

func TestStrangerIsForbiddenEverywhere(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	ap := s.book(t, alice, "10:00 AM")
	id := ap.ID.String()

	if _, err := s.get.Execute(ctx, bob, id); !httperr.Is(err, httperr.KindForbidden) {
		t.Fatalf("get: expected forbidden, got %v", err)
	}
	if _, err := s.update.Execute(ctx, bob, id, UpdateRequest{Status: &StatusChange{To: "cancelled"}}); !httperr.Is(err, httperr.KindForbidden) {
		t.Fatalf("update: expected forbidden, got %v", err)
	}
	if _, err := s.cancel.Execute(ctx, bob, id); !httperr.Is(err, httperr.KindForbidden) {
		t.Fatalf("cancel: expected forbidden, got %v", err)
	}

	if got, _ := s.get.Execute(ctx, alice, id); got.Status != string(domain.StatusScheduled) {
		t.Fatal("forbidden calls must not change the appointment")
	}
}

func TestOwnerUnknownStatusIsForbidden(t *testing.T) {
	s := newSuite()
	ap := s.book(t, alice, "10:00 AM")

	for _, to := range []string{"foo", "scheduled", ""} {
		_, err := s.update.Execute(context.Background(), alice, ap.ID.String(), UpdateRequest{
			Status: &StatusChange{To: to},
		})
		if !httperr.IsBusiness(err, "status_change_not_allowed") {
			t.Fatalf("%q: expected status_change_not_allowed, got %v", to, err)
		}
	}

	// Case and spacing are folded before the check.
	if _, err := s.update.Execute(context.Background(), alice, ap.ID.String(), UpdateRequest{
		Status: &StatusChange{To: " Cancelled "},
	}); err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}
}

func TestOwnerCannotEditWorkshopFields(t *testing.T) {
	s := newSuite()
	ap := s.book(t, alice, "10:00 AM")

	_, err := s.update.Execute(context.Background(), alice, ap.ID.String(), UpdateRequest{
		Details: &DetailUpdate{Notes: str("please hurry")},
	})
	if !httperr.IsBusiness(err, "admin_only") {
		t.Fatalf("expected admin_only, got %v", err)
	}
}

func TestUpdateEdgeCases(t *testing.T) {
	s := newSuite()
	ctx := context.Background()
	ap := s.book(t, alice, "10:00 AM")

	if _, err := s.update.Execute(ctx, admin, ap.ID.String(), UpdateRequest{}); !httperr.IsBusiness(err, "empty_update") {
		t.Fatalf("expected empty_update, got %v", err)
	}
	if _, err := s.update.Execute(ctx, admin, "not-a-uuid", UpdateRequest{Status: &StatusChange{To: "cancelled"}}); !httperr.IsBusiness(err, "invalid_id") {
		t.Fatalf("expected invalid_id, got %v", err)
	}
	if _, err := s.get.Execute(ctx, admin, "3b241101-e2bb-4255-8caf-4136c566a962"); !httperr.Is(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.update.Execute(ctx, admin, ap.ID.String(), UpdateRequest{Status: &StatusChange{To: "archived"}}); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
	if _, err := s.update.Execute(ctx, admin, ap.ID.String(), UpdateRequest{Status: &StatusChange{To: "pending"}}); !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	// Clearing the technician stores NULL.
	if _, err := s.update.Execute(ctx, admin, ap.ID.String(), UpdateRequest{Details: &DetailUpdate{Technician: str("Mike")}}); err != nil {
		t.Fatalf("set technician: %v", err)
	}
	cleared, err := s.update.Execute(ctx, admin, ap.ID.String(), UpdateRequest{Details: &DetailUpdate{Technician: str("")}})
	if err != nil || cleared.Technician != nil {
		t.Fatalf("technician should be cleared, got %v (%v)", cleared.Technician, err)
	}
}

// ======================================================
// Listing
// ======================================================

func TestHistoryOnlyShowsOwnAppointments(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	s.book(t, alice, "08:00 AM")
	s.book(t, alice, "09:00 AM")
	cancelled := s.book(t, alice, "10:00 AM")
	s.book(t, bob, "11:00 AM")
	if _, err := s.cancel.Execute(ctx, alice, cancelled.ID.String()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	page, err := s.history.Execute(ctx, alice, HistoryQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if page.Pagination.Total != 3 || page.Pagination.TotalPages != 2 || len(page.Data) != 2 {
		t.Fatalf("unexpected page %+v", page.Pagination)
	}
	for _, ap := range page.Data {
		if ap.OwnerID != alice.ID {
			t.Fatalf("history leaked appointment of owner %d", ap.OwnerID)
		}
	}

	page, _ = s.history.Execute(ctx, alice, HistoryQuery{Status: "cancelled"})
	if page.Pagination.Total != 1 || page.Pagination.Limit != defaultLimit {
		t.Fatalf("status filter/defaults not applied: %+v", page.Pagination)
	}
}

func TestListAllIsAdminOnlyAndFilters(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	s.book(t, alice, "08:00 AM")
	in := validInput("2025-05-16", "08:00 AM")
	in.Vehicle.Make = "Honda"
	if _, err := s.create.Execute(ctx, bob, domain.EntryBooking, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.listAll.Execute(ctx, alice, AdminQuery{}); !httperr.Is(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	page, err := s.listAll.Execute(ctx, admin, AdminQuery{Search: "HONDA"})
	if err != nil || page.Pagination.Total != 1 {
		t.Fatalf("search: %+v (%v)", page.Pagination, err)
	}

	page, _ = s.listAll.Execute(ctx, admin, AdminQuery{From: "2025-05-15", To: "2025-05-15"})
	if page.Pagination.Total != 1 || page.Data[0].OwnerID != alice.ID {
		t.Fatalf("inclusive single-day range should match one row, got %d", page.Pagination.Total)
	}

	page, _ = s.listAll.Execute(ctx, admin, AdminQuery{Status: "scheduled,cancelled", Limit: 500})
	if page.Pagination.Total != 2 || page.Pagination.Limit != maxLimit {
		t.Fatalf("unexpected %+v", page.Pagination)
	}

	if _, err := s.listAll.Execute(ctx, admin, AdminQuery{From: "2025-05-16", To: "2025-05-15"}); !httperr.IsBusiness(err, "invalid_range") {
		t.Fatalf("expected invalid_range, got %v", err)
	}
}

func TestOverview(t *testing.T) {
	s := newSuite()
	ctx := context.Background()

	s.book(t, alice, "08:00 AM")
	ap := s.book(t, bob, "09:00 AM")
	if _, err := s.cancel.Execute(ctx, bob, ap.ID.String()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := s.overview.Execute(ctx, alice); !httperr.Is(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	out, err := s.overview.Execute(ctx, admin)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if out.Total != 2 || out.ByStatus["scheduled"] != 1 || out.ByStatus["cancelled"] != 1 {
		t.Fatalf("unexpected counts %+v", out)
	}
	if out.Upcoming != 1 || len(out.Next) != 1 || out.Next[0].AppointmentDate != "2025-05-15" {
		t.Fatalf("unexpected upcoming %+v", out)
	}
	if out.TodayScheduled != 0 {
		t.Fatalf("nothing is booked on %s, got %d", fixedNow.Format("2006-01-02"), out.TodayScheduled)
	}
}
