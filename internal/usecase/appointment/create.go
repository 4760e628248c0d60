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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceCategory string
	SpecificService string

	Date string // YYYY-MM-DD
	Time string // catalog label, e.g. "08:00 AM"

	Vehicle  models.VehicleSnapshot
	Customer models.CustomerSnapshot

	AdditionalNotes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	resolver *domain.Resolver
	cache    Cache
	audit    *audit.Dispatcher
	now      clock
}

func NewCreateAppointment(
	repo domain.Repository,
	resolver *domain.Resolver,
	cache Cache,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		resolver: resolver,
		cache:    orNoop(cache),
		audit:    audit,
		now:      utcNow,
	}
}

func (uc *CreateAppointment) WithClock(now func() time.Time) *CreateAppointment {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	entry domain.EntryPoint,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	date, category, err := uc.validate(in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Slot still free (fresh read, never cached)
	// --------------------------------------------------
	avail, err := uc.resolver.Resolve(ctx, date)
	if err != nil {
		return nil, httperr.ErrInternal("availability_failed", err)
	}
	if !avail.IsAvailable(in.Time) {
		uc.dispatchConflict(actor, in)
		return nil, httperr.ErrConflict("slot_unavailable")
	}

	// --------------------------------------------------
	// 3. Persist; the unique slot index settles races
	// --------------------------------------------------
	status := domain.InitialStatus(entry)
	ap := &models.Appointment{
		OwnerID:         actor.ID,
		ServiceCategory: string(category),
		SpecificService: strings.TrimSpace(in.SpecificService),
		AppointmentDate: date,
		AppointmentTime: in.Time,
		Status:          string(status),
		Vehicle:         trimVehicle(in.Vehicle),
		Customer:        trimCustomer(in.Customer),
		AdditionalNotes: strings.TrimSpace(in.AdditionalNotes),
	}

	created, err := uc.repo.Insert(ctx, ap)
	if err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			uc.dispatchConflict(actor, in)
			return nil, err
		}
		return nil, httperr.ErrInternal("create_failed", err)
	}

	uc.cache.Invalidate(ctx, in.Date)

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	action := "appointment_created"
	if status == domain.StatusPending {
		action = "appointment_requested"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   action,
		Entity:   "appointment",
		EntityID: created.ID.String(),
		Metadata: map[string]any{
			"date": in.Date,
			"time": in.Time,
		},
	})

	return created, nil
}

// Column sizes of the appointment snapshot fields.
const (
	maxSpecificService = 120
	maxVehicleMake     = 60
	maxVehicleModel    = 60
	maxRegistration    = 30
	maxCustomerName    = 100
	maxCustomerEmail   = 100
	maxCustomerPhone   = 20
)

func (uc *CreateAppointment) validate(in CreateAppointmentInput) (time.Time, domain.Category, error) {
	date, err := validators.Date("appointment_date", in.Date)
	if err != nil {
		return time.Time{}, "", err
	}
	now := uc.now()
	if err := validators.NotInPast("appointment_date", date, now); err != nil {
		return time.Time{}, "", err
	}
	if err := validators.Slot(uc.resolver.Catalog(), "appointment_time", in.Time); err != nil {
		return time.Time{}, "", err
	}

	category, err := domain.ParseCategory(in.ServiceCategory)
	if err != nil {
		return time.Time{}, "", err
	}

	vehicle, customer := trimVehicle(in.Vehicle), trimCustomer(in.Customer)
	checks := []error{
		validators.Required("specific_service", in.SpecificService),
		validators.MaxLength("specific_service", strings.TrimSpace(in.SpecificService), maxSpecificService),
		validators.Required("vehicle.make", vehicle.Make),
		validators.MaxLength("vehicle.make", vehicle.Make, maxVehicleMake),
		validators.Required("vehicle.model", vehicle.Model),
		validators.MaxLength("vehicle.model", vehicle.Model, maxVehicleModel),
		validators.VehicleYear("vehicle.year", in.Vehicle.Year, now),
		validators.MaxLength("vehicle.registration", vehicle.Registration, maxRegistration),
		validators.Required("customer.name", customer.Name),
		validators.MaxLength("customer.name", customer.Name, maxCustomerName),
		validators.Email("customer.email", customer.Email),
		validators.MaxLength("customer.email", customer.Email, maxCustomerEmail),
		validators.Phone("customer.phone", customer.Phone),
		validators.MaxLength("customer.phone", customer.Phone, maxCustomerPhone),
		validators.MaxLength("additional_notes", in.AdditionalNotes, 0),
	}
	for _, err := range checks {
		if err != nil {
			return time.Time{}, "", err
		}
	}

	return timezone.DayStart(date), category, nil
}

func (uc *CreateAppointment) dispatchConflict(actor domain.Actor, in CreateAppointmentInput) {
	uc.audit.Dispatch(audit.Event{
		UserID: &actor.ID,
		Action: "appointment_conflict",
		Entity: "appointment",
		Metadata: map[string]any{
			"date": in.Date,
			"time": in.Time,
		},
	})
}

func trimVehicle(v models.VehicleSnapshot) models.VehicleSnapshot {
	v.Make = strings.TrimSpace(v.Make)
	v.Model = strings.TrimSpace(v.Model)
	v.Registration = strings.ToUpper(strings.TrimSpace(v.Registration))
	return v
}

func trimCustomer(c models.CustomerSnapshot) models.CustomerSnapshot {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}
