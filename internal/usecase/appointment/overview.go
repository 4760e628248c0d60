package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/dto"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/timezone"
)

const overviewNext = 5

var overviewStatuses = []domain.Status{
	domain.StatusPending,
	domain.StatusScheduled,
	domain.StatusCompleted,
	domain.StatusCancelled,
}

// Overview summarises the workshop's book for the admin dashboard.
type Overview struct {
	repo domain.Repository
	now  clock
}

func NewOverview(repo domain.Repository) *Overview {
	return &Overview{repo: repo, now: utcNow}
}

func (uc *Overview) WithClock(now func() time.Time) *Overview {
	uc.now = now
	return uc
}

func (uc *Overview) Execute(
	ctx context.Context,
	actor domain.Actor,
) (*dto.OverviewDTO, error) {

	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	now := uc.now()
	out := &dto.OverviewDTO{
		ByStatus:    make(map[string]int64, len(overviewStatuses)),
		GeneratedAt: now,
	}

	for _, st := range overviewStatuses {
		n, err := uc.repo.Count(ctx, domain.ListFilter{Statuses: []domain.Status{st}})
		if err != nil {
			return nil, httperr.ErrInternal("overview_failed", err)
		}
		out.ByStatus[string(st)] = n
		out.Total += n
	}

	today, tomorrow := timezone.DayBounds(now)
	scheduled := []domain.Status{domain.StatusScheduled}

	n, err := uc.repo.Count(ctx, domain.ListFilter{
		Statuses: scheduled,
		From:     &today,
		To:       &tomorrow,
	})
	if err != nil {
		return nil, httperr.ErrInternal("overview_failed", err)
	}
	out.TodayScheduled = n

	upcoming := domain.ListFilter{Statuses: scheduled, From: &today}
	if out.Upcoming, err = uc.repo.Count(ctx, upcoming); err != nil {
		return nil, httperr.ErrInternal("overview_failed", err)
	}

	next, err := uc.repo.List(ctx, upcoming, 1, overviewNext, domain.SortDateAsc)
	if err != nil {
		return nil, httperr.ErrInternal("overview_failed", err)
	}
	out.Next = make([]dto.AppointmentListDTO, 0, len(next))
	for _, ap := range next {
		out.Next = append(out.Next, toListDTO(ap))
	}

	return out, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	vehicle := strings.TrimSpace(ap.Vehicle.Make + " " + ap.Vehicle.Model)
	return dto.AppointmentListDTO{
		ID:              ap.ID,
		AppointmentDate: timezone.FormatDate(ap.AppointmentDate),
		AppointmentTime: ap.AppointmentTime,
		Status:          ap.Status,
		ServiceCategory: ap.ServiceCategory,
		CustomerName:    ap.Customer.Name,
		Vehicle:         vehicle,
	}
}
