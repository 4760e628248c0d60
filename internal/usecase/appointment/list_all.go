package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/dto"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/validators"
)

// AdminQuery filters the workshop-wide listing. From and To are inclusive
// YYYY-MM-DD dates; Status may hold several comma-separated values.
type AdminQuery struct {
	Status string
	From   string
	To     string
	Search string
	Page   int
	Limit  int
}

type ListAll struct {
	repo domain.Repository
}

func NewListAll(repo domain.Repository) *ListAll {
	return &ListAll{repo: repo}
}

func (uc *ListAll) Execute(
	ctx context.Context,
	actor domain.Actor,
	q AdminQuery,
) (dto.Page[models.Appointment], error) {

	if err := domain.RequireAdmin(actor); err != nil {
		return dto.Page[models.Appointment]{}, err
	}

	filter, err := adminFilter(q)
	if err != nil {
		return dto.Page[models.Appointment]{}, err
	}

	return listPage(ctx, uc.repo, filter, q.Page, q.Limit)
}

func adminFilter(q AdminQuery) (domain.ListFilter, error) {
	var f domain.ListFilter

	for _, raw := range strings.Split(q.Status, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return f, err
		}
		f.Statuses = append(f.Statuses, st)
	}

	var from, to time.Time
	if strings.TrimSpace(q.From) != "" {
		d, err := validators.Date("from", q.From)
		if err != nil {
			return f, err
		}
		from = d
		f.From = &from
	}
	if strings.TrimSpace(q.To) != "" {
		d, err := validators.Date("to", q.To)
		if err != nil {
			return f, err
		}
		to = d.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !from.Before(to) {
		return f, httperr.ErrValidation("invalid_range", "from")
	}

	f.Search = strings.TrimSpace(q.Search)
	return f, nil
}
