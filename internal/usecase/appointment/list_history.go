package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/dto"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

type HistoryQuery struct {
	Status string
	Page   int
	Limit  int
}

// ListHistory pages through the caller's own appointments, newest date first.
type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

func (uc *ListHistory) Execute(
	ctx context.Context,
	actor domain.Actor,
	q HistoryQuery,
) (dto.Page[models.Appointment], error) {

	filter := domain.ListFilter{OwnerID: &actor.ID}
	if strings.TrimSpace(q.Status) != "" {
		st, err := domain.ParseStatus(q.Status)
		if err != nil {
			return dto.Page[models.Appointment]{}, err
		}
		filter.Statuses = []domain.Status{st}
	}

	return listPage(ctx, uc.repo, filter, q.Page, q.Limit)
}

func listPage(
	ctx context.Context,
	repo domain.Repository,
	filter domain.ListFilter,
	page int,
	limit int,
) (dto.Page[models.Appointment], error) {

	page, limit = normalizePage(page, limit)

	total, err := repo.Count(ctx, filter)
	if err != nil {
		return dto.Page[models.Appointment]{}, httperr.ErrInternal("list_failed", err)
	}

	apps, err := repo.List(ctx, filter, page, limit, domain.SortDateDesc)
	if err != nil {
		return dto.Page[models.Appointment]{}, httperr.ErrInternal("list_failed", err)
	}
	if apps == nil {
		apps = []models.Appointment{}
	}

	return dto.Page[models.Appointment]{
		Data:       apps,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}
