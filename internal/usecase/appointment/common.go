package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Cache holds resolved availability per YYYY-MM-DD date.
//
// Generation returns a token that moves on every Invalidate of the date. Set
// only stores the grid while the generation still equals gen, so a read that
// overlaps a booking or cancellation cannot re-cache the old grid.
type Cache interface {
	Get(ctx context.Context, date string) (domain.Availability, bool)
	Generation(ctx context.Context, date string) int64
	Set(ctx context.Context, date string, gen int64, a domain.Availability)
	Invalidate(ctx context.Context, date string)
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (domain.Availability, bool) {
	return domain.Availability{}, false
}
func (NoopCache) Generation(context.Context, string) int64 { return 0 }

func (NoopCache) Set(context.Context, string, int64, domain.Availability) {}

func (NoopCache) Invalidate(context.Context, string) {}

func orNoop(c Cache) Cache {
	if c == nil {
		return NoopCache{}
	}
	return c
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, httperr.ErrValidation("invalid_id", "id")
	}
	return id, nil
}

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
