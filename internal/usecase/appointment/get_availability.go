package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/timezone"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/validators"
)

type GetAvailability struct {
	resolver *domain.Resolver
	cache    Cache
}

func NewGetAvailability(resolver *domain.Resolver, cache Cache) *GetAvailability {
	return &GetAvailability{resolver: resolver, cache: orNoop(cache)}
}

// Execute returns the slot grid for a YYYY-MM-DD date. Past dates are
// answered too; booking is where the past is rejected.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	rawDate string,
) (domain.Availability, error) {

	date, err := validators.Date("date", rawDate)
	if err != nil {
		return domain.Availability{}, err
	}
	key := timezone.FormatDate(date)

	if cached, ok := uc.cache.Get(ctx, key); ok {
		return cached, nil
	}

	gen := uc.cache.Generation(ctx, key)
	avail, err := uc.resolver.Resolve(ctx, date)
	if err != nil {
		return domain.Availability{}, httperr.ErrInternal("availability_failed", err)
	}

	uc.cache.Set(ctx, key, gen, avail)
	return avail, nil
}
