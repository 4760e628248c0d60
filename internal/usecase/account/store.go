package account

import (
	"context"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// Store persists accounts. Find methods return nil, nil when nothing matches;
// Create returns an email_taken conflict for a duplicate email.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}
