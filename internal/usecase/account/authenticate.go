package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// ErrInvalidCredentials is returned for an unknown email and a wrong password alike.
var ErrInvalidCredentials = httperr.ErrValidation("invalid_credentials", "")

type Authenticate struct {
	store Store
}

func NewAuthenticate(store Store) *Authenticate {
	return &Authenticate{store: store}
}

func (uc *Authenticate) Execute(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, httperr.ErrInternal("login_failed", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
