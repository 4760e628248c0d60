package account

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/audit"
	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/validators"
)

const minPasswordLength = 8

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
}

type Register struct {
	store Store
	audit *audit.Dispatcher
}

func NewRegister(store Store, audit *audit.Dispatcher) *Register {
	return &Register{store: store, audit: audit}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validators.Required("name", in.Name); err != nil {
		return nil, err
	}
	if err := validators.Email("email", email); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, httperr.ErrValidation("weak_password", "password")
	}
	if in.Phone != "" {
		if err := validators.Phone("phone", in.Phone); err != nil {
			return nil, err
		}
	}

	existing, err := uc.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, httperr.ErrInternal("register_failed", err)
	}
	if existing != nil {
		return nil, httperr.ErrConflict("email_taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperr.ErrInternal("hash_failed", err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         string(role),
	}
	if err := uc.store.Create(ctx, user); err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return nil, err
		}
		return nil, httperr.ErrInternal("register_failed", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "account_registered",
		Entity:   "user",
		EntityID: strconv.FormatUint(uint64(user.ID), 10),
		Metadata: map[string]any{"role": user.Role},
	})

	return user, nil
}
