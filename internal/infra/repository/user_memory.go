package repository

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/account"
)

type UserMemoryRepository struct {
	mu     sync.RWMutex
	nextID uint
	byID   map[uint]models.User
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{byID: make(map[uint]models.User)}
}

func (r *UserMemoryRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserMemoryRepository) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserMemoryRepository) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return httperr.ErrConflict("email_taken")
		}
	}

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.byID[u.ID] = *u
	return nil
}

var _ account.Store = (*UserMemoryRepository)(nil)
