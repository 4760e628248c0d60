package appointment

import (
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Actor is the caller as resolved by the authentication layer.
type Actor struct {
	ID   uint
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) Owns(ap *models.Appointment) bool {
	return ap != nil && ap.OwnerID == a.ID
}

// ===============================
// Gate
// ===============================

// CanAccess allows the owner and admins.
func CanAccess(actor Actor, ap *models.Appointment) error {
	if actor.IsAdmin() || actor.Owns(ap) {
		return nil
	}
	return httperr.ErrForbidden("not_owner")
}

// AuthorizeStatusChange restricts non-admin actors to cancellation.
func AuthorizeStatusChange(actor Actor, to Status) error {
	if actor.IsAdmin() || to == StatusCancelled {
		return nil
	}
	return httperr.ErrForbidden("status_change_not_allowed")
}

// AuthorizeDetailUpdate guards technician, cost and notes.
func AuthorizeDetailUpdate(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return httperr.ErrForbidden("admin_only")
}

func RequireAdmin(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return httperr.ErrForbidden("admin_only")
}
