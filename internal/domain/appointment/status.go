package appointment

import (
	"strings"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the only place the lifecycle is defined. Completed and
// cancelled have no outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:   {StatusScheduled, StatusCancelled},
	StatusScheduled: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// NormalizeStatus folds case and whitespace without checking the value.
func NormalizeStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

func ParseStatus(s string) (Status, error) {
	st := NormalizeStatus(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.ErrValidation("invalid_status", "status")
	}
	return st, nil
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

// Transition validates a status change. It does not look at who asks; see Gate.
func Transition(from, to Status) error {
	if _, ok := transitions[to]; !ok {
		return httperr.ErrValidation("invalid_status", "status")
	}
	if from.IsTerminal() {
		return httperr.ErrValidation("appointment_closed", "status")
	}
	if !CanTransition(from, to) {
		return httperr.ErrValidation("invalid_transition", "status")
	}
	return nil
}

// EntryPoint selects how a new appointment enters the lifecycle.
type EntryPoint int

const (
	// EntryBooking is the customer booking flow; the slot is taken immediately.
	EntryBooking EntryPoint = iota
	// EntryReview queues the request for an admin to confirm.
	EntryReview
)

func InitialStatus(entry EntryPoint) Status {
	if entry == EntryReview {
		return StatusPending
	}
	return StatusScheduled
}
