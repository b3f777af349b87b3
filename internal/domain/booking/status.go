package booking

import (
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// OccupiesCapacity reports whether bookings in this status count against a
// slot's ceiling. Completed bookings are in the past and release their
// capacity once finalized.
func (s Status) OccupiesCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo enforces the lifecycle:
//
//	PENDING   -> CONFIRMED | CANCELLED
//	CONFIRMED -> CANCELLED | COMPLETED
//
// CANCELLED and COMPLETED are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	default:
		return false
	}
}

// ParseStatus validates a caller-supplied status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", apperr.InvalidRequest("invalid booking status")
	}
	return s, nil
}
