// Package booking holds the booking aggregate: a reserved slot with price
// fields snapshotted at admission time. Later changes to the plan's pricing
// never touch an existing booking, and bookings are never hard-deleted.
package booking

import (
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveParticipants = errs.New("participants must be positive")
	ErrNegativeAmount          = errs.New("amount cannot be negative")
)

type Booking struct {
	id           uuid.UUID
	userID       uuid.UUID
	experienceID uuid.UUID
	pricingID    uuid.UUID
	date         time.Time
	startTime    *string
	endTime      *string
	participants int32

	// price snapshot, fixed at admission
	pricingKind pricing.Kind
	unitPrice   int64
	totalAmount int64
	currency    string

	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// New admits a booking in PENDING with the given price snapshot.
func New(
	userID, experienceID, pricingID uuid.UUID,
	date time.Time,
	startTime, endTime *string,
	participants int32,
	kind pricing.Kind,
	unitPrice, totalAmount int64,
	currency string,
) (*Booking, error) {
	if participants <= 0 {
		return nil, ErrNonPositiveParticipants
	}
	if unitPrice < 0 || totalAmount < 0 {
		return nil, ErrNegativeAmount
	}
	return &Booking{
		id:           uuid.New(),
		userID:       userID,
		experienceID: experienceID,
		pricingID:    pricingID,
		date:         pricing.NormalizeDate(date),
		startTime:    startTime,
		endTime:      endTime,
		participants: participants,
		pricingKind:  kind,
		unitPrice:    unitPrice,
		totalAmount:  totalAmount,
		currency:     currency,
		status:       StatusPending,
	}, nil
}

func Reconstruct(
	id, userID, experienceID, pricingID uuid.UUID,
	date time.Time,
	startTime, endTime *string,
	participants int32,
	kind pricing.Kind,
	unitPrice, totalAmount int64,
	currency string,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		userID:       userID,
		experienceID: experienceID,
		pricingID:    pricingID,
		date:         date,
		startTime:    startTime,
		endTime:      endTime,
		participants: participants,
		pricingKind:  kind,
		unitPrice:    unitPrice,
		totalAmount:  totalAmount,
		currency:     currency,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) UserID() uuid.UUID         { return b.userID }
func (b *Booking) ExperienceID() uuid.UUID   { return b.experienceID }
func (b *Booking) PricingID() uuid.UUID      { return b.pricingID }
func (b *Booking) Date() time.Time           { return b.date }
func (b *Booking) StartTime() *string        { return b.startTime }
func (b *Booking) EndTime() *string          { return b.endTime }
func (b *Booking) Participants() int32       { return b.participants }
func (b *Booking) PricingKind() pricing.Kind { return b.pricingKind }
func (b *Booking) UnitPrice() int64          { return b.unitPrice }
func (b *Booking) TotalAmount() int64        { return b.totalAmount }
func (b *Booking) Currency() string          { return b.currency }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

// TransitionTo moves the booking to next, rejecting illegal transitions.
func (b *Booking) TransitionTo(next Status) error {
	if !next.IsValid() {
		return apperr.InvalidRequest("invalid booking status")
	}
	if !b.status.CanTransitionTo(next) {
		return apperr.InvalidRequest("cannot change booking status from %s to %s", b.status, next)
	}
	b.status = next
	return nil
}

// Cancel is a convenience transition to CANCELLED.
func (b *Booking) Cancel() error {
	return b.TransitionTo(StatusCancelled)
}
