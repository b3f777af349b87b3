// Package commands holds the write-side use cases: booking admission and the
// booking lifecycle.
package commands

import (
	"context"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/booking"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/infra"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/errs"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/queries"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDatabaseOperationFailed = errs.New("database operation failed")

type CreateBookingParams struct {
	ExperienceID uuid.UUID
	PricingID    uuid.UUID
	Participants int32
	Date         time.Time
	StartTime    *string
	EndTime      *string
}

type BookingCommands interface {
	// CreateBooking admits a booking request: validates it against the
	// vendor's pricing rules and availability, computes the price snapshot
	// and reserves capacity, all inside one admission transaction.
	CreateBooking(ctx context.Context, params CreateBookingParams, userID uuid.UUID) (*queries.BookingView, error)
	// UpdateStatus applies a lifecycle transition to the booking.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, rawStatus string) (*queries.BookingView, error)
	// Cancel transitions the booking to CANCELLED, releasing its capacity.
	Cancel(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
}

func NewBookingCommands(uow shared.UnitOfWork, bookingQueries queries.BookingQueries) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	params CreateBookingParams,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	date := pricing.NormalizeDate(params.Date)
	key := shared.AdmissionKey{PricingID: params.PricingID, Date: date}

	var bookingID uuid.UUID
	err := c.uow.WithinAdmission(ctx, key, func(ctx context.Context, tx shared.Tx) error {
		id, admitErr := c.admit(ctx, tx, params, date, userID)
		if admitErr != nil {
			return admitErr
		}
		bookingID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// admit runs the ordered admission sequence on the transaction. Every step
// short-circuits, so a validator failure rolls the whole transaction back and
// no partial booking survives.
func (c *bookingCommandsImpl) admit(
	ctx context.Context,
	tx shared.Tx,
	params CreateBookingParams,
	date time.Time,
	userID uuid.UUID,
) (uuid.UUID, error) {
	reads := tx.Reads()

	exp, err := reads.BookableExperience(ctx, tx.DB(), params.ExperienceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, apperr.NotFound("experience not found")
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	plan, err := reads.BookablePlan(ctx, tx.DB(), exp.ID(), params.PricingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, apperr.NotFound("pricing not found")
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := plan.ValidateDate(date); err != nil {
		return uuid.Nil, err
	}
	if err := plan.ValidateParticipants(params.Participants); err != nil {
		return uuid.Nil, err
	}

	override, err := reads.Override(ctx, tx.DB(), exp.ID(), date)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if override != nil && override.Blocked {
		return uuid.Nil, apperr.InvalidRequest("experience not available on this date")
	}

	slot, err := plan.ResolveSlot(date, params.StartTime)
	if err != nil {
		return uuid.Nil, err
	}

	if slot != nil {
		if err := c.checkCapacity(ctx, tx, plan.ID(), date, params.Participants, override, slot); err != nil {
			return uuid.Nil, err
		}
	}

	unitPrice := plan.UnitPriceFor(slot)
	total, err := plan.CalculateTotal(unitPrice, params.Participants)
	if err != nil {
		return uuid.Nil, err
	}

	b, err := booking.New(
		userID, exp.ID(), plan.ID(),
		date, params.StartTime, params.EndTime,
		params.Participants,
		plan.Kind(), unitPrice, total, plan.Currency(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := tx.Bookings().Create(ctx, tx.DB(), b)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return id, nil
}

// checkCapacity enforces the effective ceiling for the admission key. The
// caller holds the admission lock, so the aggregate cannot race a competing
// insert for the same (pricing, date).
func (c *bookingCommandsImpl) checkCapacity(
	ctx context.Context,
	tx shared.Tx,
	pricingID uuid.UUID,
	date time.Time,
	participants int32,
	override *pricing.Override,
	slot *pricing.Slot,
) error {
	ceiling := pricing.EffectiveCeiling(override, slot)
	if ceiling == nil {
		return nil
	}

	used, err := tx.Reads().UsedCapacity(ctx, tx.DB(), pricingID, date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if used+participants > *ceiling {
		return apperr.InvalidRequest("not enough capacity available")
	}
	return nil
}

func (c *bookingCommandsImpl) UpdateStatus(
	ctx context.Context,
	bookingID uuid.UUID,
	rawStatus string,
) (*queries.BookingView, error) {
	status, err := booking.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return c.transition(ctx, bookingID, status)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, booking.StatusCancelled)
}

func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	next booking.Status,
) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, readErr := tx.Reads().BookingByID(ctx, tx.DB(), bookingID)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return apperr.NotFound("booking not found")
			}
			return errs.Mark(readErr, ErrDatabaseOperationFailed)
		}

		if transErr := b.TransitionTo(next); transErr != nil {
			return transErr
		}

		if writeErr := tx.Bookings().UpdateStatus(ctx, tx.DB(), b.ID(), b.Status()); writeErr != nil {
			return errs.Mark(writeErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
