// Package readstore implements the SQL read side: the write-path point reads
// running inside admission transactions, and the view store serving list and
// detail queries from the pool.
package readstore

import (
	"context"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/booking"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/experience"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type commandReads struct {
	experiences  *ExperienceReadStore
	pricings     *PricingReadStore
	availability *AvailabilityReadStore
	bookings     *BookingReadStore
}

func NewCommandReads() shared.CommandReads {
	return &commandReads{
		experiences:  NewExperienceReadStore(),
		pricings:     NewPricingReadStore(),
		availability: NewAvailabilityReadStore(),
		bookings:     NewBookingReadStore(),
	}
}

func (c *commandReads) BookableExperience(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*experience.Experience, error) {
	return c.experiences.FindBookable(ctx, dbtx, id)
}

func (c *commandReads) BookablePlan(ctx context.Context, dbtx db.DBTX, experienceID, pricingID uuid.UUID) (*pricing.Plan, error) {
	return c.pricings.FindBookable(ctx, dbtx, experienceID, pricingID)
}

func (c *commandReads) Override(ctx context.Context, dbtx db.DBTX, experienceID uuid.UUID, date time.Time) (*pricing.Override, error) {
	return c.availability.FindOverride(ctx, dbtx, experienceID, date)
}

func (c *commandReads) UsedCapacity(ctx context.Context, dbtx db.DBTX, pricingID uuid.UUID, date time.Time) (int32, error) {
	return c.bookings.UsedCapacity(ctx, dbtx, pricingID, date)
}

func (c *commandReads) BookingByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return c.bookings.FindByID(ctx, dbtx, id)
}
