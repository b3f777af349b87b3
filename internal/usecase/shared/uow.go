package shared

import (
	"context"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/booking"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/experience"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"

	"github.com/google/uuid"
)

// AdmissionKey identifies the capacity bucket an admission competes for.
// Concurrent admissions for the same key are serialized by the unit of work.
type AdmissionKey struct {
	PricingID uuid.UUID
	Date      time.Time
}

type UnitOfWork interface {
	// WithinAdmission runs fn in a transaction holding an exclusive lock for
	// key, so the capacity aggregate and the booking insert are atomic with
	// respect to competing admissions. Serialization failures and deadlocks
	// are retried a bounded number of times.
	WithinAdmission(ctx context.Context, key AdmissionKey, fn func(ctx context.Context, tx Tx) error) error
	// Within runs fn in a plain read-committed transaction.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write-path point reads. They run on the calling
// transaction's handle.
type CommandReads interface {
	// BookableExperience resolves a published, non-deleted experience.
	// Missing and ineligible collapse to the same not-found signal.
	BookableExperience(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*experience.Experience, error)
	// BookablePlan resolves an active plan of the experience, slots included.
	BookablePlan(ctx context.Context, dbtx db.DBTX, experienceID, pricingID uuid.UUID) (*pricing.Plan, error)
	// Override returns the availability override for the date, or nil.
	Override(ctx context.Context, dbtx db.DBTX, experienceID uuid.UUID, date time.Time) (*pricing.Override, error)
	// UsedCapacity sums participants over PENDING and CONFIRMED bookings of
	// the plan on the date.
	UsedCapacity(ctx context.Context, dbtx db.DBTX, pricingID uuid.UUID, date time.Time) (int32, error)
	// BookingByID loads the full booking aggregate.
	BookingByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error)
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error
}
