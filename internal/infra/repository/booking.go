// Package repository implements the write side against PostgreSQL.
package repository

import (
	"context"
	"errors"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/booking"
	"github.com/Arman-Arzoo/headout-backend/internal/infra"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/pgconv"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type bookingRepository struct{}

func NewBookingRepository() shared.BookingRepository {
	return &bookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, user_id, experience_id, pricing_id, date, start_time, end_time,
	participants, pricing_kind, unit_price, total_amount, currency, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id
`

func (r *bookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(), b.UserID(), b.ExperienceID(), b.PricingID(),
		pgconv.DateToPgtype(b.Date()),
		pgconv.StringPtrToPgtype(b.StartTime()),
		pgconv.StringPtrToPgtype(b.EndTime()),
		b.Participants(), b.PricingKind().String(),
		b.UnitPrice(), b.TotalAmount(), b.Currency(),
		b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, classifyPgErr(err))
	}
	return id, nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1
`

func (r *bookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := dbtx.Exec(ctx, updateBookingStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func classifyPgErr(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.KindDuplicateKey
		case "23503":
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}
