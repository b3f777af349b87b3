package readstore

import (
	"context"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/booking"
	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/infra"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/pgconv"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct{}

func NewBookingReadStore() *BookingReadStore {
	return &BookingReadStore{}
}

const usedCapacitySQL = `
SELECT COALESCE(SUM(participants), 0)
FROM bookings
WHERE pricing_id = $1
  AND date = $2
  AND status IN ('PENDING', 'CONFIRMED')
`

// UsedCapacity sums participants over the bookings occupying the plan's
// capacity on the date. Must run on the admission transaction.
func (r *BookingReadStore) UsedCapacity(ctx context.Context, dbtx db.DBTX, pricingID uuid.UUID, date time.Time) (int32, error) {
	var used int64
	err := dbtx.QueryRow(ctx, usedCapacitySQL, pricingID, pgconv.DateToPgtype(date)).Scan(&used)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum used capacity", err)
	}
	return int32(used), nil
}

const findBookingSQL = `
SELECT id, user_id, experience_id, pricing_id, date, start_time, end_time,
       participants, pricing_kind, unit_price, total_amount, currency,
       status, created_at, updated_at
FROM bookings
WHERE id = $1
`

func (r *BookingReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID    uuid.UUID
		userID       uuid.UUID
		experienceID uuid.UUID
		pricingID    uuid.UUID
		date         pgtype.Date
		startTime    pgtype.Text
		endTime      pgtype.Text
		participants int32
		kind         string
		unitPrice    int64
		totalAmount  int64
		currency     string
		status       string
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, findBookingSQL, id).Scan(
		&bookingID, &userID, &experienceID, &pricingID, &date, &startTime, &endTime,
		&participants, &kind, &unitPrice, &totalAmount, &currency,
		&status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	return booking.Reconstruct(
		bookingID, userID, experienceID, pricingID,
		pricing.NormalizeDate(date.Time),
		pgconv.StringPtrFromPgtype(startTime),
		pgconv.StringPtrFromPgtype(endTime),
		participants,
		pricing.Kind(kind),
		unitPrice, totalAmount, currency,
		booking.Status(status),
		createdAt.Time, updatedAt.Time,
	), nil
}

// BookingViewStore serves the read-side view queries. It runs on the pool
// directly, outside any admission transaction.
type BookingViewStore struct {
	pool *pgxpool.Pool
}

func NewBookingViewStore(pool *pgxpool.Pool) queries.BookingViewRepo {
	return &BookingViewStore{pool: pool}
}

const findBookingViewSQL = `
SELECT b.id, b.user_id, b.experience_id, e.title, b.pricing_id,
       b.date, b.start_time, b.end_time, b.participants,
       b.pricing_kind, b.unit_price, b.total_amount, b.currency,
       b.status, b.created_at, b.updated_at
FROM bookings b
JOIN experiences e ON e.id = b.experience_id
WHERE b.id = $1
`

func (s *BookingViewStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		v         queries.BookingView
		date      pgtype.Date
		startTime pgtype.Text
		endTime   pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, findBookingViewSQL, id).Scan(
		&v.ID, &v.UserID, &v.ExperienceID, &v.ExperienceTitle, &v.PricingID,
		&date, &startTime, &endTime, &v.Participants,
		&v.PricingKind, &v.UnitPrice, &v.TotalAmount, &v.Currency,
		&v.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	v.Date = pricing.NormalizeDate(date.Time)
	v.StartTime = pgconv.StringPtrFromPgtype(startTime)
	v.EndTime = pgconv.StringPtrFromPgtype(endTime)
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time
	return &v, nil
}

const listBookingsByUserSQL = `
SELECT b.id, b.experience_id, e.title, b.date, b.start_time,
       b.participants, b.total_amount, b.currency, b.status, b.created_at
FROM bookings b
JOIN experiences e ON e.id = b.experience_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC
`

func (s *BookingViewStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := s.pool.Query(ctx, listBookingsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()
	return scanBookingList(rows)
}

const findVendorIDSQL = `
SELECT id FROM vendor_profiles WHERE user_id = $1
`

const listBookingsByVendorSQL = `
SELECT b.id, b.experience_id, e.title, b.date, b.start_time,
       b.participants, b.total_amount, b.currency, b.status, b.created_at
FROM bookings b
JOIN experiences e ON e.id = b.experience_id
WHERE e.vendor_id = $1
ORDER BY b.created_at DESC
`

func (s *BookingViewStore) FindByVendorUserID(ctx context.Context, vendorUserID uuid.UUID) ([]*queries.BookingListItem, error) {
	var vendorID uuid.UUID
	if err := s.pool.QueryRow(ctx, findVendorIDSQL, vendorUserID).Scan(&vendorID); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vendor profile not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vendor profile", err)
	}

	rows, err := s.pool.Query(ctx, listBookingsByVendorSQL, vendorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vendor bookings", err)
	}
	defer rows.Close()
	return scanBookingList(rows)
}

func scanBookingList(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var (
			item      queries.BookingListItem
			date      pgtype.Date
			startTime pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.ExperienceID, &item.ExperienceTitle, &date, &startTime,
			&item.Participants, &item.TotalAmount, &item.Currency, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.Date = pricing.NormalizeDate(date.Time)
		item.StartTime = pgconv.StringPtrFromPgtype(startTime)
		item.CreatedAt = createdAt.Time
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}
