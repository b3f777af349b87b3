//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestVendor(t *testing.T, db DBLike, userID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	vendorID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO vendor_profiles (id, user_id, name) VALUES ($1, $2, $3)",
		vendorID, userID, name)
	require.NoError(t, err)
	return vendorID
}

func CreateTestExperience(t *testing.T, db DBLike, vendorID uuid.UUID, title, status string) uuid.UUID {
	t.Helper()

	experienceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO experiences (id, vendor_id, title, status) VALUES ($1, $2, $3, $4)",
		experienceID, vendorID, title, status)
	require.NoError(t, err)
	return experienceID
}

type PricingFixture struct {
	Kind            string
	BasePrice       int64
	Currency        string
	MinParticipants *int32
	MaxParticipants *int32
	MaxGroupSize    *int32
	ValidFrom       *time.Time
	ValidTo         *time.Time
	Inactive        bool
}

func CreateTestPricing(t *testing.T, db DBLike, experienceID uuid.UUID, f PricingFixture) uuid.UUID {
	t.Helper()

	if f.Currency == "" {
		f.Currency = "USD"
	}
	pricingID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO experience_pricings
		   (id, experience_id, kind, base_price, currency,
		    min_participants, max_participants, max_group_size,
		    valid_from, valid_to, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		pricingID, experienceID, f.Kind, f.BasePrice, f.Currency,
		f.MinParticipants, f.MaxParticipants, f.MaxGroupSize,
		f.ValidFrom, f.ValidTo, !f.Inactive)
	require.NoError(t, err)
	return pricingID
}

type SlotFixture struct {
	Date      *time.Time
	Weekday   *int32
	StartTime *string
	EndTime   *string
	Price     *int64
	Capacity  *int32
}

func CreateTestSlot(t *testing.T, db DBLike, pricingID uuid.UUID, f SlotFixture) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO pricing_slots (id, pricing_id, date, weekday, start_time, end_time, price, capacity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		slotID, pricingID, f.Date, f.Weekday, f.StartTime, f.EndTime, f.Price, f.Capacity)
	require.NoError(t, err)
	return slotID
}

func CreateTestOverride(t *testing.T, db DBLike, experienceID uuid.UUID, date time.Time, blocked bool, capacityOverride *int32) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO availability_overrides (experience_id, date, blocked, capacity_override)
		 VALUES ($1, $2, $3, $4)`,
		experienceID, date, blocked, capacityOverride)
	require.NoError(t, err)
}

// ResetDB truncates all mutable tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx,
		`TRUNCATE bookings, availability_overrides, pricing_slots,
		          experience_pricings, experiences, vendor_profiles CASCADE`)
	return err
}

func Int32Ptr(v int32) *int32    { return &v }
func Int64Ptr(v int64) *int64    { return &v }
func StringPtr(v string) *string { return &v }
