package readstore

import (
	"context"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/infra"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PricingReadStore struct{}

func NewPricingReadStore() *PricingReadStore {
	return &PricingReadStore{}
}

const findBookablePlanSQL = `
SELECT id, experience_id, kind, base_price, currency,
       min_participants, max_participants, max_group_size,
       valid_from, valid_to, active
FROM experience_pricings
WHERE id = $1
  AND experience_id = $2
  AND active = TRUE
`

const listPlanSlotsSQL = `
SELECT id, date, weekday, start_time, end_time, price, capacity
FROM pricing_slots
WHERE pricing_id = $1
ORDER BY created_at
`

// FindBookable loads an active plan of the experience together with its
// slots. An inactive plan, or one hanging off a different experience, reads
// as missing.
func (r *PricingReadStore) FindBookable(ctx context.Context, dbtx db.DBTX, experienceID, pricingID uuid.UUID) (*pricing.Plan, error) {
	var (
		id              uuid.UUID
		expID           uuid.UUID
		kind            string
		basePrice       int64
		currency        string
		minParticipants pgtype.Int4
		maxParticipants pgtype.Int4
		maxGroupSize    pgtype.Int4
		validFrom       pgtype.Date
		validTo         pgtype.Date
		active          bool
	)
	err := dbtx.QueryRow(ctx, findBookablePlanSQL, pricingID, experienceID).Scan(
		&id, &expID, &kind, &basePrice, &currency,
		&minParticipants, &maxParticipants, &maxGroupSize,
		&validFrom, &validTo, &active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pricing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pricing", err)
	}

	slots, err := r.listSlots(ctx, dbtx, id)
	if err != nil {
		return nil, err
	}

	plan, err := pricing.Reconstruct(pricing.PlanSpec{
		ID:              id,
		ExperienceID:    expID,
		Kind:            pricing.Kind(kind),
		BasePrice:       basePrice,
		Currency:        currency,
		MinParticipants: pgconv.Int32PtrFromPgtype(minParticipants),
		MaxParticipants: pgconv.Int32PtrFromPgtype(maxParticipants),
		MaxGroupSize:    pgconv.Int32PtrFromPgtype(maxGroupSize),
		ValidFrom:       pgconv.DatePtrFromPgtype(validFrom),
		ValidTo:         pgconv.DatePtrFromPgtype(validTo),
		Active:          active,
		Slots:           slots,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct pricing", err)
	}
	return plan, nil
}

func (r *PricingReadStore) listSlots(ctx context.Context, dbtx db.DBTX, pricingID uuid.UUID) ([]pricing.Slot, error) {
	rows, err := dbtx.Query(ctx, listPlanSlotsSQL, pricingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pricing slots", err)
	}
	defer rows.Close()

	var slots []pricing.Slot
	for rows.Next() {
		var (
			id        uuid.UUID
			date      pgtype.Date
			weekday   pgtype.Int4
			startTime pgtype.Text
			endTime   pgtype.Text
			price     pgtype.Int8
			capacity  pgtype.Int4
		)
		if err := rows.Scan(&id, &date, &weekday, &startTime, &endTime, &price, &capacity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pricing slot", err)
		}
		slots = append(slots, pricing.NewSlot(pricing.SlotSpec{
			ID:        id,
			Date:      pgconv.DatePtrFromPgtype(date),
			Weekday:   weekdayPtr(weekday),
			StartTime: pgconv.StringPtrFromPgtype(startTime),
			EndTime:   pgconv.StringPtrFromPgtype(endTime),
			Price:     pgconv.Int64PtrFromPgtype(price),
			Capacity:  pgconv.Int32PtrFromPgtype(capacity),
		}))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pricing slots", err)
	}
	return slots, nil
}

func weekdayPtr(pi pgtype.Int4) *time.Weekday {
	if !pi.Valid {
		return nil
	}
	w := time.Weekday(pi.Int32)
	return &w
}
