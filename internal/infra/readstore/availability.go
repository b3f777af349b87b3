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

type AvailabilityReadStore struct{}

func NewAvailabilityReadStore() *AvailabilityReadStore {
	return &AvailabilityReadStore{}
}

const findOverrideSQL = `
SELECT experience_id, date, blocked, capacity_override
FROM availability_overrides
WHERE experience_id = $1 AND date = $2
`

// FindOverride returns the availability override for the date, or nil when
// the date has none.
func (r *AvailabilityReadStore) FindOverride(ctx context.Context, dbtx db.DBTX, experienceID uuid.UUID, date time.Time) (*pricing.Override, error) {
	var (
		expID    uuid.UUID
		day      pgtype.Date
		blocked  bool
		capacity pgtype.Int4
	)
	err := dbtx.QueryRow(ctx, findOverrideSQL, experienceID, pgconv.DateToPgtype(date)).Scan(&expID, &day, &blocked, &capacity)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find availability override", err)
	}
	return &pricing.Override{
		ExperienceID:     expID,
		Date:             pricing.NormalizeDate(day.Time),
		Blocked:          blocked,
		CapacityOverride: pgconv.Int32PtrFromPgtype(capacity),
	}, nil
}
