package readstore

import (
	"context"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/experience"
	"github.com/Arman-Arzoo/headout-backend/internal/infra"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ExperienceReadStore struct{}

func NewExperienceReadStore() *ExperienceReadStore {
	return &ExperienceReadStore{}
}

const findBookableExperienceSQL = `
SELECT id, vendor_id, status, deleted_at
FROM experiences
WHERE id = $1
  AND status = 'PUBLISHED'
  AND deleted_at IS NULL
`

// FindBookable resolves a published, non-deleted experience. Draft, archived
// and soft-deleted rows are indistinguishable from missing ones.
func (r *ExperienceReadStore) FindBookable(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*experience.Experience, error) {
	var (
		expID     uuid.UUID
		vendorID  uuid.UUID
		status    string
		deletedAt pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, findBookableExperienceSQL, id).Scan(&expID, &vendorID, &status, &deletedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("experience not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find experience", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		t := deletedAt.Time
		deleted = &t
	}
	return experience.Reconstruct(expID, vendorID, experience.Status(status), deleted), nil
}
