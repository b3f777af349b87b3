package experience

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) String() string {
	return string(s)
}

// Experience is read-only to the booking engine; vendors manage it elsewhere.
type Experience struct {
	id        uuid.UUID
	vendorID  uuid.UUID
	status    Status
	deletedAt *time.Time
}

func Reconstruct(id, vendorID uuid.UUID, status Status, deletedAt *time.Time) *Experience {
	return &Experience{
		id:        id,
		vendorID:  vendorID,
		status:    status,
		deletedAt: deletedAt,
	}
}

func (e *Experience) ID() uuid.UUID         { return e.id }
func (e *Experience) VendorID() uuid.UUID   { return e.vendorID }
func (e *Experience) Status() Status        { return e.status }
func (e *Experience) DeletedAt() *time.Time { return e.deletedAt }

func (e *Experience) Bookable() bool {
	return e.status == StatusPublished && e.deletedAt == nil
}
