package pricing

import (
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"

	"github.com/google/uuid"
)

// Slot is a concrete bookable unit under an HOURLY or DAILY plan: either a
// one-off date override or a recurring weekday rule. Start/end times are
// "HH:MM" strings matched verbatim.
type Slot struct {
	id        uuid.UUID
	date      *time.Time
	weekday   *time.Weekday
	startTime *string
	endTime   *string
	price     *int64
	capacity  *int32
}

type SlotSpec struct {
	ID        uuid.UUID
	Date      *time.Time
	Weekday   *time.Weekday
	StartTime *string
	EndTime   *string
	Price     *int64
	Capacity  *int32
}

func NewSlot(spec SlotSpec) Slot {
	return Slot{
		id:        spec.ID,
		date:      normalizeDatePtr(spec.Date),
		weekday:   spec.Weekday,
		startTime: spec.StartTime,
		endTime:   spec.EndTime,
		price:     spec.Price,
		capacity:  spec.Capacity,
	}
}

func (s Slot) ID() uuid.UUID          { return s.id }
func (s Slot) Date() *time.Time       { return s.date }
func (s Slot) Weekday() *time.Weekday { return s.weekday }
func (s Slot) StartTime() *string     { return s.startTime }
func (s Slot) EndTime() *string       { return s.endTime }
func (s Slot) Price() *int64          { return s.price }
func (s Slot) Capacity() *int32       { return s.capacity }

// ResolveSlot selects the slot serving the requested date and, for HOURLY
// plans, start time. Date-specific slots always beat recurring weekday rules
// for the same date, regardless of slot ordering.
func (p *Plan) ResolveSlot(date time.Time, startTime *string) (*Slot, error) {
	if !p.RequiresSlot() {
		return nil, nil
	}

	d := NormalizeDate(date)

	for i := range p.slots {
		s := &p.slots[i]
		if s.date != nil && s.date.Equal(d) {
			return s, nil
		}
	}

	weekday := d.Weekday()
	for i := range p.slots {
		s := &p.slots[i]
		if s.date != nil || s.weekday == nil || *s.weekday != weekday {
			continue
		}
		if p.kind == KindHourly {
			// exact start-time match, no range logic
			if s.startTime == nil || startTime == nil || *s.startTime != *startTime {
				continue
			}
		}
		return s, nil
	}

	return nil, apperr.InvalidRequest("no pricing available for selected time")
}

// Override is a per-date availability exception for an experience. A blocked
// date is never bookable; a capacity override supersedes the slot's own
// ceiling for that date.
type Override struct {
	ExperienceID     uuid.UUID
	Date             time.Time
	Blocked          bool
	CapacityOverride *int32
}

// EffectiveCeiling applies the override precedence: override capacity if set,
// else the slot's own capacity, else nil meaning unconstrained.
func EffectiveCeiling(override *Override, slot *Slot) *int32 {
	if override != nil && override.CapacityOverride != nil {
		return override.CapacityOverride
	}
	if slot != nil {
		return slot.Capacity()
	}
	return nil
}
