// Package pricing models an experience's pricing plans: the plan kinds, their
// slots, availability overrides and the pure admission rules (date window,
// participant bounds, slot resolution, price calculation).
package pricing

import (
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPerPerson Kind = "PER_PERSON"
	KindPerGroup  Kind = "PER_GROUP"
	KindHourly    Kind = "HOURLY"
	KindDaily     Kind = "DAILY"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindPerPerson, KindPerGroup, KindHourly, KindDaily:
		return true
	default:
		return false
	}
}

// slotted reports whether the kind prices through time/day slots.
func (k Kind) slotted() bool {
	return k == KindHourly || k == KindDaily
}

var (
	ErrUnknownKind        = errs.New("unknown pricing kind")
	ErrGroupSizeWrongKind = errs.New("max group size only applies to PER_GROUP plans")
	ErrSlotsWrongKind     = errs.New("slots only apply to HOURLY and DAILY plans")
	ErrNegativePrice      = errs.New("price cannot be negative")
	ErrInvalidWindow      = errs.New("validity window start must not be after end")
)

// Plan is one pricing strategy of an experience. Kind-specific fields are
// enforced at construction so a PER_PERSON plan can never carry a group cap
// and a non-slotted plan can never carry slots.
type Plan struct {
	id              uuid.UUID
	experienceID    uuid.UUID
	kind            Kind
	basePrice       int64
	currency        string
	minParticipants *int32
	maxParticipants *int32
	maxGroupSize    *int32
	validFrom       *time.Time
	validTo         *time.Time
	active          bool
	slots           []Slot
}

// PlanSpec carries the raw attributes of a plan row. Reconstruct applies the
// same kind/field discipline as the per-kind constructors.
type PlanSpec struct {
	ID              uuid.UUID
	ExperienceID    uuid.UUID
	Kind            Kind
	BasePrice       int64
	Currency        string
	MinParticipants *int32
	MaxParticipants *int32
	MaxGroupSize    *int32
	ValidFrom       *time.Time
	ValidTo         *time.Time
	Active          bool
	Slots           []Slot
}

func Reconstruct(spec PlanSpec) (*Plan, error) {
	if !spec.Kind.IsValid() {
		return nil, ErrUnknownKind
	}
	if spec.BasePrice < 0 {
		return nil, ErrNegativePrice
	}
	if spec.MaxGroupSize != nil && spec.Kind != KindPerGroup {
		return nil, ErrGroupSizeWrongKind
	}
	if len(spec.Slots) > 0 && !spec.Kind.slotted() {
		return nil, ErrSlotsWrongKind
	}
	if spec.ValidFrom != nil && spec.ValidTo != nil && spec.ValidFrom.After(*spec.ValidTo) {
		return nil, ErrInvalidWindow
	}
	return &Plan{
		id:              spec.ID,
		experienceID:    spec.ExperienceID,
		kind:            spec.Kind,
		basePrice:       spec.BasePrice,
		currency:        spec.Currency,
		minParticipants: spec.MinParticipants,
		maxParticipants: spec.MaxParticipants,
		maxGroupSize:    spec.MaxGroupSize,
		validFrom:       normalizeDatePtr(spec.ValidFrom),
		validTo:         normalizeDatePtr(spec.ValidTo),
		active:          spec.Active,
		slots:           spec.Slots,
	}, nil
}

func NewPerPersonPlan(id, experienceID uuid.UUID, unitPrice int64, currency string, minP, maxP *int32) (*Plan, error) {
	return Reconstruct(PlanSpec{
		ID: id, ExperienceID: experienceID, Kind: KindPerPerson,
		BasePrice: unitPrice, Currency: currency,
		MinParticipants: minP, MaxParticipants: maxP, Active: true,
	})
}

func NewPerGroupPlan(id, experienceID uuid.UUID, groupPrice int64, currency string, maxGroupSize *int32) (*Plan, error) {
	return Reconstruct(PlanSpec{
		ID: id, ExperienceID: experienceID, Kind: KindPerGroup,
		BasePrice: groupPrice, Currency: currency,
		MaxGroupSize: maxGroupSize, Active: true,
	})
}

func NewHourlyPlan(id, experienceID uuid.UUID, basePrice int64, currency string, slots []Slot) (*Plan, error) {
	return Reconstruct(PlanSpec{
		ID: id, ExperienceID: experienceID, Kind: KindHourly,
		BasePrice: basePrice, Currency: currency,
		Slots: slots, Active: true,
	})
}

func NewDailyPlan(id, experienceID uuid.UUID, basePrice int64, currency string, slots []Slot) (*Plan, error) {
	return Reconstruct(PlanSpec{
		ID: id, ExperienceID: experienceID, Kind: KindDaily,
		BasePrice: basePrice, Currency: currency,
		Slots: slots, Active: true,
	})
}

func (p *Plan) ID() uuid.UUID           { return p.id }
func (p *Plan) ExperienceID() uuid.UUID { return p.experienceID }
func (p *Plan) Kind() Kind              { return p.kind }
func (p *Plan) BasePrice() int64        { return p.basePrice }
func (p *Plan) Currency() string        { return p.currency }
func (p *Plan) Active() bool            { return p.active }
func (p *Plan) MaxGroupSize() *int32    { return p.maxGroupSize }
func (p *Plan) Slots() []Slot           { return p.slots }

// ValidateDate rejects requested dates outside the plan's validity window.
// A plan with no window is valid for any date.
func (p *Plan) ValidateDate(date time.Time) error {
	d := NormalizeDate(date)
	if p.validFrom != nil && d.Before(*p.validFrom) {
		return apperr.InvalidRequest("pricing not valid for selected date")
	}
	if p.validTo != nil && d.After(*p.validTo) {
		return apperr.InvalidRequest("pricing not valid for selected date")
	}
	return nil
}

// ValidateParticipants checks the plan's min/max headcount bounds. The
// PER_GROUP group-size cap is deliberately not checked here: it caps the
// group at pricing time, not the headcount field shared by all kinds.
func (p *Plan) ValidateParticipants(participants int32) error {
	if p.minParticipants != nil && participants < *p.minParticipants {
		return apperr.InvalidRequest("minimum participants is %d", *p.minParticipants)
	}
	if p.maxParticipants != nil && participants > *p.maxParticipants {
		return apperr.InvalidRequest("maximum participants is %d", *p.maxParticipants)
	}
	return nil
}

// RequiresSlot reports whether admission must resolve a slot for this plan.
func (p *Plan) RequiresSlot() bool {
	return p.kind.slotted() && len(p.slots) > 0
}

// UnitPriceFor returns the effective unit price: the resolved slot's price
// when it carries one, otherwise the plan's base price.
func (p *Plan) UnitPriceFor(slot *Slot) int64 {
	if slot != nil && slot.Price() != nil {
		return *slot.Price()
	}
	return p.basePrice
}

// NormalizeDate strips the time-of-day component, comparing by calendar date
// in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := NormalizeDate(*t)
	return &d
}
