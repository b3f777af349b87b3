package pricing

import (
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"
)

// CalculateTotal computes the booking total for this plan.
//
//	PER_PERSON       unit * participants
//	PER_GROUP        flat unit price; participants may not exceed the group cap
//	HOURLY / DAILY   effective unit (slot override or base) * participants
//
// An unrecognized kind falls back to the unit price so a bad row can never
// produce a zero-charge booking.
func (p *Plan) CalculateTotal(unitPrice int64, participants int32) (int64, error) {
	switch p.kind {
	case KindPerPerson:
		return unitPrice * int64(participants), nil

	case KindPerGroup:
		if p.maxGroupSize != nil && participants > *p.maxGroupSize {
			return 0, apperr.InvalidRequest("maximum group size is %d", *p.maxGroupSize)
		}
		return unitPrice, nil

	case KindHourly, KindDaily:
		return unitPrice * int64(participants), nil

	default:
		return unitPrice, nil
	}
}
