package request

import (
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ExperienceID uuid.UUID `json:"experience_id" binding:"required"`
	PricingID    uuid.UUID `json:"pricing_id" binding:"required"`
	Participants int32     `json:"participants" binding:"required,gt=0"`
	Date         string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime    *string   `json:"start_time,omitempty" binding:"omitempty,datetime=15:04"`
	EndTime      *string   `json:"end_time,omitempty" binding:"omitempty,datetime=15:04"`
}

// ToParams converts the validated request into admission parameters. The
// date is interpreted as a calendar date in UTC.
func (r CreateBookingRequest) ToParams() (commands.CreateBookingParams, error) {
	date, err := time.ParseInLocation(time.DateOnly, r.Date, time.UTC)
	if err != nil {
		return commands.CreateBookingParams{}, err
	}
	return commands.CreateBookingParams{
		ExperienceID: r.ExperienceID,
		PricingID:    r.PricingID,
		Participants: r.Participants,
		Date:         date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
