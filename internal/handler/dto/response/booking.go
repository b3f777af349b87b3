package response

import (
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	ExperienceID    uuid.UUID `json:"experienceId"`
	ExperienceTitle string    `json:"experienceTitle"`
	PricingID       uuid.UUID `json:"pricingId"`
	Date            string    `json:"date"`
	StartTime       *string   `json:"startTime,omitempty"`
	EndTime         *string   `json:"endTime,omitempty"`
	Participants    int32     `json:"participants"`
	PricingKind     string    `json:"pricingKind"`
	UnitPriceCents  int64     `json:"unitPriceCents"`
	TotalCents      int64     `json:"totalCents"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	ExperienceID    uuid.UUID `json:"experienceId"`
	ExperienceTitle string    `json:"experienceTitle"`
	Date            string    `json:"date"`
	StartTime       *string   `json:"startTime,omitempty"`
	Participants    int32     `json:"participants"`
	TotalCents      int64     `json:"totalCents"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		UserID:          rm.UserID,
		ExperienceID:    rm.ExperienceID,
		ExperienceTitle: rm.ExperienceTitle,
		PricingID:       rm.PricingID,
		Date:            rm.Date.Format(time.DateOnly),
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		Participants:    rm.Participants,
		PricingKind:     rm.PricingKind,
		UnitPriceCents:  rm.UnitPrice,
		TotalCents:      rm.TotalAmount,
		Currency:        rm.Currency,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		ExperienceID:    rm.ExperienceID,
		ExperienceTitle: rm.ExperienceTitle,
		Date:            rm.Date.Format(time.DateOnly),
		StartTime:       rm.StartTime,
		Participants:    rm.Participants,
		TotalCents:      rm.TotalAmount,
		Currency:        rm.Currency,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
	}
}
