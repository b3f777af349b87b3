package queries

import (
	"context"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/infra"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"

	"github.com/google/uuid"
)

// BookingView is the read model returned to admission callers and detail
// reads. Price fields are the snapshot recorded at admission.
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ExperienceID    uuid.UUID `json:"experience_id"`
	ExperienceTitle string    `json:"experience_title"`
	PricingID       uuid.UUID `json:"pricing_id"`
	Date            time.Time `json:"date"`
	StartTime       *string   `json:"start_time,omitempty"`
	EndTime         *string   `json:"end_time,omitempty"`
	Participants    int32     `json:"participants"`
	PricingKind     string    `json:"pricing_kind"`
	UnitPrice       int64     `json:"unit_price"`
	TotalAmount     int64     `json:"total_amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	ExperienceID    uuid.UUID `json:"experience_id"`
	ExperienceTitle string    `json:"experience_title"`
	Date            time.Time `json:"date"`
	StartTime       *string   `json:"start_time,omitempty"`
	Participants    int32     `json:"participants"`
	TotalAmount     int64     `json:"total_amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	// ListByVendor returns bookings across all experiences owned by the
	// vendor profile of vendorUserID, newest first. NotFound when the user
	// has no vendor profile.
	ListByVendor(ctx context.Context, vendorUserID uuid.UUID) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	FindByVendorUserID(ctx context.Context, vendorUserID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.repo.FindByUserID(ctx, userID)
}

func (q *bookingQueriesImpl) ListByVendor(ctx context.Context, vendorUserID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.repo.FindByVendorUserID(ctx, vendorUserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, apperr.NotFound("vendor profile not found")
		}
		return nil, err
	}
	return items, nil
}
