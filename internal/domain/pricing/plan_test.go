//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/pricing"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestReconstruct_KindDiscipline(t *testing.T) {
	base := pricing.PlanSpec{
		ID: uuid.New(), ExperienceID: uuid.New(),
		BasePrice: 1000, Currency: "USD", Active: true,
	}

	testCases := []struct {
		name   string
		mutate func(*pricing.PlanSpec)
		errIs  error
	}{
		{
			name:   "unknown kind rejected",
			mutate: func(s *pricing.PlanSpec) { s.Kind = "WEEKLY" },
			errIs:  pricing.ErrUnknownKind,
		},
		{
			name: "group cap on per-person plan rejected",
			mutate: func(s *pricing.PlanSpec) {
				s.Kind = pricing.KindPerPerson
				s.MaxGroupSize = int32Ptr(5)
			},
			errIs: pricing.ErrGroupSizeWrongKind,
		},
		{
			name: "slots on per-group plan rejected",
			mutate: func(s *pricing.PlanSpec) {
				s.Kind = pricing.KindPerGroup
				s.Slots = []pricing.Slot{pricing.NewSlot(pricing.SlotSpec{ID: uuid.New()})}
			},
			errIs: pricing.ErrSlotsWrongKind,
		},
		{
			name: "inverted validity window rejected",
			mutate: func(s *pricing.PlanSpec) {
				s.Kind = pricing.KindPerPerson
				s.ValidFrom = datePtr(2026, time.June, 10)
				s.ValidTo = datePtr(2026, time.June, 1)
			},
			errIs: pricing.ErrInvalidWindow,
		},
		{
			name:   "negative base price rejected",
			mutate: func(s *pricing.PlanSpec) { s.Kind = pricing.KindDaily; s.BasePrice = -1 },
			errIs:  pricing.ErrNegativePrice,
		},
		{
			name:   "hourly plan with slots accepted",
			mutate: func(s *pricing.PlanSpec) { s.Kind = pricing.KindHourly },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := base
			tc.mutate(&spec)
			_, err := pricing.Reconstruct(spec)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	t.Run("no window always valid", func(t *testing.T) {
		plan, err := pricing.NewPerPersonPlan(uuid.New(), uuid.New(), 1000, "USD", nil, nil)
		require.NoError(t, err)
		assert.NoError(t, plan.ValidateDate(today))
	})

	t.Run("date after validTo rejected", func(t *testing.T) {
		plan, err := pricing.Reconstruct(pricing.PlanSpec{
			ID: uuid.New(), ExperienceID: uuid.New(), Kind: pricing.KindPerPerson,
			BasePrice: 1000, Currency: "USD", Active: true,
			ValidTo: &yesterday,
		})
		require.NoError(t, err)

		err = plan.ValidateDate(today)
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidRequest(err))
		assert.Contains(t, err.Error(), "pricing not valid for selected date")
	})

	t.Run("date before validFrom rejected", func(t *testing.T) {
		plan, err := pricing.Reconstruct(pricing.PlanSpec{
			ID: uuid.New(), ExperienceID: uuid.New(), Kind: pricing.KindPerPerson,
			BasePrice: 1000, Currency: "USD", Active: true,
			ValidFrom: &today,
		})
		require.NoError(t, err)
		assert.Error(t, plan.ValidateDate(yesterday))
	})

	t.Run("window boundaries inclusive", func(t *testing.T) {
		plan, err := pricing.Reconstruct(pricing.PlanSpec{
			ID: uuid.New(), ExperienceID: uuid.New(), Kind: pricing.KindPerPerson,
			BasePrice: 1000, Currency: "USD", Active: true,
			ValidFrom: &yesterday, ValidTo: &today,
		})
		require.NoError(t, err)
		assert.NoError(t, plan.ValidateDate(yesterday))
		assert.NoError(t, plan.ValidateDate(today))
	})

	t.Run("time of day ignored", func(t *testing.T) {
		plan, err := pricing.Reconstruct(pricing.PlanSpec{
			ID: uuid.New(), ExperienceID: uuid.New(), Kind: pricing.KindPerPerson,
			BasePrice: 1000, Currency: "USD", Active: true,
			ValidTo: &today,
		})
		require.NoError(t, err)
		assert.NoError(t, plan.ValidateDate(today.Add(23*time.Hour+59*time.Minute)))
	})
}

func TestValidateParticipants(t *testing.T) {
	plan, err := pricing.NewPerPersonPlan(uuid.New(), uuid.New(), 1000, "USD", int32Ptr(2), int32Ptr(8))
	require.NoError(t, err)

	testCases := []struct {
		name         string
		participants int32
		wantErr      string
	}{
		{name: "below minimum", participants: 1, wantErr: "minimum participants is 2"},
		{name: "at minimum", participants: 2},
		{name: "at maximum", participants: 8},
		{name: "above maximum", participants: 9, wantErr: "maximum participants is 8"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := plan.ValidateParticipants(tc.participants)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsInvalidRequest(err))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestUnitPriceFor(t *testing.T) {
	slotPrice := int64(2500)
	slot := pricing.NewSlot(pricing.SlotSpec{ID: uuid.New(), Price: &slotPrice})
	noPrice := pricing.NewSlot(pricing.SlotSpec{ID: uuid.New()})

	plan, err := pricing.NewHourlyPlan(uuid.New(), uuid.New(), 2000, "USD", []pricing.Slot{slot, noPrice})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), plan.UnitPriceFor(&slot))
	assert.Equal(t, int64(2000), plan.UnitPriceFor(&noPrice))
	assert.Equal(t, int64(2000), plan.UnitPriceFor(nil))
}
