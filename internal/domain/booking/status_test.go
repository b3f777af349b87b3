//go:build unit

package booking_test

import (
	"testing"

	"github.com/Arman-Arzoo/headout-backend/internal/domain/booking"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	testCases := []struct {
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{booking.StatusPending, booking.StatusConfirmed, true},
		{booking.StatusPending, booking.StatusCancelled, true},
		{booking.StatusPending, booking.StatusCompleted, false},
		{booking.StatusConfirmed, booking.StatusCancelled, true},
		{booking.StatusConfirmed, booking.StatusCompleted, true},
		{booking.StatusConfirmed, booking.StatusPending, false},
		{booking.StatusCancelled, booking.StatusPending, false},
		{booking.StatusCancelled, booking.StatusConfirmed, false},
		{booking.StatusCompleted, booking.StatusPending, false},
		{booking.StatusCompleted, booking.StatusCancelled, false},
	}

	for _, tc := range testCases {
		name := tc.from.String() + "->" + tc.to.String()
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		for _, raw := range []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"} {
			s, err := booking.ParseStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, s.String())
		}
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := booking.ParseStatus("REFUNDED")
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidRequest(err))
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := booking.ParseStatus("pending")
		assert.Error(t, err)
	})
}

func TestOccupiesCapacity(t *testing.T) {
	assert.True(t, booking.StatusPending.OccupiesCapacity())
	assert.True(t, booking.StatusConfirmed.OccupiesCapacity())
	assert.False(t, booking.StatusCancelled.OccupiesCapacity())
	assert.False(t, booking.StatusCompleted.OccupiesCapacity())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusConfirmed.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusCompleted.IsTerminal())
}
