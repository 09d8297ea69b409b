package order_test

import (
	"testing"

	"fuelmarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:    "UNKNOWN",
		order.Pending:    "PENDING",
		order.Confirmed:  "CONFIRMED",
		order.InProgress: "IN_PROGRESS",
		order.Completed:  "COMPLETED",
		order.Cancelled:  "CANCELLED",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("should resolve valid status strings", func(t *testing.T) {
		status, err := order.StatusFromString("IN_PROGRESS")

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, status)
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		_, err := order.StatusFromString("SHIPPED")

		assert.Error(t, err)
	})

	t.Run("should reject UNKNOWN itself", func(t *testing.T) {
		_, err := order.StatusFromString("UNKNOWN")

		assert.Error(t, err)
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Run("confirm is only valid from pending", func(t *testing.T) {
		next, err := order.Pending.Confirm()
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, next)

		for _, s := range []order.Status{order.Confirmed, order.InProgress, order.Completed, order.Cancelled} {
			_, err := s.Confirm()
			assert.Error(t, err, s.String())
		}
	})

	t.Run("start is valid from pending and confirmed", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Confirmed} {
			next, err := s.Start()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.InProgress, next)
		}

		for _, s := range []order.Status{order.InProgress, order.Completed, order.Cancelled} {
			_, err := s.Start()
			assert.Error(t, err, s.String())
		}
	})

	t.Run("complete is only valid from in progress", func(t *testing.T) {
		next, err := order.InProgress.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.Completed, next)

		for _, s := range []order.Status{order.Pending, order.Confirmed, order.Completed, order.Cancelled} {
			_, err := s.Complete()
			assert.Error(t, err, s.String())
		}
	})

	t.Run("cancel is valid from pending and confirmed", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Confirmed} {
			next, err := s.Cancel()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Cancelled, next)
		}

		for _, s := range []order.Status{order.InProgress, order.Completed, order.Cancelled} {
			_, err := s.Cancel()
			assert.Error(t, err, s.String())
		}
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Confirmed.IsTerminal())
	assert.False(t, order.InProgress.IsTerminal())
}
