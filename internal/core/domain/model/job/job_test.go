package job_test

import (
	"testing"
	"time"

	"fuelmarket/internal/core/domain/model/job"
	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem("DIESEL fuel (50L)", 1, 5030, 5030, nil, nil)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "FD-7", kernel.NewUUID(), "NGN", 5030, []order.Item{item})
	require.NoError(t, err)
	require.NoError(t, o.ScheduleFor(time.Now().Add(2*time.Hour)))
	return o
}

func TestNewDeliveryJob(t *testing.T) {
	t.Run("should snapshot the order keyed by its id", func(t *testing.T) {
		o := scheduledOrder(t)

		j, err := job.NewDeliveryJob(o)

		require.NoError(t, err)
		assert.Equal(t, "delivery:"+o.ID().String(), j.Key)
		assert.Equal(t, job.KindDelivery, j.Kind)
		assert.Equal(t, job.DefaultMaxAttempts, j.MaxAttempts)
		assert.Zero(t, j.Attempts)
		assert.False(t, j.EnqueuedAt.IsZero())

		require.NotNil(t, j.Delivery)
		assert.Equal(t, o.ID().String(), j.Delivery.OrderID)
		assert.Equal(t, o.UserID().String(), j.Delivery.UserID)
		assert.Equal(t, "FD-7", j.Delivery.OrderNumber)
		assert.Equal(t, 5030.0, j.Delivery.TotalAmount)
		assert.Equal(t, "NGN", j.Delivery.Currency)
		assert.Equal(t, o.ScheduledFor(), j.Delivery.ScheduledFor)
	})

	t.Run("should reject an unconstructed order", func(t *testing.T) {
		_, err := job.NewDeliveryJob(&order.Order{})

		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestJobValidate(t *testing.T) {
	t.Run("should accept a well formed delivery job", func(t *testing.T) {
		j, err := job.NewDeliveryJob(scheduledOrder(t))

		require.NoError(t, err)
		assert.NoError(t, j.Validate())
	})

	t.Run("should reject a missing key", func(t *testing.T) {
		j := job.Job{Kind: job.KindDelivery, Delivery: &job.DeliveryPayload{}}

		assert.Error(t, j.Validate())
	})

	t.Run("should reject an unknown kind", func(t *testing.T) {
		j := job.Job{Key: "x:1", Kind: "payment-capture"}

		assert.Error(t, j.Validate())
	})

	t.Run("should reject a delivery job without payload", func(t *testing.T) {
		j := job.Job{Key: "delivery:1", Kind: job.KindDelivery}

		assert.Error(t, j.Validate())
	})
}

func TestJobExhausted(t *testing.T) {
	j := job.Job{MaxAttempts: 3}

	for attempts, exhausted := range map[int]bool{0: false, 2: false, 3: true, 4: true} {
		j.Attempts = attempts
		assert.Equal(t, exhausted, j.Exhausted(), "attempts=%d", attempts)
	}
}
