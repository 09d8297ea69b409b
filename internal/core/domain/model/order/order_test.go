package order_test

import (
	"testing"
	"time"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem(t *testing.T) order.Item {
	t.Helper()
	item, err := order.NewItem("DIESEL fuel (50L)", 1, 5030, 5030, nil, nil)
	require.NoError(t, err)
	return item
}

func validOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "FD-1", kernel.NewUUID(), "NGN", 5030, []order.Item{validItem(t)})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending order", func(t *testing.T) {
		id := kernel.NewUUID()
		userID := kernel.NewUUID()

		o, err := order.NewOrder(id, "FD-1", userID, "NGN", 5030, []order.Item{validItem(t)})

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.UserID().IsEqual(userID))
		assert.Equal(t, "FD-1", o.OrderNumber())
		assert.Equal(t, 5030.0, o.TotalAmount())
		assert.Equal(t, "NGN", o.Currency())
		assert.Nil(t, o.Driver())
		assert.Nil(t, o.ScheduledFor())
		assert.Len(t, o.Items(), 1)
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("should reject empty order number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", kernel.NewUUID(), "NGN", 100, []order.Item{validItem(t)})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty currency", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "FD-1", kernel.NewUUID(), "", 100, []order.Item{validItem(t)})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative total amount", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "FD-1", kernel.NewUUID(), "NGN", -1, []order.Item{validItem(t)})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an order without items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "FD-1", kernel.NewUUID(), "NGN", 100, nil)

		assert.Error(t, err)
	})
}

func TestOrderValidate(t *testing.T) {
	t.Run("should fail for a directly initialized order", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should pass for a constructed order", func(t *testing.T) {
		assert.NoError(t, validOrder(t).Validate())
	})
}

func TestOrderScheduleFor(t *testing.T) {
	t.Run("should store the schedule in UTC", func(t *testing.T) {
		o := validOrder(t)
		loc := time.FixedZone("WAT", 3600)
		at := time.Date(2026, time.June, 1, 10, 0, 0, 0, loc)

		require.NoError(t, o.ScheduleFor(at))

		require.NotNil(t, o.ScheduledFor())
		assert.Equal(t, at.UTC(), *o.ScheduledFor())
	})

	t.Run("should reject a zero time", func(t *testing.T) {
		o := validOrder(t)

		assert.ErrorIs(t, o.ScheduleFor(time.Time{}), errs.ErrValueIsRequired)
	})

	t.Run("should reject rescheduling once delivery is underway", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))

		err := o.ScheduleFor(time.Now().Add(time.Hour))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrderLifecycle(t *testing.T) {
	t.Run("should walk pending -> confirmed -> in progress -> completed", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.Confirm())
		assert.Equal(t, order.Confirmed, o.Status())

		require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		assert.Equal(t, order.InProgress, o.Status())
		assert.NotNil(t, o.Driver())

		at := time.Date(2026, time.June, 1, 11, 0, 0, 0, time.UTC)
		require.NoError(t, o.Complete(at))
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, at, *o.CompletedAt())
	})

	t.Run("should assign a driver straight from pending", func(t *testing.T) {
		o := validOrder(t)
		driverID := kernel.NewUUID()

		require.NoError(t, o.AssignDriver(driverID))

		assert.Equal(t, order.InProgress, o.Status())
		assert.True(t, o.Driver().IsEqual(driverID))
	})

	t.Run("should not confirm twice", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.Confirm())

		assert.Error(t, o.Confirm())
	})

	t.Run("should not complete a pending order", func(t *testing.T) {
		o := validOrder(t)

		assert.Error(t, o.Complete(time.Now()))
	})

	t.Run("should cancel a pending order", func(t *testing.T) {
		o := validOrder(t)
		at := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, o.Cancel(at))

		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, at, *o.CancelledAt())
	})

	t.Run("should not cancel once a driver is underway", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))

		assert.Error(t, o.Cancel(time.Now()))
	})

	t.Run("should not assign a driver to a completed order", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		require.NoError(t, o.Complete(time.Now()))

		assert.Error(t, o.AssignDriver(kernel.NewUUID()))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reconstruct persisted state as-is", func(t *testing.T) {
		id := kernel.NewUUID()
		userID := kernel.NewUUID()
		driverID := kernel.NewUUID()
		scheduled := time.Date(2026, time.June, 2, 9, 0, 0, 0, time.UTC)
		created := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)

		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:           id,
			OrderNumber:  "FD-42",
			UserID:       userID,
			Status:       order.InProgress,
			TotalAmount:  5030,
			Currency:     "NGN",
			DriverID:     &driverID,
			ScheduledFor: &scheduled,
			Notes:        "Call at the gate",
			Items:        []order.Item{validItem(t)},
			CreatedAt:    created,
		})

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		assert.True(t, o.Driver().IsEqual(driverID))
		assert.Equal(t, &scheduled, o.ScheduledFor())
		assert.Equal(t, "Call at the gate", o.Notes())
		assert.Equal(t, created, o.CreatedAt())
	})

	t.Run("should reject a corrupted status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          kernel.NewUUID(),
			OrderNumber: "FD-42",
			UserID:      kernel.NewUUID(),
			Status:      order.Status(99),
			TotalAmount: 100,
			Currency:    "NGN",
			Items:       []order.Item{validItem(t)},
			CreatedAt:   time.Now(),
		})

		assert.Error(t, err)
	})
}
