package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelmarket/internal/core/application/usecases/commands"
	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/pricing"
)

func validPlaceOrderParams() commands.PlaceOrderParams {
	return commands.PlaceOrderParams{
		OrderID:      kernel.NewUUID(),
		UserID:       kernel.NewUUID(),
		FuelType:     pricing.Diesel,
		DeliveryMode: pricing.Standard,
		Quantity:     50,
		Distance:     10,
	}
}

func Test_NewPlaceOrderCommand_Valid(t *testing.T) {
	params := validPlaceOrderParams()

	cmd, err := commands.NewPlaceOrderCommand(params)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.True(t, params.OrderID.IsEqual(cmd.OrderID()))
	assert.True(t, params.UserID.IsEqual(cmd.UserID()))
	assert.Equal(t, pricing.Diesel, cmd.FuelType())
	assert.Equal(t, pricing.Standard, cmd.DeliveryMode())
	assert.Equal(t, float64(50), cmd.Quantity())
	assert.Equal(t, float64(10), cmd.Distance())
	assert.Equal(t, "NGN", cmd.Currency(), "empty currency should default")
	assert.Nil(t, cmd.ScheduledFor())
	assert.Nil(t, cmd.DeliveryLocationID())
}

func Test_NewPlaceOrderCommand_ExplicitCurrencyAndSchedule(t *testing.T) {
	params := validPlaceOrderParams()
	scheduled := time.Now().Add(4 * time.Hour)
	params.Currency = "USD"
	params.ScheduledFor = &scheduled

	cmd, err := commands.NewPlaceOrderCommand(params)
	require.NoError(t, err)

	assert.Equal(t, "USD", cmd.Currency())
	require.NotNil(t, cmd.ScheduledFor())
	assert.True(t, scheduled.Equal(*cmd.ScheduledFor()))
}

func Test_NewPlaceOrderCommand_CallerItems(t *testing.T) {
	productID := "prod-77"
	params := validPlaceOrderParams()
	params.Items = []commands.PlaceOrderItemParams{
		{Name: "Diesel 40L", Quantity: 2, UnitPrice: 20500, ProductID: &productID},
		{Name: "Jerry can", Quantity: 1, UnitPrice: 1500},
	}

	cmd, err := commands.NewPlaceOrderCommand(params)
	require.NoError(t, err)

	items := cmd.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Diesel 40L", items[0].Name())
	assert.Equal(t, 2, items[0].Quantity())
	assert.Equal(t, float64(20500), items[0].UnitPrice())
	assert.Equal(t, float64(41000), items[0].TotalPrice(), "line total derives from unit price")
	require.NotNil(t, items[0].ProductID())
	assert.Equal(t, productID, *items[0].ProductID())
	assert.Equal(t, float64(1500), items[1].TotalPrice())
}

func Test_NewPlaceOrderCommand_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*commands.PlaceOrderParams)
	}{
		{
			name:   "zero order id",
			mutate: func(p *commands.PlaceOrderParams) { p.OrderID = kernel.UUID{} },
		},
		{
			name:   "zero user id",
			mutate: func(p *commands.PlaceOrderParams) { p.UserID = kernel.UUID{} },
		},
		{
			name:   "unknown fuel type",
			mutate: func(p *commands.PlaceOrderParams) { p.FuelType = "KEROSENE" },
		},
		{
			name:   "unknown delivery mode",
			mutate: func(p *commands.PlaceOrderParams) { p.DeliveryMode = "OVERNIGHT" },
		},
		{
			name:   "zero quantity",
			mutate: func(p *commands.PlaceOrderParams) { p.Quantity = 0 },
		},
		{
			name:   "negative quantity",
			mutate: func(p *commands.PlaceOrderParams) { p.Quantity = -5 },
		},
		{
			name:   "negative distance",
			mutate: func(p *commands.PlaceOrderParams) { p.Distance = -1 },
		},
		{
			name: "item without a name",
			mutate: func(p *commands.PlaceOrderParams) {
				p.Items = []commands.PlaceOrderItemParams{{Name: "", Quantity: 1, UnitPrice: 100}}
			},
		},
		{
			name: "item with zero quantity",
			mutate: func(p *commands.PlaceOrderParams) {
				p.Items = []commands.PlaceOrderItemParams{{Name: "Diesel 40L", Quantity: 0, UnitPrice: 100}}
			},
		},
		{
			name: "item with negative unit price",
			mutate: func(p *commands.PlaceOrderParams) {
				p.Items = []commands.PlaceOrderItemParams{{Name: "Diesel 40L", Quantity: 1, UnitPrice: -1}}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := validPlaceOrderParams()
			tc.mutate(&params)

			_, err := commands.NewPlaceOrderCommand(params)
			assert.Error(t, err)
		})
	}
}

func Test_PlaceOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.PlaceOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
}
