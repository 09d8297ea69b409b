package summary_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/core/domain/model/payment"
	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/core/domain/model/user"
	"fuelmarket/internal/pkg/errs"
	"fuelmarket/internal/summary"
)

type MockSummaryOrderRepository struct{ mock.Mock }

func (m *MockSummaryOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSummaryOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSummaryOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockSummaryOrderRepository) GetAllByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockSummaryUserRepository struct{ mock.Mock }

func (m *MockSummaryUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockSummaryLocationRepository struct{ mock.Mock }

func (m *MockSummaryLocationRepository) Get(ctx context.Context, id kernel.UUID) (*order.DeliveryLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.DeliveryLocation), args.Error(1)
}

type MockSummaryPaymentRepository struct{ mock.Mock }

func (m *MockSummaryPaymentRepository) GetAllDue(ctx context.Context) ([]*payment.Record, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*payment.Record), args.Error(1)
}

func (m *MockSummaryPaymentRepository) GetServiceRequest(ctx context.Context, id kernel.UUID) (*payment.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ServiceRequest), args.Error(1)
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	item, err := order.NewItem("Diesel 50L", 2, 450.5, 901, nil, nil)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "FD-1042", kernel.NewUUID(), "NGN", 901, []order.Item{item})
	require.NoError(t, err)

	return o
}

func Test_OrderSummary_WithoutLocationAndSchedule(t *testing.T) {
	ctx := context.Background()
	o := newTestOrder(t)

	orders := &MockSummaryOrderRepository{}
	orders.On("Get", ctx, o.ID()).Return(o, nil)

	users := &MockSummaryUserRepository{}
	users.On("Get", ctx, o.UserID()).Return(&user.User{
		ID:        o.UserID(),
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
	}, nil)

	builder := summary.NewBuilder(orders, users, &MockSummaryLocationRepository{}, &MockSummaryPaymentRepository{})

	text, err := builder.OrderSummary(ctx, o.ID())
	require.NoError(t, err)

	assert.Contains(t, text, "Fuel Delivery Order #FD-1042")
	assert.Contains(t, text, "Customer: Ada Obi")
	assert.Contains(t, text, "Phone: Not provided")
	assert.Contains(t, text, "Items: 2x Diesel 50L - NGN901")
	assert.Contains(t, text, "Total Amount: NGN901")
	assert.Contains(t, text, "Delivery Address: Address not specified")
	assert.Contains(t, text, "Immediate delivery")
	assert.Contains(t, text, "Status: PENDING")
}

func Test_OrderSummary_WithLocationAndSchedule(t *testing.T) {
	ctx := context.Background()
	o := newTestOrder(t)

	locID := kernel.NewUUID()
	require.NoError(t, o.SetDeliveryLocation(locID))
	require.NoError(t, o.ScheduleFor(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)))

	orders := &MockSummaryOrderRepository{}
	orders.On("Get", ctx, o.ID()).Return(o, nil)

	users := &MockSummaryUserRepository{}
	phone := "+2348012345678"
	users.On("Get", ctx, o.UserID()).Return(&user.User{
		ID:        o.UserID(),
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Phone:     &phone,
	}, nil)

	locations := &MockSummaryLocationRepository{}
	locations.On("Get", ctx, locID).Return(&order.DeliveryLocation{
		ID:      locID,
		Address: "12 Marina Rd",
		City:    "Lagos",
		State:   "Lagos",
	}, nil)

	builder := summary.NewBuilder(orders, users, locations, &MockSummaryPaymentRepository{})

	text, err := builder.OrderSummary(ctx, o.ID())
	require.NoError(t, err)

	assert.Contains(t, text, "Phone: +2348012345678")
	assert.Contains(t, text, "Delivery Address: 12 Marina Rd, Lagos, Lagos")
	assert.Contains(t, text, "Scheduled for: Mar 14, 2026 09:30 UTC")
}

func Test_OrderSummary_UnresolvableLocationDegrades(t *testing.T) {
	ctx := context.Background()
	o := newTestOrder(t)

	locID := kernel.NewUUID()
	require.NoError(t, o.SetDeliveryLocation(locID))

	orders := &MockSummaryOrderRepository{}
	orders.On("Get", ctx, o.ID()).Return(o, nil)

	users := &MockSummaryUserRepository{}
	users.On("Get", ctx, o.UserID()).Return(&user.User{ID: o.UserID(), FirstName: "Ada", LastName: "Obi"}, nil)

	locations := &MockSummaryLocationRepository{}
	locations.On("Get", ctx, locID).Return(nil, errs.NewObjectNotFoundError("locationID", locID))

	builder := summary.NewBuilder(orders, users, locations, &MockSummaryPaymentRepository{})

	text, err := builder.OrderSummary(ctx, o.ID())
	require.NoError(t, err)
	assert.Contains(t, text, "Delivery Address: Address not specified")
}

func Test_OrderSummary_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	orders := &MockSummaryOrderRepository{}
	orders.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderID", orderID))

	builder := summary.NewBuilder(orders, &MockSummaryUserRepository{}, &MockSummaryLocationRepository{}, &MockSummaryPaymentRepository{})

	_, err := builder.OrderSummary(ctx, orderID)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_PaymentSummary_WithServiceRequest(t *testing.T) {
	ctx := context.Background()

	srID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	txID := "tx-778"
	createdAt := time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)

	rec := &payment.Record{
		ID:               kernel.NewUUID(),
		ServiceRequestID: &srID,
		UserID:           kernel.NewUUID(),
		DriverID:         &driverID,
		Amount:           15000.5,
		Currency:         "NGN",
		Status:           payment.StatusFailed,
		PaymentMethod:    "card",
		TransactionID:    &txID,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}

	payments := &MockSummaryPaymentRepository{}
	payments.On("GetServiceRequest", ctx, srID).Return(&payment.ServiceRequest{
		ID:            srID,
		FuelType:      pricing.Diesel,
		FuelAmount:    50,
		TotalPrice:    15000.5,
		PickupAddress: "12 Marina Rd",
		Status:        "CONFIRMED",
	}, nil)

	builder := summary.NewBuilder(&MockSummaryOrderRepository{}, &MockSummaryUserRepository{}, &MockSummaryLocationRepository{}, payments)

	text := builder.PaymentSummary(ctx, rec)

	assert.Contains(t, text, "Amount: NGN15000.5")
	assert.Contains(t, text, "Status: FAILED")
	assert.Contains(t, text, "Payment Method: card")
	assert.Contains(t, text, "Transaction ID: tx-778")
	assert.Contains(t, text, "Service Type: Order for DIESEL")
	assert.Contains(t, text, "Fuel quantity: 50")
	assert.Contains(t, text, "Scheduled For: N/A")
	assert.NotContains(t, text, "Service details not found")
}

func Test_PaymentSummary_ServiceDetailsFallback(t *testing.T) {
	ctx := context.Background()

	srID := kernel.NewUUID()
	rec := &payment.Record{
		ID:               kernel.NewUUID(),
		ServiceRequestID: &srID,
		UserID:           kernel.NewUUID(),
		Amount:           200,
		Currency:         "NGN",
		Status:           payment.StatusRefunded,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	payments := &MockSummaryPaymentRepository{}
	payments.On("GetServiceRequest", ctx, srID).Return(nil, errs.NewObjectNotFoundError("serviceRequestID", srID))

	builder := summary.NewBuilder(&MockSummaryOrderRepository{}, &MockSummaryUserRepository{}, &MockSummaryLocationRepository{}, payments)

	text := builder.PaymentSummary(ctx, rec)

	assert.Contains(t, text, "Service details not found")
	assert.Contains(t, text, "Driver ID: N/A")
	assert.Contains(t, text, "Payment Method: N/A")
}
