// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items live in their own table and are loaded together with the order.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber        string     `gorm:"uniqueIndex"`
	UserID             uuid.UUID  `gorm:"type:uuid;index"`
	DriverID           *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryLocationID *uuid.UUID `gorm:"type:uuid"`
	Status             int        `gorm:"index"`
	TotalAmount        float64
	Currency           string
	ScheduledFor       *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	Notes              string
	CreatedAt          time.Time
	Items              []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line item row. Items are immutable and are
// written once together with their order.
type ItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
	ProductID  *string
	ServiceID  *string
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation. Item rows get fresh identifiers; items carry no identity
// in the domain.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	var driverID *uuid.UUID
	if d := aggregate.Driver(); d != nil {
		raw := d.Bytes()
		driverID = &raw
	}

	var locationID *uuid.UUID
	if l := aggregate.DeliveryLocationID(); l != nil {
		raw := l.Bytes()
		locationID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = ItemDTO{
			ID:         uuid.New(),
			OrderID:    id,
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			TotalPrice: item.TotalPrice(),
			ProductID:  item.ProductID(),
			ServiceID:  item.ServiceID(),
		}
	}

	return OrderDTO{
		ID:                 id,
		OrderNumber:        aggregate.OrderNumber(),
		UserID:             aggregate.UserID().Bytes(),
		DriverID:           driverID,
		DeliveryLocationID: locationID,
		Status:             int(aggregate.Status()),
		TotalAmount:        aggregate.TotalAmount(),
		Currency:           aggregate.Currency(),
		ScheduledFor:       aggregate.ScheduledFor(),
		CompletedAt:        aggregate.CompletedAt(),
		CancelledAt:        aggregate.CancelledAt(),
		Notes:              aggregate.Notes(),
		CreatedAt:          aggregate.CreatedAt(),
		Items:              itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate, rebuilding
// line items and reconstructing the aggregate through RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	locationID, err := optionalUUID(dto.DeliveryLocationID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, len(dto.Items))
	for i, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.Name,
			itemDTO.Quantity,
			itemDTO.UnitPrice,
			itemDTO.TotalPrice,
			itemDTO.ProductID,
			itemDTO.ServiceID,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items[i] = item
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		OrderNumber:        dto.OrderNumber,
		UserID:             userID,
		Status:             order.Status(dto.Status),
		TotalAmount:        dto.TotalAmount,
		Currency:           dto.Currency,
		DriverID:           driverID,
		DeliveryLocationID: locationID,
		ScheduledFor:       dto.ScheduledFor,
		CompletedAt:        dto.CompletedAt,
		CancelledAt:        dto.CancelledAt,
		Notes:              dto.Notes,
		Items:              items,
		CreatedAt:          dto.CreatedAt,
	})
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}
