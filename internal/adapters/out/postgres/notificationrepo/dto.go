// Package notificationrepo persists in-app notification records created by
// the dispatcher's database channel.
package notificationrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/notification"
)

// NotificationDTO represents one notification row. Metadata is stored as a
// JSON document; an empty document means no metadata.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Type      string
	Title     string
	Message   string
	ActionURL *string
	Metadata  []byte `gorm:"type:jsonb"`
	IsRead    bool   `gorm:"index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification aggregate to its database representation.
func fromDomain(aggregate *notification.Notification) (NotificationDTO, error) {
	var metadata []byte
	if m := aggregate.Metadata(); len(m) > 0 {
		raw, err := json.Marshal(m)
		if err != nil {
			return NotificationDTO{}, err
		}
		metadata = raw
	}

	return NotificationDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID().Bytes(),
		Type:      aggregate.Type(),
		Title:     aggregate.Title(),
		Message:   aggregate.Message(),
		ActionURL: aggregate.ActionURL(),
		Metadata:  metadata,
		IsRead:    aggregate.IsRead(),
		CreatedAt: aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a notification aggregate.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var metadata map[string]string
	if len(dto.Metadata) > 0 {
		if err := json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return notification.RestoreNotification(notification.RestoreNotificationParams{
		ID:        id,
		UserID:    userID,
		Type:      dto.Type,
		Title:     dto.Title,
		Message:   dto.Message,
		ActionURL: dto.ActionURL,
		Metadata:  metadata,
		IsRead:    dto.IsRead,
		CreatedAt: dto.CreatedAt,
	})
}
