package model

import (
	"time"

	"github.com/google/uuid"
)

// UserDeviceModel is the GORM model for push notification targets.
type UserDeviceModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_device,priority:1"`
	FCMToken  string    `gorm:"column:fcm_token;type:text;not null"`
	DeviceID  string    `gorm:"column:device_id;type:varchar(255);not null;uniqueIndex:idx_user_device,priority:2"`
	Platform  string    `gorm:"column:platform;type:varchar(20);not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the UserDeviceModel.
func (UserDeviceModel) TableName() string {
	return "user_devices"
}
