package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryMethodModel mirrors the 'delivery_methods' table.
type DeliveryMethodModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Type              string    `gorm:"type:varchar(50);unique;not null"`
	Price             float64   `gorm:"not null"`
	EstimatedDays     int       `gorm:"not null;default:0"`
	IsActive          bool      `gorm:"not null;default:true"`
	RegionRestriction string    `gorm:"type:varchar(100)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeliveryMethodModel) TableName() string {
	return "delivery_methods"
}
