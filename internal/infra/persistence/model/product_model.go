package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type ProductModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name            string    `gorm:"type:varchar(255);not null"`
	ImageURL        string    `gorm:"type:varchar(512)"`
	Price           float64   `gorm:"not null"`
	DiscountPercent float64   `gorm:"not null;default:0"`
	Stock           int       `gorm:"not null;default:0"`
	Rating          float64   `gorm:"not null;default:0"`
	Category        string    `gorm:"type:varchar(100);index"`
	IsActive        bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
