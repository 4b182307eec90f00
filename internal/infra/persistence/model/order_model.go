package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Orders are append-mostly: created once
// at checkout commit, then mutated only through lifecycle updates guarded by the
// version column. They are never deleted.
type OrderModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subtotal           float64    `gorm:"not null"`
	ShippingFee        float64    `gorm:"not null;default:0"`
	Discount           float64    `gorm:"not null;default:0"`
	PointsApplied      float64    `gorm:"not null;default:0"`
	TotalAmount        float64    `gorm:"not null"`
	VoucherID          *uuid.UUID `gorm:"type:uuid"`
	DeliveryType       string     `gorm:"type:varchar(50);not null"`
	Status             string     `gorm:"type:varchar(20);not null;index"`
	Recipient          string     `gorm:"type:varchar(100);not null"`
	Phone              string     `gorm:"type:varchar(20);not null"`
	Street             string     `gorm:"type:varchar(255);not null"`
	Ward               string     `gorm:"type:varchar(100)"`
	District           string     `gorm:"type:varchar(100)"`
	Province           string     `gorm:"type:varchar(100);not null"`
	AddressChangeCount int        `gorm:"not null;default:0"`
	PaymentMethod      string     `gorm:"type:varchar(50);not null"`
	PaymentStatus      string     `gorm:"type:varchar(20);not null"`
	Version            int64      `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Lines    []OrderLineModel     `gorm:"foreignKey:OrderID"`
	Timeline []OrderTimelineModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table. The product columns are the
// snapshot frozen at commit time, not references into the live catalog, so the
// order renders identically even after the product changes or disappears.
type OrderLineModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"`
	Name            string    `gorm:"type:varchar(255);not null"`
	ImageURL        string    `gorm:"type:varchar(512)"`
	Price           float64   `gorm:"not null"`
	DiscountPercent float64   `gorm:"not null;default:0"`
	Stock           int       `gorm:"not null;default:0"`
	Rating          float64   `gorm:"not null;default:0"`
	Category        string    `gorm:"type:varchar(100)"`
	IsActive        bool      `gorm:"not null;default:true"`
	CapturedAt      time.Time `gorm:"not null"`
	Quantity        int       `gorm:"not null"`
	LineTotal       float64   `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// OrderTimelineModel mirrors the 'order_timelines' table, the append-only
// progression log. Seq preserves insertion order within one timestamp.
type OrderTimelineModel struct {
	Seq         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SubStatus   string    `gorm:"type:varchar(20);not null"`
	Description string    `gorm:"type:text"`
	PerformedBy string    `gorm:"type:varchar(20);not null"`
	At          time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderTimelineModel) TableName() string {
	return "order_timelines"
}
