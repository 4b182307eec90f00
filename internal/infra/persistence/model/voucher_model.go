package model

import (
	"time"

	"github.com/google/uuid"
)

// VoucherModel mirrors the 'vouchers' table. The applicable product list lives
// in the voucher_products join table; an empty list means the voucher is general.
type VoucherModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code              string    `gorm:"type:varchar(64);unique;not null"`
	Description       string    `gorm:"type:text"`
	DiscountType      string    `gorm:"type:varchar(20);not null"`
	DiscountValue     float64   `gorm:"not null"`
	MaxDiscountAmount float64   `gorm:"not null;default:0"`
	MinPurchaseAmount float64   `gorm:"not null;default:0"`
	StartDate         time.Time `gorm:"not null"`
	EndDate           time.Time `gorm:"not null;index"`
	IsActive          bool      `gorm:"not null;default:true"`
	TotalSlots        int       `gorm:"not null;default:0"`
	ClaimedSlots      int       `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time `gorm:"index"`

	ApplicableProducts []VoucherProductModel `gorm:"foreignKey:VoucherID"`
}

// TableName explicitly sets the table name for GORM.
func (VoucherModel) TableName() string {
	return "vouchers"
}

// VoucherProductModel mirrors the 'voucher_products' join table scoping a
// voucher to specific products.
type VoucherProductModel struct {
	VoucherID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (VoucherProductModel) TableName() string {
	return "voucher_products"
}

// UserVoucherModel mirrors the 'user_vouchers' table: one row per claim. The
// (user_id, voucher_id) unique index is what makes a repeat claim fail.
type UserVoucherModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_voucher"`
	VoucherID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_voucher"`
	IsUsed    bool       `gorm:"not null;default:false"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	ClaimedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserVoucherModel) TableName() string {
	return "user_vouchers"
}
