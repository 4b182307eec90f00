package model

import (
	"time"

	"github.com/google/uuid"
)

// PointsGrantModel mirrors the 'points_grants' table. Points live in dated
// grants so expiry and oldest-first consumption stay cheap to query.
type PointsGrantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Points    int64     `gorm:"not null"`
	Remaining int64     `gorm:"not null"`
	GrantedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PointsGrantModel) TableName() string {
	return "points_grants"
}
