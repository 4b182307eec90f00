package repository

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors for device persistence.
var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrDuplicateDevice = errors.New("device already registered")
)

// DeviceRepository is the boundary to push notification target storage.
type DeviceRepository interface {
	// Register persists a device for a user, updating the FCM token in place
	// when the same client device registers again.
	Register(ctx context.Context, device *entity.UserDevice) error

	// FindActiveByUser retrieves every active device of the user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// Deactivate turns off notifications for a device whose token Firebase
	// reported as invalid or unregistered.
	Deactivate(ctx context.Context, id uuid.UUID) error
}
