package postgres

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/domain/repository"
	"dacsan/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// Register persists a device for a user. A client device that registers again
// just refreshes its token, so a unique collision on (user_id, device_id) is
// resolved by updating the existing row.
func (repo *deviceRepository) Register(ctx context.Context, device *entity.UserDevice) error {
	deviceM := fromDeviceDomain(device)

	if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
		if !isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "failed to register device")
		}

		result := repo.db.WithContext(ctx).
			Model(&model.UserDeviceModel{}).
			Where("user_id = ? AND device_id = ?", device.UserID, device.DeviceID).
			Updates(map[string]any{
				"fcm_token": device.FCMToken,
				"platform":  device.Platform,
				"is_active": true,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to refresh device registration")
		}
		if result.RowsAffected == 0 {
			return repository.ErrDuplicateDevice
		}

		var existing model.UserDeviceModel
		if err := repo.db.WithContext(ctx).
			Where("user_id = ? AND device_id = ?", device.UserID, device.DeviceID).
			First(&existing).Error; err != nil {
			return errors.Wrap(err, "failed to reload refreshed device")
		}
		deviceM = &existing
	}

	// Update the entity with generated values
	device.ID = deviceM.ID
	device.IsActive = deviceM.IsActive
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return nil
}

// FindActiveByUser retrieves every active device of the user.
func (repo *deviceRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	var deviceMs []*model.UserDeviceModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&deviceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active devices by user")
	}

	devices := make([]*entity.UserDevice, 0, len(deviceMs))
	for _, deviceM := range deviceMs {
		devices = append(devices, toDeviceDomain(deviceM))
	}

	return devices, nil
}

// Deactivate turns off notifications for a device whose token is no longer valid.
func (repo *deviceRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserDeviceModel{}).
		Where("id = ?", id).
		Update("is_active", false)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to deactivate device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toDeviceDomain(data *model.UserDeviceModel) *entity.UserDevice {
	if data == nil {
		return nil
	}

	return &entity.UserDevice{
		ID:        data.ID,
		UserID:    data.UserID,
		FCMToken:  data.FCMToken,
		DeviceID:  data.DeviceID,
		Platform:  data.Platform,
		IsActive:  data.IsActive,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromDeviceDomain(data *entity.UserDevice) *model.UserDeviceModel {
	if data == nil {
		return nil
	}

	return &model.UserDeviceModel{
		ID:        data.ID,
		UserID:    data.UserID,
		FCMToken:  data.FCMToken,
		DeviceID:  data.DeviceID,
		Platform:  data.Platform,
		IsActive:  data.IsActive,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
