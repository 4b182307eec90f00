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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order with its frozen lines and first timeline entry.
// GORM creates the line and timeline associations together with the order row.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	order.Version = orderM.Version

	return nil
}

// FindByID retrieves an order with its lines and timeline.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByUser retrieves a user's orders, newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// Update persists a lifecycle mutation conditionally on the version the order
// was read at, then appends the timeline entries added since that read. Losing
// the version race returns ErrStaleOrder with nothing applied.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.OrderModel{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(map[string]any{
				"status":               string(order.Status),
				"recipient":            order.ShippingAddress.Recipient,
				"phone":                order.ShippingAddress.Phone,
				"street":               order.ShippingAddress.Street,
				"ward":                 order.ShippingAddress.Ward,
				"district":             order.ShippingAddress.District,
				"province":             order.ShippingAddress.Province,
				"address_change_count": order.AddressChangeCount,
				"payment_status":       order.Payment.Status,
				"version":              order.Version + 1,
				"updated_at":           order.UpdatedAt,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to update order")
		}
		if result.RowsAffected == 0 {
			return repository.ErrStaleOrder
		}

		var persisted int64
		if err := tx.Model(&model.OrderTimelineModel{}).
			Where("order_id = ?", order.ID).
			Count(&persisted).Error; err != nil {
			return errors.Wrap(err, "failed to count timeline entries")
		}

		for _, entry := range order.Timeline[persisted:] {
			entryM := &model.OrderTimelineModel{
				OrderID:     order.ID,
				SubStatus:   string(entry.SubStatus),
				Description: entry.Description,
				PerformedBy: entry.PerformedBy,
				At:          entry.At,
			}
			if err := tx.Create(entryM).Error; err != nil {
				return errors.Wrap(err, "failed to append timeline entry")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	order.Version++

	return nil
}

func fromOrderDomain(order *entity.Order) *model.OrderModel {
	lineMs := make([]model.OrderLineModel, 0, len(order.Lines))
	for _, line := range order.Lines {
		lineMs = append(lineMs, model.OrderLineModel{
			ID:              line.ID,
			OrderID:         order.ID,
			ProductID:       line.Snapshot.ProductID,
			Name:            line.Snapshot.Name,
			ImageURL:        line.Snapshot.ImageURL,
			Price:           line.Snapshot.Price,
			DiscountPercent: line.Snapshot.DiscountPercent,
			Stock:           line.Snapshot.Stock,
			Rating:          line.Snapshot.Rating,
			Category:        line.Snapshot.Category,
			IsActive:        line.Snapshot.IsActive,
			CapturedAt:      line.Snapshot.CapturedAt,
			Quantity:        line.Quantity,
			LineTotal:       line.LineTotal,
		})
	}

	timelineMs := make([]model.OrderTimelineModel, 0, len(order.Timeline))
	for _, entry := range order.Timeline {
		timelineMs = append(timelineMs, model.OrderTimelineModel{
			OrderID:     order.ID,
			SubStatus:   string(entry.SubStatus),
			Description: entry.Description,
			PerformedBy: entry.PerformedBy,
			At:          entry.At,
		})
	}

	return &model.OrderModel{
		ID:                 order.ID,
		UserID:             order.UserID,
		Subtotal:           order.Subtotal,
		ShippingFee:        order.ShippingFee,
		Discount:           order.Discount,
		PointsApplied:      order.PointsApplied,
		TotalAmount:        order.TotalAmount,
		VoucherID:          order.VoucherID,
		DeliveryType:       order.DeliveryType,
		Status:             string(order.Status),
		Recipient:          order.ShippingAddress.Recipient,
		Phone:              order.ShippingAddress.Phone,
		Street:             order.ShippingAddress.Street,
		Ward:               order.ShippingAddress.Ward,
		District:           order.ShippingAddress.District,
		Province:           order.ShippingAddress.Province,
		AddressChangeCount: order.AddressChangeCount,
		PaymentMethod:      order.Payment.Method,
		PaymentStatus:      order.Payment.Status,
		Version:            order.Version,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
		Lines:              lineMs,
		Timeline:           timelineMs,
	}
}

func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	lines := make([]entity.OrderLine, 0, len(orderM.Lines))
	for _, lineM := range orderM.Lines {
		lines = append(lines, entity.OrderLine{
			ID:        lineM.ID,
			Quantity:  lineM.Quantity,
			LineTotal: lineM.LineTotal,
			Snapshot: entity.ProductSnapshot{
				ProductID:       lineM.ProductID,
				Name:            lineM.Name,
				ImageURL:        lineM.ImageURL,
				Price:           lineM.Price,
				DiscountPercent: lineM.DiscountPercent,
				Stock:           lineM.Stock,
				Rating:          lineM.Rating,
				Category:        lineM.Category,
				IsActive:        lineM.IsActive,
				CapturedAt:      lineM.CapturedAt,
			},
		})
	}

	timeline := make([]entity.TimelineEntry, 0, len(orderM.Timeline))
	for _, entryM := range orderM.Timeline {
		timeline = append(timeline, entity.TimelineEntry{
			SubStatus:   entity.OrderSubStatus(entryM.SubStatus),
			Description: entryM.Description,
			PerformedBy: entryM.PerformedBy,
			At:          entryM.At,
		})
	}

	return &entity.Order{
		ID:            orderM.ID,
		UserID:        orderM.UserID,
		Lines:         lines,
		Subtotal:      orderM.Subtotal,
		ShippingFee:   orderM.ShippingFee,
		Discount:      orderM.Discount,
		PointsApplied: orderM.PointsApplied,
		TotalAmount:   orderM.TotalAmount,
		VoucherID:     orderM.VoucherID,
		DeliveryType:  orderM.DeliveryType,
		Status:        entity.OrderStatus(orderM.Status),
		Timeline:      timeline,
		ShippingAddress: entity.ShippingAddress{
			Recipient: orderM.Recipient,
			Phone:     orderM.Phone,
			Street:    orderM.Street,
			Ward:      orderM.Ward,
			District:  orderM.District,
			Province:  orderM.Province,
		},
		AddressChangeCount: orderM.AddressChangeCount,
		Payment: entity.Payment{
			Method: orderM.PaymentMethod,
			Status: orderM.PaymentStatus,
		},
		CreatedAt: orderM.CreatedAt,
		UpdatedAt: orderM.UpdatedAt,
		Version:   orderM.Version,
	}
}
