package service

import (
	"context"
)

// Order event types published on lifecycle transitions.
const (
	OrderEventCreated   = "order.created"
	OrderEventCancelled = "order.cancelled"
	OrderEventProgress  = "order.progress"
)

// OrderEvent is emitted when an order transitions; downstream consumers (the
// notifier worker, analytics) pick it up asynchronously. The engine only emits,
// it never blocks on delivery.
type OrderEvent struct {
	RequestID   string  `json:"request_id,omitempty"` // For distributed tracing
	Type        string  `json:"type"`
	OrderID     string  `json:"order_id"`
	UserID      string  `json:"user_id"`
	Status      string  `json:"status"`
	SubStatus   string  `json:"sub_status,omitempty"`
	TotalAmount float64 `json:"total_amount,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
