package service

import "context"

// NotificationService defines the interface for sending push notifications to
// user devices. The engine never calls this inline; only the notifier worker does,
// after consuming an OrderEvent.
type NotificationService interface {
	// SendSingleNotification sends a push notification to a single device token
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error

	// SendBatchNotification sends push notifications to multiple device tokens (max 500 tokens)
	SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error)
}
