// Package notification delivers order-status push notifications through FCM.
package notification

import (
	"context"
	"fmt"

	"dacsan/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// fcmBatchLimit is the maximum token count FCM accepts per multicast request.
const fcmBatchLimit = 500

type firebaseService struct {
	messenger *messaging.Client
}

// NewFirebaseService builds a NotificationService backed by Firebase Cloud Messaging.
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.NotificationService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messenger, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{messenger: messenger}, nil
}

// SendSingleNotification pushes one notification to one device token.
func (s *firebaseService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	_, err := s.messenger.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// SendBatchNotification pushes one notification to up to fcmBatchLimit device
// tokens and reports tokens FCM rejected as invalid or unregistered, so the
// caller can deactivate them.
func (s *firebaseService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error) {
	if len(tokens) == 0 {
		return 0, 0, nil, nil
	}
	if len(tokens) > fcmBatchLimit {
		return 0, 0, nil, fmt.Errorf("token count exceeds limit: %d (max %d)", len(tokens), fcmBatchLimit)
	}

	response, err := s.messenger.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to send multicast notification: %w", err)
	}

	for idx, sendResponse := range response.Responses {
		if isDeadToken(sendResponse.Error) {
			invalidTokens = append(invalidTokens, tokens[idx])
		}
	}

	return response.SuccessCount, response.FailureCount, invalidTokens, nil
}

// isDeadToken reports whether the send failure means the token itself is unusable.
func isDeadToken(err error) bool {
	if err == nil {
		return false
	}

	return messaging.IsInvalidArgument(err) || messaging.IsUnregistered(err)
}
