package notify

import (
	"context"
	"fmt"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// messagingClient is the part of *messaging.Client used here.
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushSender delivers notifications to the user's registered device through
// Firebase Cloud Messaging.
type PushSender struct {
	client messagingClient
}

func NewPushSender(ctx context.Context, projectID, credentialsFile string) (*PushSender, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}
	return &PushSender{client: client}, nil
}

func (s *PushSender) Name() string { return "push" }

func (s *PushSender) Send(ctx context.Context, to *domain.User, msg Message) error {
	if to.DeviceToken == nil || *to.DeviceToken == "" {
		return nil
	}

	message := &messaging.Message{
		Token: *to.DeviceToken,
		Notification: &messaging.Notification{
			Title: msg.Subject,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	logger.ExternalServiceCall("fcm", "Send", "userID", to.ID)
	id, err := s.client.Send(ctx, message)
	logger.ExternalServiceResult("fcm", "Send", err, "userID", to.ID, "messageID", id)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
