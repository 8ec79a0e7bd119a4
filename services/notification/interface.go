package notification

import (
	"context"
	"errors"
	"fmt"

	documentRepo "creatorhub/database/repository/document"
	"creatorhub/models"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService tells a creator that a paid booking is waiting for review.
type NotificationService interface {
	NotifyBookingCreated(ctx context.Context, record models.BookingRecord) error
}

// Messenger is the part of the FCM client the service needs.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService pushes through FCM to the token stored on the creator document.
type DefaultNotificationService struct {
	Messenger Messenger
	Store     documentRepo.Store
}

func NewDefaultNotificationService(messenger Messenger, store documentRepo.Store) (*DefaultNotificationService, error) {
	if messenger == nil || store == nil {
		return nil, fmt.Errorf("notification service initialization error: messenger or store is nil")
	}
	return &DefaultNotificationService{Messenger: messenger, Store: store}, nil
}

// NotifyBookingCreated sends a push to the booked creator. Campaign bookings have no single
// creator yet and creators without a registered device are skipped.
func (s *DefaultNotificationService) NotifyBookingCreated(ctx context.Context, record models.BookingRecord) error {
	if record.Flow != models.FlowCreatorBooking {
		return nil
	}
	doc, err := s.Store.Read(ctx, "creators", record.TargetID)
	if errors.Is(err, documentRepo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("NotifyBookingCreated: could not load creator %s: %w", record.TargetID, err)
	}
	token, _ := doc["fcmToken"].(string)
	if token == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "New booking request",
			Body:  bookingBody(record),
		},
		Data: map[string]string{
			"type":          "booking_created",
			"role":          "creator",
			"transactionId": record.ID,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.Messenger.Send(ctx, msg); err != nil {
		return fmt.Errorf("NotifyBookingCreated: failed to send FCM message: %w", err)
	}
	return nil
}

func bookingBody(record models.BookingRecord) string {
	units := 0
	for _, qty := range record.Services {
		units += qty
	}
	name := record.Campaign.Name
	if name == "" {
		name = "a new campaign"
	}
	return fmt.Sprintf("%s booked %d deliverable%s for %s (%s %d).",
		record.Contact.FullName, units, plural(units), name, record.Currency, record.GrandTotal)
}

// plural returns "s" if n is not 1, otherwise returns an empty string.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
