package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	userRepo "randevu/database/repository/user"
	"randevu/models"
	"randevu/utils"
)

// DefaultNotificationService delivers pushes over FCM, resolving the target
// token through the identity lookup collaborator.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

func NewDefaultNotificationService(users userRepo.UserRepository, logger *zap.Logger) *DefaultNotificationService {
	return &DefaultNotificationService{Users: users, Logger: logger}
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		s.Logger.Debug("user has no FCM token, skipping push", zap.String("userId", userID))
		return nil
	}
	if utils.FCMClient == nil {
		s.Logger.Info("push delivery disabled, dropping notification",
			zap.String("userId", userID), zap.String("title", title))
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyAppointmentEvent pushes an appointment status event to the customer.
func (s *DefaultNotificationService) NotifyAppointmentEvent(ctx context.Context, event string, appt *models.Appointment) error {
	title, body := eventText(event, appt)
	data := map[string]string{
		"type":          event,
		"appointmentId": appt.ID,
		"shopId":        appt.ShopID,
		"status":        appt.Status,
	}
	return s.SendUserPushNotification(ctx, appt.UserID, title, body, data)
}

func eventText(event string, appt *models.Appointment) (title, body string) {
	when := appt.Date.Format("Jan 2 at 15:04")
	switch event {
	case EventCreated:
		return "Appointment requested", fmt.Sprintf("Your appointment for %s is awaiting your confirmation.", when)
	case EventConfirmed:
		return "Appointment confirmed", fmt.Sprintf("You're booked for %s. See you there!", when)
	case EventCanceled:
		return "Appointment canceled", fmt.Sprintf("Your appointment for %s has been canceled.", when)
	}
	return "Appointment update", fmt.Sprintf("Your appointment for %s was updated.", when)
}
