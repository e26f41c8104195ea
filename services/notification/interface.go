package notification

import (
	"context"

	"randevu/models"
)

// Appointment event types surfaced to the customer.
const (
	EventCreated   = "appointment_created"
	EventConfirmed = "appointment_confirmed"
	EventCanceled  = "appointment_canceled"
)

// NotificationService dispatches fire-and-forget events to customers. The
// engine never depends on delivery succeeding; failures are logged, not
// propagated into booking or lifecycle outcomes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyAppointmentEvent(ctx context.Context, event string, appt *models.Appointment) error
}
