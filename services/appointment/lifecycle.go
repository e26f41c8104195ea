package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	"randevu/models"
	"randevu/services/notification"
)

// transitionMaxRetries bounds re-reads when a transition loses the
// conditional write to a concurrent one. The re-read lands in a decisive
// branch (no-op or invalid) on the next pass, since statuses only move
// forward.
const transitionMaxRetries = 3

func (s *DefaultLifecycleService) ConfirmAsUser(ctx context.Context, appointmentID, userID string) (*models.Appointment, error) {
	for attempt := 0; attempt < transitionMaxRetries; attempt++ {
		appt, err := s.Repo.GetByID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if appt.UserID != userID {
			return nil, ErrUnauthorized
		}

		switch appt.Status {
		case models.StatusPendingUserConfirmation:
			appt.UserConfirmed = true
			appt.Status = models.StatusPendingBusinessConfirmation
			err := s.Repo.UpdateStatus(ctx, appt, models.StatusPendingUserConfirmation)
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return appt, nil
		case models.StatusPendingBusinessConfirmation, models.StatusConfirmed, models.StatusCompleted:
			// Already past this step; duplicate confirmation clicks are a no-op.
			if appt.UserConfirmed {
				return appt, nil
			}
			return nil, &InvalidTransitionError{From: appt.Status, Attempted: models.StatusPendingBusinessConfirmation}
		default:
			return nil, &InvalidTransitionError{From: appt.Status, Attempted: models.StatusPendingBusinessConfirmation}
		}
	}
	return nil, fmt.Errorf("confirm appointment %s: %w", appointmentID, appointmentRepo.ErrStatusConflict)
}

func (s *DefaultLifecycleService) ConfirmAsBusiness(ctx context.Context, appointmentID, shopID string) (*models.Appointment, error) {
	for attempt := 0; attempt < transitionMaxRetries; attempt++ {
		appt, err := s.Repo.GetByID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if appt.ShopID != shopID {
			return nil, ErrUnauthorized
		}

		switch appt.Status {
		case models.StatusPendingBusinessConfirmation:
			appt.BusinessConfirmed = true
			appt.Status = models.StatusConfirmed
			err := s.Repo.UpdateStatus(ctx, appt, models.StatusPendingBusinessConfirmation)
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				continue
			}
			if err != nil {
				return nil, err
			}
			s.notifyAsync(notification.EventConfirmed, appt)
			return appt, nil
		case models.StatusConfirmed, models.StatusCompleted:
			if appt.BusinessConfirmed {
				return appt, nil
			}
			return nil, &InvalidTransitionError{From: appt.Status, Attempted: models.StatusConfirmed}
		default:
			return nil, &InvalidTransitionError{From: appt.Status, Attempted: models.StatusConfirmed}
		}
	}
	return nil, fmt.Errorf("confirm appointment %s: %w", appointmentID, appointmentRepo.ErrStatusConflict)
}

func (s *DefaultLifecycleService) MarkCompleted(ctx context.Context, appointmentID string, actor Actor, force bool) (*models.Appointment, error) {
	for attempt := 0; attempt < transitionMaxRetries; attempt++ {
		appt, err := s.Repo.GetByID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if !actor.System && actor.ShopID != appt.ShopID {
			return nil, ErrUnauthorized
		}
		if appt.Status != models.StatusConfirmed {
			return nil, &InvalidTransitionError{From: appt.Status, Attempted: models.StatusCompleted}
		}
		if !force && time.Now().UTC().Before(appt.EndTime) {
			return nil, ErrNotElapsed
		}

		now := time.Now().UTC()
		appt.Status = models.StatusCompleted
		appt.CompletedAt = &now
		err = s.Repo.UpdateStatus(ctx, appt, models.StatusConfirmed)
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			// A racing cancel got there first; the re-read rejects cleanly.
			continue
		}
		if err != nil {
			return nil, err
		}
		return appt, nil
	}
	return nil, fmt.Errorf("complete appointment %s: %w", appointmentID, appointmentRepo.ErrStatusConflict)
}

func (s *DefaultLifecycleService) Cancel(ctx context.Context, appointmentID string, actor Actor, reason string) (*models.Appointment, error) {
	for attempt := 0; attempt < transitionMaxRetries; attempt++ {
		appt, err := s.Repo.GetByID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if !actor.System && actor.UserID != appt.UserID && actor.ShopID != appt.ShopID {
			return nil, ErrUnauthorized
		}

		switch appt.Status {
		case models.StatusPendingUserConfirmation, models.StatusPendingBusinessConfirmation, models.StatusConfirmed:
			from := appt.Status
			now := time.Now().UTC()
			appt.Status = models.StatusCanceled
			appt.CancelReason = reason
			appt.CanceledAt = &now
			err := s.Repo.UpdateStatus(ctx, appt, from)
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				continue
			}
			if err != nil {
				return nil, err
			}
			s.notifyAsync(notification.EventCanceled, appt)
			return appt, nil
		default:
			// completed and canceled are terminal.
			return nil, &InvalidTransitionError{From: appt.Status, Attempted: models.StatusCanceled}
		}
	}
	return nil, fmt.Errorf("cancel appointment %s: %w", appointmentID, appointmentRepo.ErrStatusConflict)
}

// notifyAsync emits a customer-facing event without blocking the transition.
func (s *DefaultLifecycleService) notifyAsync(event string, appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	a := *appt
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.NotifyAppointmentEvent(ctx, event, &a); err != nil {
			s.Logger.Warn("failed to deliver appointment notification",
				zap.String("event", event),
				zap.String("appointmentId", a.ID),
				zap.Error(err))
		}
	}()
}
