package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	appointmentSvc "randevu/services/appointment"
)

// completeSweepBatch bounds how many appointments one sweep pass touches.
const completeSweepBatch = 200

// Completer marks confirmed appointments as completed once their end time is
// in the past.
type Completer struct {
	Repo      appointmentRepo.AppointmentRepository
	Lifecycle appointmentSvc.LifecycleService
	Logger    *zap.Logger
}

// HandleSweep is the asynq handler for the completion sweep.
func (c *Completer) HandleSweep(ctx context.Context, _ *asynq.Task) error {
	due, err := c.Repo.ListConfirmedEndedBefore(ctx, time.Now().UTC(), completeSweepBatch)
	if err != nil {
		return err
	}

	for _, appt := range due {
		if _, err := c.Lifecycle.MarkCompleted(ctx, appt.ID, appointmentSvc.Actor{System: true}, false); err != nil {
			// A racing cancel or manual completion is fine; log and move on.
			c.Logger.Debug("completion sweep skipped appointment",
				zap.String("appointmentId", appt.ID),
				zap.Error(err))
		}
	}
	return nil
}
