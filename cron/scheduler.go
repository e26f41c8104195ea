package cron

import (
	"log"

	"github.com/hibiken/asynq"
	cronv3 "github.com/robfig/cron/v3"
)

// StartScheduler enqueues the periodic sweeps: reconciliation repairs
// orphaned slot reservations, completion marks confirmed appointments done
// once their end time has passed.
func StartScheduler(client *asynq.Client) *cronv3.Cron {
	c := cronv3.New()

	enqueue := func(taskType string) func() {
		return func() {
			if _, err := client.Enqueue(asynq.NewTask(taskType, nil), asynq.MaxRetry(3)); err != nil {
				log.Printf("[Scheduler] failed to enqueue %s: %v", taskType, err)
			}
		}
	}

	if _, err := c.AddFunc("@every 15m", enqueue(TypeReconcileSweep)); err != nil {
		log.Fatalf("[Scheduler] failed to schedule reconcile sweep: %v", err)
	}
	if _, err := c.AddFunc("@every 1h", enqueue(TypeCompleteSweep)); err != nil {
		log.Fatalf("[Scheduler] failed to schedule completion sweep: %v", err)
	}

	c.Start()
	return c
}
