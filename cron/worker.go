package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"randevu/config"
	"randevu/services/booking"
	"randevu/services/rating"
)

// Task types for the periodic sweeps.
const (
	TypeReconcileSweep = "availability:reconcile"
	TypeCompleteSweep  = "appointments:complete"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the asynq client used to enqueue engine tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitWorker runs the async worker in background. It processes rating
// recomputes plus the reconciliation and completion sweeps.
func InitWorker(agg rating.Aggregator, bookingSvc booking.BookingService, completer *Completer) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(rating.TypeRecomputeRating, rating.NewRecomputeHandler(agg))
	mux.HandleFunc(TypeReconcileSweep, func(ctx context.Context, _ *asynq.Task) error {
		released, err := bookingSvc.ReconcileSlots(ctx)
		if err != nil {
			return err
		}
		if released > 0 {
			log.Printf("[Worker] reconcile sweep released %d orphaned slot(s)", released)
		}
		return nil
	})
	mux.HandleFunc(TypeCompleteSweep, completer.HandleSweep)

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}
