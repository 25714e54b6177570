package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/EAniwa/legacylancers-sub004/config"
	"github.com/EAniwa/legacylancers-sub004/services/scheduling"
	"github.com/EAniwa/legacylancers-sub004/services/tasks"

	"github.com/hibiken/asynq"
)

// InitBookingWorker runs the async worker in the background. It consumes
// booking state-change events and the periodic completion sweep.
func InitBookingWorker(engine scheduling.Engine) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingStateChange, handleStateChangeTask)
	mux.HandleFunc(tasks.TypeCompletionSweep, handleCompletionSweep(engine))

	// Enqueue the sweep on a fixed cadence.
	go scheduleCompletionSweeps(redisOpts)

	go func() {
		log.Println("[BookingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleStateChangeTask hands a booking state change to downstream consumers.
// Delivery targets (calendar sync, notifications) plug in here; for now the
// event trail is logged.
func handleStateChangeTask(_ context.Context, task *asynq.Task) error {
	var ev scheduling.BookingEvent
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		log.Printf("[BookingWorker] invalid state-change payload: %v", err)
		return err
	}
	log.Printf("[BookingWorker] booking %s: %s -> %s (actor=%s)",
		ev.BookingID, ev.PreviousStatus, ev.Status, ev.Actor)
	return nil
}

// handleCompletionSweep moves confirmed bookings past their end time to completed.
func handleCompletionSweep(engine scheduling.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := engine.CompleteDueBookings(ctx, time.Now())
		if err != nil {
			log.Printf("[BookingWorker] completion sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[BookingWorker] completed %d due bookings", n)
		}
		return nil
	}
}

// scheduleCompletionSweeps enqueues a sweep task on the configured cadence.
func scheduleCompletionSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	minutes := config.AppConfig.CompletionSweepMinutes
	if minutes <= 0 {
		minutes = 5
	}
	ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := client.Enqueue(tasks.NewCompletionSweepTask()); err != nil {
			log.Printf("[BookingWorker] failed to enqueue completion sweep: %v", err)
		}
	}
}
