package tasks

import (
	"context"
	"encoding/json"

	"github.com/EAniwa/legacylancers-sub004/services/scheduling"

	"github.com/hibiken/asynq"
)

const (
	// TypeBookingStateChange carries a single booking state-change event.
	TypeBookingStateChange = "booking:state_change"
	// TypeCompletionSweep asks the worker to complete due bookings.
	TypeCompletionSweep = "booking:completion_sweep"
)

// NewBookingStateChangeTask builds the asynq task for a state-change event.
func NewBookingStateChangeTask(ev scheduling.BookingEvent) (*asynq.Task, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingStateChange, b), nil
}

// NewCompletionSweepTask builds the periodic completion-sweep task.
func NewCompletionSweepTask() *asynq.Task {
	return asynq.NewTask(TypeCompletionSweep, nil)
}

// AsynqEventSink publishes booking state changes onto the task queue. It is
// the production scheduling.EventSink.
type AsynqEventSink struct {
	Client *asynq.Client
}

func (s *AsynqEventSink) PublishBookingStateChange(ctx context.Context, ev scheduling.BookingEvent) error {
	task, err := NewBookingStateChangeTask(ev)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task)
	return err
}
