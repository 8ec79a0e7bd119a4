package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creatorhub/models"

	"github.com/hibiken/asynq"
)

const TypePaymentTimeout = "payment:expire"

// NewPaymentTimeoutTask builds the delayed task that expires one payment attempt.
// The task id is derived from draft and attempt so re-enqueueing is a no-op.
func NewPaymentTimeoutTask(payload models.PaymentTimeoutPayload, after time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentTimeout, b)
	opts := []asynq.Option{
		asynq.ProcessIn(after),
		asynq.TaskID(fmt.Sprintf("payment-timeout:%s:%d", payload.DraftID, payload.Attempt)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// PaymentTimeoutScheduler arranges for an unresolved payment attempt to be expired later.
type PaymentTimeoutScheduler interface {
	SchedulePaymentTimeout(ctx context.Context, draftID string, attempt int, after time.Duration) error
}

// AsynqScheduler enqueues payment timeouts on the asynq queue.
type AsynqScheduler struct {
	Client *asynq.Client
}

func (s *AsynqScheduler) SchedulePaymentTimeout(ctx context.Context, draftID string, attempt int, after time.Duration) error {
	task, opts, err := NewPaymentTimeoutTask(models.PaymentTimeoutPayload{DraftID: draftID, Attempt: attempt}, after)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue payment timeout: %w", err)
	}
	return nil
}
