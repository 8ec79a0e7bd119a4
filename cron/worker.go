package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creatorhub/models"
	"creatorhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PaymentExpirer fails a payment attempt that was never resolved by the client.
type PaymentExpirer interface {
	ExpirePayment(ctx context.Context, draftID string, attempt int) error
}

// InitPaymentTimeoutWorker starts the asynq server that processes payment timeouts.
func InitPaymentTimeoutWorker(redisOpts asynq.RedisClientOpt, expirer PaymentExpirer, logger *zap.Logger) (*asynq.Server, error) {
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
	mux.HandleFunc(tasks.TypePaymentTimeout, handlePaymentTimeoutTask(expirer, logger))

	const maxAttempts = 5
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = srv.Start(mux); err == nil {
			logger.Info("payment timeout worker started")
			return srv, nil
		}
		logger.Warn("payment timeout worker failed to start",
			zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
		time.Sleep(time.Duration(attempt*2) * time.Second)
	}
	return nil, fmt.Errorf("payment timeout worker: %w", err)
}

func handlePaymentTimeoutTask(expirer PaymentExpirer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PaymentTimeoutPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid payment timeout payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Debug("expiring payment attempt", zap.String("draft_id", p.DraftID), zap.Int("attempt", p.Attempt))
		if err := expirer.ExpirePayment(ctx, p.DraftID, p.Attempt); err != nil {
			logger.Error("failed to expire payment", zap.String("draft_id", p.DraftID), zap.Error(err))
			return err
		}
		return nil
	}
}
