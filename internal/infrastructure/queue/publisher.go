package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Publisher delivers best-effort, at-least-once notifications to a named
// queue. Implementations must never be fed uncommitted state: callers publish
// only after their database transaction has committed.
type Publisher interface {
	Publish(ctx context.Context, queue, taskType string, payload interface{}) error
	Close() error
}

// AsynqPublisher publishes through a Redis-backed asynq client. The client is
// created once under a lock on first use and reused process-wide; after a
// publish exhausts its retries the client is dropped so the next call
// re-establishes the connection.
type AsynqPublisher struct {
	redisOpt asynq.RedisClientOpt

	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration

	mu     sync.Mutex
	client *asynq.Client
}

func NewAsynqPublisher(redisAddr, password string, db int, timeout time.Duration, maxRetries int, baseDelay time.Duration) *AsynqPublisher {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &AsynqPublisher{
		redisOpt: asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		},
		timeout:    timeout,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

func (p *AsynqPublisher) getClient() *asynq.Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		p.client = asynq.NewClient(p.redisOpt)
	}

	return p.client
}

// dropClient discards the cached client so the next publish reconnects.
func (p *AsynqPublisher) dropClient() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
}

// Publish serializes payload as JSON and enqueues it on the given queue.
// Each attempt has a bounded timeout; attempts back off exponentially. A
// returned error means the message was not delivered. Callers treat that as
// a notify failure, never as a reason to undo committed state.
func (p *AsynqPublisher) Publish(ctx context.Context, queue, taskType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, body)

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
		_, lastErr = p.getClient().EnqueueContext(publishCtx, task, asynq.Queue(queue))
		cancel()

		if lastErr == nil {
			log.Info().
				Str("queue", queue).
				Str("task", taskType).
				Int("attempt", attempt).
				Msg("message published")
			return nil
		}

		log.Warn().
			Str("queue", queue).
			Str("task", taskType).
			Int("attempt", attempt).
			Err(lastErr).
			Msg("publish attempt failed")

		if attempt < p.maxRetries {
			delay := p.baseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("publish to %s cancelled: %w", queue, ctx.Err())
			}
		}
	}

	p.dropClient()
	return fmt.Errorf("publish to %s after %d attempts: %w", queue, p.maxRetries, lastErr)
}

func (p *AsynqPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}

	err := p.client.Close()
	p.client = nil
	return err
}
