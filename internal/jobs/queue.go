// Package jobs moves uploaded documents from the HTTP surface to the
// OCR worker. Delivery is at-least-once; the document pipeline's
// idempotency key absorbs redelivery.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Job is one queued document.
type Job struct {
	DocumentID     uuid.UUID `json:"document_id"`
	CompanyID      uuid.UUID `json:"company_id"`
	IdempotencyKey string    `json:"idempotency_key"`
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks up to timeout and returns nil when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
}

type redisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) Queue {
	return &redisQueue{client: client, key: key}
}

func (q *redisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, q.key, payload).Err()
}

func (q *redisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	values, err := q.client.BLPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(values) < 2 {
		return nil, nil
	}

	var job Job
	if err := json.Unmarshal([]byte(values[1]), &job); err != nil {
		return nil, err
	}
	return &job, nil
}
