package jobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/custodio78/termsuite-core/internal/domain"
)

const casRetries = 5

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Redis stores jobs as JSON values under prefix+id with a TTL, so status
// survives restarts and is shared between server replicas.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store. ttl <= 0 keeps records forever.
func NewRedis(client redis.UniversalClient, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) key(id uuid.UUID) string {
	return r.prefix + id.String()
}

func (r *Redis) Get(ctx context.Context, id uuid.UUID) (domain.Job, error) {
	return r.get(ctx, r.client, id)
}

func (r *Redis) get(ctx context.Context, c getter, id uuid.UUID) (domain.Job, error) {
	data, err := c.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		return domain.Job{}, fmt.Errorf("job %s: get: %w", id, err)
	}

	var job domain.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return domain.Job{}, fmt.Errorf("job %s: decode: %w", id, err)
	}
	return job, nil
}

func (r *Redis) Set(ctx context.Context, job domain.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("job %s: encode: %w", job.ID, err)
	}
	if err := r.client.Set(ctx, r.key(job.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("job %s: set: %w", job.ID, err)
	}
	return nil
}

// CompareAndSwap uses WATCH/MULTI; a concurrent writer aborts the
// transaction and the check is retried.
func (r *Redis) CompareAndSwap(ctx context.Context, from domain.JobStatus, next domain.Job) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("job %s: encode: %w", next.ID, err)
	}
	key := r.key(next.ID)

	txf := func(tx *redis.Tx) error {
		cur, err := r.get(ctx, tx, next.ID)
		if err != nil {
			return err
		}
		if err := checkSwap(cur, from, next); err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for range casRetries {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("job %s: too many concurrent updates: %w", next.ID, domain.ErrConflict)
}
