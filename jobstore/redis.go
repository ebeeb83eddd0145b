package jobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by a redis hash (the job set, keyed by
// name) plus a capped list per job for recent log lines.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore wraps an already-configured client. keyPrefix namespaces
// all keys this store touches, so one Redis instance can host more than
// one scheduler.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "cronexpr"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) jobsKey() string            { return s.keyPrefix + ":jobs" }
func (s *RedisStore) logsKey(name string) string { return s.keyPrefix + ":logs:" + name }

func (s *RedisStore) Has(ctx context.Context, name string) (bool, error) {
	n, err := s.client.HExists(ctx, s.jobsKey(), name).Result()
	return n, err
}

func (s *RedisStore) Get(ctx context.Context, name string) (Job, error) {
	raw, err := s.client.HGet(ctx, s.jobsKey(), name).Result()
	if errors.Is(err, redis.Nil) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, err
	}
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return Job{}, fmt.Errorf("jobstore: decode job %q: %w", name, err)
	}
	return job, nil
}

func (s *RedisStore) Add(ctx context.Context, job Job) error {
	exists, err := s.Has(ctx, job.Name)
	if err != nil {
		return err
	}
	if exists {
		return ErrExists
	}
	if job.ID == "" {
		job.ID = newJobID()
	}
	return s.put(ctx, job)
}

func (s *RedisStore) Update(ctx context.Context, job Job) error {
	exists, err := s.Has(ctx, job.Name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.put(ctx, job)
}

func (s *RedisStore) put(ctx context.Context, job Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("jobstore: encode job %q: %w", job.Name, err)
	}
	return s.client.HSet(ctx, s.jobsKey(), job.Name, raw).Err()
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.HDel(ctx, s.jobsKey(), name).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return s.client.Del(ctx, s.logsKey(name)).Err()
}

func (s *RedisStore) All(ctx context.Context) ([]Job, error) {
	raw, err := s.client.HGetAll(ctx, s.jobsKey()).Result()
	if err != nil {
		return nil, err
	}
	jobs := make([]Job, 0, len(raw))
	for name, encoded := range raw {
		var job Job
		if err := json.Unmarshal([]byte(encoded), &job); err != nil {
			return nil, fmt.Errorf("jobstore: decode job %q: %w", name, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// maxLogEntries bounds the capped log list per job so a noisy job
// cannot grow a key without limit.
const maxLogEntries = 200

func (s *RedisStore) Log(ctx context.Context, job Job, message string, level Level) error {
	entry, err := json.Marshal(struct {
		Level   Level  `json:"level"`
		Message string `json:"message"`
	}{level, message})
	if err != nil {
		return err
	}
	key := s.logsKey(job.Name)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, entry)
	pipe.LTrim(ctx, key, 0, maxLogEntries-1)
	_, err = pipe.Exec(ctx)
	return err
}
