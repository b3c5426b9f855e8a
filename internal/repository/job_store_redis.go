package repository

import (
	"Lighthouse/internal/api/config"
	"Lighthouse/internal/model"
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/redis"
	"context"
	"time"

	"github.com/goccy/go-json"
)

// redisJobStore 跨实例共享的任务注册表，任务按TTL过期
type redisJobStore struct {
	ttl time.Duration
}

func NewRedisJobStore(cfg config.JobStoreConfig) JobStore {
	ttl := time.Duration(cfg.TTL) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisJobStore{ttl: ttl}
}

func (s *redisJobStore) Create(ctx context.Context, job *model.IngestJob) error {
	return s.save(ctx, job)
}

func (s *redisJobStore) Update(ctx context.Context, job *model.IngestJob) error {
	return s.save(ctx, job)
}

func (s *redisJobStore) Get(ctx context.Context, id string) (*model.IngestJob, error) {
	value, err := redis.GetValue(ctx, consts.IngestJobKey+id)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	var job model.IngestJob
	if err = json.Unmarshal([]byte(value), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *redisJobStore) save(ctx context.Context, job *model.IngestJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.IngestJobKey+job.ID, string(data), s.ttl)
}
