package repository

import (
	"Lighthouse/internal/api/config"
	"Lighthouse/internal/model"
	"context"
	"sync"
)

// JobStore 摄取任务注册表。单进程部署用内存实现即可，
// 多实例部署时切换到 Redis 实现，契约不变
type JobStore interface {
	Create(ctx context.Context, job *model.IngestJob) error
	Update(ctx context.Context, job *model.IngestJob) error
	// Get 未找到时返回 nil, nil
	Get(ctx context.Context, id string) (*model.IngestJob, error)
}

// NewJobStore 按配置选择后端，默认内存
func NewJobStore(cfg config.JobStoreConfig) JobStore {
	if cfg.Backend == "redis" {
		return NewRedisJobStore(cfg)
	}
	return NewMemoryJobStore()
}

// memoryJobStore 并发安全：多个摄取请求会同时注册任务，
// 单个任务的状态虽然只由它自己的worker改写，但状态接口会并发读同一任务，
// 所以注册表内外只交换副本，worker在Get到的副本上改写不会影响并发读者
type memoryJobStore struct {
	jobs sync.Map
}

func NewMemoryJobStore() JobStore {
	return &memoryJobStore{}
}

func (s *memoryJobStore) Create(ctx context.Context, job *model.IngestJob) error {
	s.jobs.Store(job.ID, cloneJob(job))
	return nil
}

func (s *memoryJobStore) Update(ctx context.Context, job *model.IngestJob) error {
	s.jobs.Store(job.ID, cloneJob(job))
	return nil
}

func (s *memoryJobStore) Get(ctx context.Context, id string) (*model.IngestJob, error) {
	value, ok := s.jobs.Load(id)
	if !ok {
		return nil, nil
	}
	return cloneJob(value.(*model.IngestJob)), nil
}

// cloneJob 浅拷贝即可：Result 在worker回写之后不再被改写
func cloneJob(job *model.IngestJob) *model.IngestJob {
	copied := *job
	return &copied
}
