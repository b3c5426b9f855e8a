package repository

import (
	"Lighthouse/internal/model"
	"Lighthouse/internal/pkg/consts"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestMemoryJobStore_GetReturnsDetachedCopy(t *testing.T) {
	store := NewMemoryJobStore()
	_ = store.Create(context.Background(), &model.IngestJob{
		ID:     "j1",
		Status: consts.JobStatusProcessing,
	})

	job, err := store.Get(context.Background(), "j1")
	assert.Equal(t, nil, err)

	// 在Get到的结构上改写不应影响注册表里的任务
	job.Status = consts.JobStatusCompleted
	job.Result = &model.IngestRunResult{Records: 1}

	again, _ := store.Get(context.Background(), "j1")
	assert.Equal(t, consts.JobStatusProcessing, again.Status)
	assert.Equal(t, true, again.Result == nil)
}

func TestMemoryJobStore_CreateDetachesCallerStruct(t *testing.T) {
	store := NewMemoryJobStore()
	job := &model.IngestJob{ID: "j1", Status: consts.JobStatusProcessing}
	_ = store.Create(context.Background(), job)

	job.Status = consts.JobStatusFailed

	stored, _ := store.Get(context.Background(), "j1")
	assert.Equal(t, consts.JobStatusProcessing, stored.Status)
}

// 模拟worker改写任务状态的同时状态接口并发轮询，-race 下必须干净
func TestMemoryJobStore_ConcurrentReadWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore()
	_ = store.Create(ctx, &model.IngestJob{ID: "j1", Status: consts.JobStatusProcessing})

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			job, _ := store.Get(ctx, "j1")
			_ = job.Status
			if job.Result != nil {
				_ = job.Result.Records
			}
		}
	}()

	for i := 0; i < 200; i++ {
		job, _ := store.Get(ctx, "j1")
		job.Status = consts.JobStatusCompleted
		job.Result = &model.IngestRunResult{Records: i}
		job.UpdatedAt = time.Now()
		_ = store.Update(ctx, job)
	}
	close(stop)
	wg.Wait()

	final, _ := store.Get(ctx, "j1")
	assert.Equal(t, consts.JobStatusCompleted, final.Status)
	assert.Equal(t, 199, final.Result.Records)
}
