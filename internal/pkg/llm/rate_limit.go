package llm

import (
	"golang.org/x/sync/semaphore"
)

// 分类模型按配额限流，批量请求共用同一信号量
var (
	ClassifyWeight = int64(5)
	ClassifySem    = semaphore.NewWeighted(ClassifyWeight)
)
