package model

import (
	"time"
)

// IngestJob 摄取任务，只存活在进程内或Redis中，不落库
// 状态只会由后台worker改写一次：processing → completed | failed
type IngestJob struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Source    string           `json:"source"`
	Result    *IngestRunResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// IngestRunResult 一次摄取运行的汇总结果
type IngestRunResult struct {
	Records          int                `json:"records"`
	VideosProcessed  int                `json:"videosProcessed"`
	Storage          string             `json:"storage"`
	File             string             `json:"file,omitempty"`
	FileURL          string             `json:"fileUrl,omitempty"`
	Benchmark        int                `json:"benchmark"`
	CrisisReport     *CrisisReport      `json:"crisisReport,omitempty"`
	PerformanceMarks map[string]float64 `json:"performanceMarks,omitempty"`
}

// CrisisReport 针对一批新摄取记录的危机检测结果
type CrisisReport struct {
	Crisis        bool     `json:"crisis"`
	NegativeRatio float64  `json:"negativeRatio,omitempty"`
	AngerRatio    float64  `json:"angerRatio,omitempty"`
	Reasons       []string `json:"reasons,omitempty"`
}
