package service

import (
	"math"
	"time"
)

// pipelineTimer 记录一次摄取运行各阶段的耗时（秒）
type pipelineTimer struct {
	start time.Time
	marks map[string]float64
}

func newPipelineTimer() *pipelineTimer {
	return &pipelineTimer{
		start: time.Now(),
		marks: make(map[string]float64),
	}
}

func (t *pipelineTimer) Mark(label string) {
	t.marks[label] = roundSeconds(time.Since(t.start))
}

func (t *pipelineTimer) Report() map[string]float64 {
	t.marks["total_time"] = roundSeconds(time.Since(t.start))
	return t.marks
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10000) / 10000
}
