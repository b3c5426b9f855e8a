package service

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDetectCrisis_Empty(t *testing.T) {
	report := DetectCrisis(0, 0, 0)

	assert.Equal(t, false, report.Crisis)
	assert.Equal(t, 0, len(report.Reasons))
}

func TestDetectCrisis_AtThresholdNotTriggered(t *testing.T) {
	// 阈值为严格大于，恰好 60% 负面不算危机
	report := DetectCrisis(60, 0, 100)

	assert.Equal(t, false, report.Crisis)
	assert.Equal(t, 0.6, report.NegativeRatio)
}

func TestDetectCrisis_NegativeSpike(t *testing.T) {
	report := DetectCrisis(61, 0, 100)

	assert.Equal(t, true, report.Crisis)
	assert.Equal(t, 0.61, report.NegativeRatio)
	assert.Equal(t, []string{"High negative sentiment spike"}, report.Reasons)
}

func TestDetectCrisis_AngerSpike(t *testing.T) {
	report := DetectCrisis(0, 41, 100)

	assert.Equal(t, true, report.Crisis)
	assert.Equal(t, 0.41, report.AngerRatio)
	assert.Equal(t, []string{"High anger emotion spike"}, report.Reasons)
}

func TestDetectCrisis_BothReasonsKept(t *testing.T) {
	report := DetectCrisis(70, 50, 100)

	assert.Equal(t, true, report.Crisis)
	assert.Equal(t, 2, len(report.Reasons))
	assert.Equal(t, "High negative sentiment spike", report.Reasons[0])
	assert.Equal(t, "High anger emotion spike", report.Reasons[1])
}
