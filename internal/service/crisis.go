package service

import (
	"Lighthouse/internal/model"
	"math"
)

// 危机判定阈值，均为严格大于
const (
	crisisNegativeThreshold = 0.6
	crisisAngerThreshold    = 0.4
)

const (
	reasonNegativeSpike = "High negative sentiment spike"
	reasonAngerSpike    = "High anger emotion spike"
)

// DetectCrisis 对一批记录的统计量做危机判定，纯函数
// 多个阈值同时触发时全部原因都会保留
func DetectCrisis(negativeCount int, angerCount int, total int) *model.CrisisReport {
	if total == 0 {
		return &model.CrisisReport{Crisis: false}
	}

	negativeRatio := float64(negativeCount) / float64(total)
	angerRatio := float64(angerCount) / float64(total)

	reasons := make([]string, 0, 2)
	if negativeRatio > crisisNegativeThreshold {
		reasons = append(reasons, reasonNegativeSpike)
	}
	if angerRatio > crisisAngerThreshold {
		reasons = append(reasons, reasonAngerSpike)
	}

	return &model.CrisisReport{
		Crisis:        len(reasons) > 0,
		NegativeRatio: math.Round(negativeRatio*100) / 100,
		AngerRatio:    math.Round(angerRatio*100) / 100,
		Reasons:       reasons,
	}
}
