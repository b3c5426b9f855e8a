package model

import (
	"time"
)

// ManualReview 人工录入/文件上传的评价，时间窗口过滤以 CreatedAt 为准
type ManualReview struct {
	ID                  uint64     `gorm:"primaryKey" json:"id"`
	OrganizationID      string     `gorm:"type:varchar(36);not null;index:idx_org_id" json:"organizationId"`
	Source              string     `gorm:"type:varchar(20);not null;default:manual" json:"source"`
	Username            string     `gorm:"type:varchar(100)" json:"username"`
	ReviewText          string     `gorm:"type:text;not null" json:"reviewText"`
	ReviewSubmittedDate *time.Time `json:"reviewSubmittedDate"`
	Sentiment           string     `gorm:"type:varchar(10);not null;index:idx_sentiment" json:"sentiment"`
	RawScore            int        `gorm:"not null" json:"rawScore"`
	ScaledScore         float64    `gorm:"not null" json:"scaledScore"`
	Benchmark           int        `gorm:"not null" json:"benchmark"`
	SentimentConfidence float64    `gorm:"not null" json:"sentimentConfidence"`
	Emotion             string     `gorm:"type:varchar(10)" json:"emotion"`
	EmotionConfidence   float64    `gorm:"not null" json:"emotionConfidence"`
	CreatedAt           time.Time  `gorm:"index:idx_created_at" json:"createdAt"`
}

func (ManualReview) TableName() string {
	return "manual_reviews"
}
