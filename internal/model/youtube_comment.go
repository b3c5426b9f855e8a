package model

import (
	"time"
)

// YouTubeComment 一条已完成情感打分的YouTube评论
type YouTubeComment struct {
	ID                  uint64    `gorm:"primaryKey" json:"id"`
	OrganizationID      string    `gorm:"type:varchar(36);not null;index:idx_org_id" json:"organizationId"`
	Source              string    `gorm:"type:varchar(20);not null;default:youtube" json:"source"`
	VideoID             string    `gorm:"type:varchar(20);not null;index:idx_video_id" json:"videoId"`
	Author              string    `gorm:"type:varchar(100)" json:"author"`
	Text                string    `gorm:"type:text;not null" json:"text"`
	PublishedAt         time.Time `gorm:"index:idx_published_at" json:"publishedAt"`
	LikeCount           int       `gorm:"not null;default:0" json:"likeCount"`
	Sentiment           string    `gorm:"type:varchar(10);not null;index:idx_sentiment" json:"sentiment"`
	RawScore            int       `gorm:"not null" json:"rawScore"` // -1 / 0 / 1
	ScaledScore         float64   `gorm:"not null" json:"scaledScore"`
	Benchmark           int       `gorm:"not null" json:"benchmark"`
	SentimentConfidence float64   `gorm:"not null" json:"sentimentConfidence"`
	Emotion             string    `gorm:"type:varchar(10)" json:"emotion"`
	EmotionConfidence   float64   `gorm:"not null" json:"emotionConfidence"`
	FetchedAt           time.Time `json:"fetchedAt"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (YouTubeComment) TableName() string {
	return "youtube_comments"
}
