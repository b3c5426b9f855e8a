package repository

import (
	"Lighthouse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// sentimentCountRow GROUP BY 聚合行
type sentimentCountRow struct {
	Sentiment string
	Count     int
}

type emotionCountRow struct {
	Emotion string
	Count   int
}

type CommentRepo interface {
	// BulkInsert 整批写入，调用方应将返回错误视为"部分写入状态未知"
	BulkInsert(ctx context.Context, comments []*model.YouTubeComment) (int, error)
	// CountSentiments 统计时间窗口内各情感标签数量，窗口按 published_at 过滤
	CountSentiments(ctx context.Context, organizationID string, since time.Time) (map[string]int, error)
	// CountEmotions 统计时间窗口内各情绪标签数量
	CountEmotions(ctx context.Context, organizationID string, since time.Time) (map[string]int, error)
	// TopBySentiment 按 scaled_score 排序取前 limit 条
	TopBySentiment(ctx context.Context, organizationID string, sentiment string, ascending bool, limit int) ([]*model.YouTubeComment, error)
}

type commentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepoImpl{db: db}
}

func (r *commentRepoImpl) BulkInsert(ctx context.Context, comments []*model.YouTubeComment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Create(&comments)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *commentRepoImpl) CountSentiments(ctx context.Context, organizationID string, since time.Time) (map[string]int, error) {
	rows := make([]sentimentCountRow, 0)
	err := r.db.WithContext(ctx).
		Model(&model.YouTubeComment{}).
		Select("sentiment, count(*) as count").
		Where("organization_id = ?", organizationID).
		Where("published_at >= ?", since).
		Group("sentiment").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Sentiment] = row.Count
	}
	return counts, nil
}

func (r *commentRepoImpl) CountEmotions(ctx context.Context, organizationID string, since time.Time) (map[string]int, error) {
	rows := make([]emotionCountRow, 0)
	err := r.db.WithContext(ctx).
		Model(&model.YouTubeComment{}).
		Select("emotion, count(*) as count").
		Where("organization_id = ?", organizationID).
		Where("published_at >= ?", since).
		Group("emotion").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.Emotion != "" {
			counts[row.Emotion] = row.Count
		}
	}
	return counts, nil
}

func (r *commentRepoImpl) TopBySentiment(ctx context.Context, organizationID string, sentiment string, ascending bool, limit int) ([]*model.YouTubeComment, error) {
	order := "scaled_score DESC"
	if ascending {
		order = "scaled_score ASC"
	}

	comments := make([]*model.YouTubeComment, 0, limit)
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where("sentiment = ?", sentiment).
		Order(order).
		Limit(limit).
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}
