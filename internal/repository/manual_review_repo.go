package repository

import (
	"Lighthouse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ManualReviewRepo interface {
	BulkInsert(ctx context.Context, reviews []*model.ManualReview) (int, error)
	// CountSentiments 人工录入只有入库时间，窗口按 created_at 过滤
	CountSentiments(ctx context.Context, organizationID string, since time.Time) (map[string]int, error)
	CountEmotions(ctx context.Context, organizationID string, since time.Time) (map[string]int, error)
	TopBySentiment(ctx context.Context, organizationID string, sentiment string, ascending bool, limit int) ([]*model.ManualReview, error)
}

type manualReviewRepoImpl struct {
	db *gorm.DB
}

func NewManualReviewRepo(db *gorm.DB) ManualReviewRepo {
	return &manualReviewRepoImpl{db: db}
}

func (r *manualReviewRepoImpl) BulkInsert(ctx context.Context, reviews []*model.ManualReview) (int, error) {
	if len(reviews) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Create(&reviews)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *manualReviewRepoImpl) CountSentiments(ctx context.Context, organizationID string, since time.Time) (map[string]int, error) {
	rows := make([]sentimentCountRow, 0)
	err := r.db.WithContext(ctx).
		Model(&model.ManualReview{}).
		Select("sentiment, count(*) as count").
		Where("organization_id = ?", organizationID).
		Where("created_at >= ?", since).
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

func (r *manualReviewRepoImpl) CountEmotions(ctx context.Context, organizationID string, since time.Time) (map[string]int, error) {
	rows := make([]emotionCountRow, 0)
	err := r.db.WithContext(ctx).
		Model(&model.ManualReview{}).
		Select("emotion, count(*) as count").
		Where("organization_id = ?", organizationID).
		Where("created_at >= ?", since).
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

func (r *manualReviewRepoImpl) TopBySentiment(ctx context.Context, organizationID string, sentiment string, ascending bool, limit int) ([]*model.ManualReview, error) {
	order := "scaled_score DESC"
	if ascending {
		order = "scaled_score ASC"
	}

	reviews := make([]*model.ManualReview, 0, limit)
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where("sentiment = ?", sentiment).
		Order(order).
		Limit(limit).
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return reviews, nil
}
