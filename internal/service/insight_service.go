package service

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/model"
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/redis"
	"Lighthouse/internal/repository"
	"context"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const (
	topCommentLimit = 10
	// 榜单缓存时长，与仪表盘聚合保持一致
	topCommentsCacheTTL = 5 * time.Minute
)

type InsightService interface {
	// GetTopComments 取组织在指定平台口径下打分最高与最低的各前十条
	GetTopComments(ctx context.Context, organizationID string, platform string) (*dto.TopCommentsDTO, error)
}

type insightServiceImpl struct {
	commentRepo repository.CommentRepo
	manualRepo  repository.ManualReviewRepo
}

func NewInsightService(commentRepo repository.CommentRepo, manualRepo repository.ManualReviewRepo) InsightService {
	return &insightServiceImpl{
		commentRepo: commentRepo,
		manualRepo:  manualRepo,
	}
}

func (s *insightServiceImpl) GetTopComments(ctx context.Context, organizationID string, platform string) (*dto.TopCommentsDTO, error) {
	key := consts.TopCommentsKey + organizationID + ":" + platform
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var cached dto.TopCommentsDTO
		if err = json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}
	}

	var result *dto.TopCommentsDTO
	switch platform {
	case consts.PlatformYouTube, consts.PlatformManual:
		positive, err := s.topFor(ctx, organizationID, platform, consts.SentimentPositive, false)
		if err != nil {
			return nil, err
		}
		negative, err := s.topFor(ctx, organizationID, platform, consts.SentimentNegative, true)
		if err != nil {
			return nil, err
		}
		result = &dto.TopCommentsDTO{PositiveComments: positive, NegativeComments: negative}

	case consts.PlatformAll:
		// 全平台取各平台候选后重排截断，保证跨平台排名正确
		positive, err := s.mergedTop(ctx, organizationID, consts.SentimentPositive, false)
		if err != nil {
			return nil, err
		}
		negative, err := s.mergedTop(ctx, organizationID, consts.SentimentNegative, true)
		if err != nil {
			return nil, err
		}
		result = &dto.TopCommentsDTO{PositiveComments: positive, NegativeComments: negative}

	default:
		return nil, ErrPlatformInvalid
	}

	if data, err := json.Marshal(result); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(data), topCommentsCacheTTL)
	}

	return result, nil
}

func (s *insightServiceImpl) topFor(ctx context.Context, organizationID string, platform string, sentiment string, ascending bool) ([]*dto.TopCommentDTO, error) {
	switch platform {
	case consts.PlatformYouTube:
		comments, err := s.commentRepo.TopBySentiment(ctx, organizationID, sentiment, ascending, topCommentLimit)
		if err != nil {
			return nil, err
		}
		return youTubeCommentDTOs(comments), nil
	default:
		reviews, err := s.manualRepo.TopBySentiment(ctx, organizationID, sentiment, ascending, topCommentLimit)
		if err != nil {
			return nil, err
		}
		return manualReviewDTOs(reviews), nil
	}
}

func (s *insightServiceImpl) mergedTop(ctx context.Context, organizationID string, sentiment string, ascending bool) ([]*dto.TopCommentDTO, error) {
	youtube, err := s.topFor(ctx, organizationID, consts.PlatformYouTube, sentiment, ascending)
	if err != nil {
		return nil, err
	}
	manual, err := s.topFor(ctx, organizationID, consts.PlatformManual, sentiment, ascending)
	if err != nil {
		return nil, err
	}

	merged := append(youtube, manual...)
	sort.SliceStable(merged, func(i, j int) bool {
		if ascending {
			return merged[i].ScaledScore < merged[j].ScaledScore
		}
		return merged[i].ScaledScore > merged[j].ScaledScore
	})
	if len(merged) > topCommentLimit {
		merged = merged[:topCommentLimit]
	}
	return merged, nil
}

func youTubeCommentDTOs(comments []*model.YouTubeComment) []*dto.TopCommentDTO {
	result := make([]*dto.TopCommentDTO, 0, len(comments))
	for _, comment := range comments {
		item := &dto.TopCommentDTO{Platform: consts.PlatformYouTube}
		_ = copier.Copy(item, comment)
		result = append(result, item)
	}
	return result
}

func manualReviewDTOs(reviews []*model.ManualReview) []*dto.TopCommentDTO {
	result := make([]*dto.TopCommentDTO, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, &dto.TopCommentDTO{
			Text:        review.ReviewText,
			Author:      review.Username,
			Platform:    consts.PlatformManual,
			Sentiment:   review.Sentiment,
			ScaledScore: review.ScaledScore,
			Benchmark:   review.Benchmark,
		})
	}
	return result
}
