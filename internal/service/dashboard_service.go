package service

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/redis"
	"Lighthouse/internal/repository"
	"context"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// 仪表盘聚合结果缓存时长，新数据入库后由 invalidateOrganizationCache 主动失效
const summaryCacheTTL = 5 * time.Minute

// periodDays 周期到回看天数的固定映射，未识别的周期回落到 7d
var periodDays = map[string]int{
	"1d": 1,
	"7d": 7,
	"1m": 30,
	"3m": 90,
	"6m": 180,
	"1y": 365,
}

type DashboardService interface {
	// GetSummary 计算组织在指定平台口径与时间窗口内的聚合指标
	GetSummary(ctx context.Context, organizationID string, platform string, period string) (*dto.AggregateSummaryDTO, error)
}

type dashboardServiceImpl struct {
	commentRepo repository.CommentRepo
	manualRepo  repository.ManualReviewRepo
}

func NewDashboardService(commentRepo repository.CommentRepo, manualRepo repository.ManualReviewRepo) DashboardService {
	return &dashboardServiceImpl{
		commentRepo: commentRepo,
		manualRepo:  manualRepo,
	}
}

// platformCounts 单平台窗口内的原始计数
type platformCounts struct {
	positive int
	negative int
	neutral  int
	total    int
	emotions map[string]int
}

func (s *dashboardServiceImpl) GetSummary(ctx context.Context, organizationID string, platform string, period string) (*dto.AggregateSummaryDTO, error) {
	period = normalizePeriod(period)

	key := consts.DashboardSummaryKey + organizationID + ":" + platform + ":" + period
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var cached dto.AggregateSummaryDTO
		if err = json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}
	}

	since := time.Now().AddDate(0, 0, -periodDays[period])

	var summary *dto.AggregateSummaryDTO
	switch platform {
	case consts.PlatformYouTube:
		counts, err := s.collectYouTube(ctx, organizationID, since)
		if err != nil {
			return nil, err
		}
		summary = buildSummary(platform, period, counts)

	case consts.PlatformManual:
		counts, err := s.collectManual(ctx, organizationID, since)
		if err != nil {
			return nil, err
		}
		summary = buildSummary(platform, period, counts)

	case consts.PlatformConsolidated:
		youtube, err := s.collectYouTube(ctx, organizationID, since)
		if err != nil {
			return nil, err
		}
		manual, err := s.collectManual(ctx, organizationID, since)
		if err != nil {
			return nil, err
		}
		summary = buildConsolidatedSummary(period, youtube, manual)

	default:
		return nil, ErrPlatformInvalid
	}

	if data, err := json.Marshal(summary); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(data), summaryCacheTTL)
	}

	return summary, nil
}

func (s *dashboardServiceImpl) collectYouTube(ctx context.Context, organizationID string, since time.Time) (*platformCounts, error) {
	sentiments, err := s.commentRepo.CountSentiments(ctx, organizationID, since)
	if err != nil {
		return nil, err
	}
	emotions, err := s.commentRepo.CountEmotions(ctx, organizationID, since)
	if err != nil {
		return nil, err
	}
	return newPlatformCounts(sentiments, emotions), nil
}

func (s *dashboardServiceImpl) collectManual(ctx context.Context, organizationID string, since time.Time) (*platformCounts, error) {
	sentiments, err := s.manualRepo.CountSentiments(ctx, organizationID, since)
	if err != nil {
		return nil, err
	}
	emotions, err := s.manualRepo.CountEmotions(ctx, organizationID, since)
	if err != nil {
		return nil, err
	}
	return newPlatformCounts(sentiments, emotions), nil
}

func newPlatformCounts(sentiments map[string]int, emotions map[string]int) *platformCounts {
	counts := &platformCounts{emotions: make(map[string]int, len(emotions))}

	for label, count := range sentiments {
		switch canonicalLabel(label) {
		case consts.SentimentPositive:
			counts.positive += count
		case consts.SentimentNegative:
			counts.negative += count
		default:
			counts.neutral += count
		}
		counts.total += count
	}

	// 情绪键统一为规范大小写，避免不同来源的大小写差异割裂计数
	for label, count := range emotions {
		counts.emotions[canonicalLabel(label)] += count
	}

	return counts
}

func buildSummary(platform string, period string, counts *platformCounts) *dto.AggregateSummaryDTO {
	return &dto.AggregateSummaryDTO{
		Platform:      platform,
		Period:        period,
		PositiveCount: counts.positive,
		NegativeCount: counts.negative,
		NeutralCount:  counts.neutral,
		TotalCount:    counts.total,
		Approval:      percentOf(counts.positive, counts.total),
		Emotions:      counts.emotions,
	}
}

// buildConsolidatedSummary 合并口径对原始计数求和而非对百分比取平均，
// 避免平台数据量差异带来的加权偏差；总量为零的平台不进入分平台明细
func buildConsolidatedSummary(period string, youtube *platformCounts, manual *platformCounts) *dto.AggregateSummaryDTO {
	emotions := make(map[string]int, len(youtube.emotions)+len(manual.emotions))
	for label, count := range youtube.emotions {
		emotions[label] += count
	}
	for label, count := range manual.emotions {
		emotions[label] += count
	}

	positive := youtube.positive + manual.positive
	negative := youtube.negative + manual.negative
	neutral := youtube.neutral + manual.neutral
	total := youtube.total + manual.total

	platforms := make(map[string]*dto.PlatformBreakdownDTO, 2)
	if youtube.total > 0 {
		platforms[consts.PlatformYouTube] = buildBreakdown(youtube)
	}
	if manual.total > 0 {
		platforms[consts.PlatformManual] = buildBreakdown(manual)
	}

	return &dto.AggregateSummaryDTO{
		Platform:      consts.PlatformConsolidated,
		Period:        period,
		PositiveCount: positive,
		NegativeCount: negative,
		NeutralCount:  neutral,
		TotalCount:    total,
		Approval:      percentOf(positive, total),
		Emotions:      emotions,
		Platforms:     platforms,
	}
}

func buildBreakdown(counts *platformCounts) *dto.PlatformBreakdownDTO {
	return &dto.PlatformBreakdownDTO{
		Positive:      percentOf(counts.positive, counts.total),
		Negative:      percentOf(counts.negative, counts.total),
		Neutral:       percentOf(counts.neutral, counts.total),
		Approval:      percentOf(counts.positive, counts.total),
		PositiveCount: counts.positive,
		NegativeCount: counts.negative,
		NeutralCount:  counts.neutral,
		TotalCount:    counts.total,
	}
}

func normalizePeriod(period string) string {
	if _, ok := periodDays[period]; !ok {
		return "7d"
	}
	return period
}

// percentOf 整数百分比，total 为零时按约定返回 0
func percentOf(part int, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// canonicalLabel 首字母大写其余小写
func canonicalLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + strings.ToLower(label[1:])
}
