package job

import (
	"Lighthouse/internal/model"
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/logger"
	"Lighthouse/internal/repository"
	"Lighthouse/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// crisisAlertPublisher 告警发布能力，由 kafka.AlertProducer 实现
type crisisAlertPublisher interface {
	PublishCrisis(ctx context.Context, organizationID string, source string, report *model.CrisisReport) error
}

// CrisisScanJob 每日扫描各组织近24小时的记录做危机检测
type CrisisScanJob struct {
	orgRepo     repository.OrganizationRepo
	commentRepo repository.CommentRepo
	manualRepo  repository.ManualReviewRepo
	publisher   crisisAlertPublisher
}

func NewCrisisScanJob(
	orgRepo repository.OrganizationRepo,
	commentRepo repository.CommentRepo,
	manualRepo repository.ManualReviewRepo,
	publisher crisisAlertPublisher,
) *CrisisScanJob {
	return &CrisisScanJob{
		orgRepo:     orgRepo,
		commentRepo: commentRepo,
		manualRepo:  manualRepo,
		publisher:   publisher,
	}
}

func (s *CrisisScanJob) Run() {
	traceID := "job-crisis-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	orgIDs, err := s.orgRepo.ListIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "组织列表读取失败", "err", err)
		return
	}

	log.InfoContext(ctx, "CrisisScanJob processing", "org_count", len(orgIDs))

	since := time.Now().AddDate(0, 0, -1)
	for _, orgID := range orgIDs {
		report, err := s.scanOrganization(ctx, orgID, since)
		if err != nil {
			log.ErrorContext(ctx, "组织危机扫描失败", "org", orgID, "err", err)
			continue
		}
		if !report.Crisis {
			continue
		}

		log.WarnContext(ctx, "检测到舆情危机", "org", orgID,
			"negativeRatio", report.NegativeRatio, "angerRatio", report.AngerRatio, "reasons", report.Reasons)
		if err = s.publisher.PublishCrisis(ctx, orgID, "scheduled_scan", report); err != nil {
			log.ErrorContext(ctx, "危机告警发布失败", "org", orgID, "err", err)
		}
	}
}

// scanOrganization 汇总两张表近24小时的计数后做阈值检测
func (s *CrisisScanJob) scanOrganization(ctx context.Context, orgID string, since time.Time) (*model.CrisisReport, error) {
	negative, anger, total := 0, 0, 0

	for _, counter := range []struct {
		sentiments func(context.Context, string, time.Time) (map[string]int, error)
		emotions   func(context.Context, string, time.Time) (map[string]int, error)
	}{
		{s.commentRepo.CountSentiments, s.commentRepo.CountEmotions},
		{s.manualRepo.CountSentiments, s.manualRepo.CountEmotions},
	} {
		sentiments, err := counter.sentiments(ctx, orgID, since)
		if err != nil {
			return nil, err
		}
		for label, count := range sentiments {
			if label == consts.SentimentNegative {
				negative += count
			}
			total += count
		}

		emotions, err := counter.emotions(ctx, orgID, since)
		if err != nil {
			return nil, err
		}
		anger += emotions[consts.EmotionAnger]
	}

	return service.DetectCrisis(negative, anger, total), nil
}
