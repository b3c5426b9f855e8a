package wire

import (
	"Lighthouse/internal/api"
	"Lighthouse/internal/api/config"
	"Lighthouse/internal/api/handler"
	"Lighthouse/internal/job"
	"Lighthouse/internal/pkg/cron"
	"Lighthouse/internal/pkg/export"
	"Lighthouse/internal/pkg/kafka"
	"Lighthouse/internal/pkg/llm"
	"Lighthouse/internal/pkg/youtube"
	"Lighthouse/internal/repository"
	"Lighthouse/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	DB            *gorm.DB
	CronMgr       *cron.Manager
	AlertProducer *kafka.AlertProducer
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	commentRepo := repository.NewCommentRepo(db)
	manualRepo := repository.NewManualReviewRepo(db)
	orgRepo := repository.NewOrganizationRepo(db)
	jobStore := repository.NewJobStore(cfg.JobStore)

	classifier, err := llm.NewClassifier(cfg.LLM)
	if err != nil {
		return nil, err
	}
	connector := youtube.NewClient(cfg.YouTube)
	exporter := export.NewWriter(cfg.Storage.DataDir)

	alertProducer, err := kafka.NewAlertProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	ingestService := service.NewIngestService(connector, classifier, commentRepo, jobStore, exporter, alertProducer)
	dashboardService := service.NewDashboardService(commentRepo, manualRepo)
	insightService := service.NewInsightService(commentRepo, manualRepo)
	reviewService := service.NewReviewService(classifier, orgRepo, manualRepo)

	handlers := &api.HandlersGroup{
		IngestionHandler: handler.NewIngestionHandler(ingestService),
		DashboardHandler: handler.NewDashboardHandler(dashboardService),
		InsightHandler:   handler.NewInsightHandler(insightService),
		ReviewHandler:    handler.NewReviewHandler(reviewService),
	}

	router := api.SetupRouter(handlers)

	crisisScanJob := job.NewCrisisScanJob(orgRepo, commentRepo, manualRepo, alertProducer)
	cronMgr := cron.NewCronManager(crisisScanJob)

	return &ApplicationContainer{
		Router:        router,
		DB:            db,
		CronMgr:       cronMgr,
		AlertProducer: alertProducer,
	}, nil
}
