package api

import "Lighthouse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	IngestionHandler *handler.IngestionHandler
	DashboardHandler *handler.DashboardHandler
	InsightHandler   *handler.InsightHandler
	ReviewHandler    *handler.ReviewHandler
}
