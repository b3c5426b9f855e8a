package handler

import (
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/response"
	"Lighthouse/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
	}
}

// GetSummary 组织维度的聚合指标，platform 与 period 走查询参数
func (s *DashboardHandler) GetSummary(c *gin.Context) {
	organizationID := c.Param("organization_id")
	if organizationID == "" {
		response.Fail(c, response.BadRequest, "缺少组织ID")
		return
	}

	platform := c.DefaultQuery("platform", consts.PlatformConsolidated)
	period := c.DefaultQuery("period", "7d")

	summary, err := s.dashboardSvc.GetSummary(c.Request.Context(), organizationID, platform, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
