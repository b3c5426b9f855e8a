package handler

import (
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/response"
	"Lighthouse/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightSvc service.InsightService
}

func NewInsightHandler(insightSvc service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightSvc: insightSvc,
	}
}

// GetTopComments 正负面打分最高的评论各前十条
func (s *InsightHandler) GetTopComments(c *gin.Context) {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		response.Fail(c, response.BadRequest, "缺少组织ID")
		return
	}

	platform := c.DefaultQuery("platform", consts.PlatformAll)

	top, err := s.insightSvc.GetTopComments(c.Request.Context(), organizationID, platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, top)
}
