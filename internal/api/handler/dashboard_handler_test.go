package handler

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/goccy/go-json"
)

type fakeDashboardService struct {
	summary *dto.AggregateSummaryDTO
	err     error
}

func (f *fakeDashboardService) GetSummary(ctx context.Context, organizationID string, platform string, period string) (*dto.AggregateSummaryDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.summary.Platform = platform
	f.summary.Period = period
	return f.summary, nil
}

func newTestDashboardRouter(svc service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDashboardHandler(svc)
	r.GET("/api/dashboard/:organization_id", h.GetSummary)
	return r
}

func TestGetSummary_DefaultsApplied(t *testing.T) {
	svc := &fakeDashboardService{summary: &dto.AggregateSummaryDTO{TotalCount: 5, Approval: 40}}
	r := newTestDashboardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/dashboard/org-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code int                     `json:"code"`
		Data dto.AggregateSummaryDTO `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 200, res.Code)
	// 缺省口径为 consolidated + 7d
	assert.Equal(t, "consolidated", res.Data.Platform)
	assert.Equal(t, "7d", res.Data.Period)
	assert.Equal(t, 40, res.Data.Approval)
}

func TestGetSummary_InvalidPlatform(t *testing.T) {
	svc := &fakeDashboardService{err: service.ErrPlatformInvalid}
	r := newTestDashboardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/dashboard/org-1?platform=twitter", nil)
	r.ServeHTTP(w, req)

	var res dto.Response
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 400, res.Code)
}
