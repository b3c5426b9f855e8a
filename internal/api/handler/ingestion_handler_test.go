package handler

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/model"
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/goccy/go-json"
)

type fakeIngestService struct {
	jobs map[string]*model.IngestJob
}

func (f *fakeIngestService) SubmitIngestion(ctx context.Context, req *dto.IngestRequestDTO) (*dto.IngestAcceptedDTO, error) {
	return &dto.IngestAcceptedDTO{JobID: "job-1", Status: consts.JobStatusProcessing}, nil
}

func (f *fakeIngestService) SubmitFileIngestion(ctx context.Context, req *dto.FileIngestRequestDTO, filename string, content []byte) (*dto.IngestAcceptedDTO, error) {
	return &dto.IngestAcceptedDTO{JobID: "job-2", Status: consts.JobStatusProcessing}, nil
}

func (f *fakeIngestService) GetJobStatus(ctx context.Context, jobID string) (*model.IngestJob, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, service.ErrJobNotFound
	}
	return job, nil
}

func newTestIngestRouter(svc service.IngestService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewIngestionHandler(svc)
	r.POST("/api/ingest", h.SubmitIngest)
	r.GET("/api/ingest/status/:job_id", h.GetStatus)
	return r
}

func TestSubmitIngest_Accepted(t *testing.T) {
	r := newTestIngestRouter(&fakeIngestService{})

	body := `{"organization_id":"0d6f9a62-4f1c-45c6-9a36-5ad5ef0a27c5","brand":"acme","keyword":"review"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var res dto.Response
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 202, res.Code)
}

func TestSubmitIngest_InvalidOrganizationID(t *testing.T) {
	r := newTestIngestRouter(&fakeIngestService{})

	body := `{"organization_id":"not-a-uuid","brand":"acme","keyword":"review"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res dto.Response
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 400, res.Code)
}

func TestSubmitIngest_InvalidStorage(t *testing.T) {
	r := newTestIngestRouter(&fakeIngestService{})

	body := `{"organization_id":"0d6f9a62-4f1c-45c6-9a36-5ad5ef0a27c5","brand":"acme","keyword":"review","storage":"ftp"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/ingest", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res dto.Response
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 400, res.Code)
}

func TestGetStatus_Known(t *testing.T) {
	svc := &fakeIngestService{jobs: map[string]*model.IngestJob{
		"job-1": {ID: "job-1", Status: consts.JobStatusCompleted, Result: &model.IngestRunResult{Records: 7}},
	}}
	r := newTestIngestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ingest/status/job-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code int             `json:"code"`
		Data model.IngestJob `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 200, res.Code)
	assert.Equal(t, consts.JobStatusCompleted, res.Data.Status)
	assert.Equal(t, 7, res.Data.Result.Records)
}

func TestGetStatus_Unknown(t *testing.T) {
	r := newTestIngestRouter(&fakeIngestService{jobs: map[string]*model.IngestJob{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ingest/status/nope", nil)
	r.ServeHTTP(w, req)

	var res dto.Response
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 404, res.Code)
}
