package handler

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/pkg/response"
	"Lighthouse/internal/pkg/util"
	"Lighthouse/internal/service"
	"io"

	"github.com/gin-gonic/gin"
)

type IngestionHandler struct {
	ingestSvc service.IngestService
}

func NewIngestionHandler(ingestSvc service.IngestService) *IngestionHandler {
	return &IngestionHandler{
		ingestSvc: ingestSvc,
	}
}

// SubmitIngest 受理YouTube摄取请求，立即返回任务号
func (s *IngestionHandler) SubmitIngest(c *gin.Context) {
	var req dto.IngestRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	accepted, err := s.ingestSvc.SubmitIngestion(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accept(c, accepted)
}

// SubmitFile 受理文件摄取请求，表单携带文件与参数
func (s *IngestionHandler) SubmitFile(c *gin.Context) {
	var req dto.FileIngestRequestDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.BadRequest, "缺少上传文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	accepted, err := s.ingestSvc.SubmitFileIngestion(c.Request.Context(), &req, fileHeader.Filename, content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accept(c, accepted)
}

// GetStatus 查询摄取任务状态
func (s *IngestionHandler) GetStatus(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		response.Fail(c, response.BadRequest, "缺少任务号")
		return
	}

	job, err := s.ingestSvc.GetJobStatus(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, job)
}
