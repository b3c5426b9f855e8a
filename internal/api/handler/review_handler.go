package handler

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/pkg/response"
	"Lighthouse/internal/service"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewSvc: reviewSvc,
	}
}

// Upload 同步导入人工点评CSV，组织名未命中时返回候选名称
func (s *ReviewHandler) Upload(c *gin.Context) {
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

	result, err := s.reviewSvc.UploadReviews(c.Request.Context(), content)
	if err != nil {
		var lookupErr *service.OrgLookupError
		if errors.As(err, &lookupErr) {
			response.FailWithData(c, response.NotFound, lookupErr.Error(), &dto.OrganizationLookupErrorDTO{
				Name:       lookupErr.Name,
				Candidates: lookupErr.Candidates,
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
