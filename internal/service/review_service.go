package service

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/model"
	"Lighthouse/internal/repository"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	log "log/slog"
	"strings"
	"time"
)

// 人工点评CSV的固定列名，与导出模板保持一致
const (
	reviewColumnOrganization = "Organization name"
	reviewColumnUsername     = "Username"
	reviewColumnText         = "Review"
	reviewColumnDate         = "Review submitted date"
)

const orgCandidateLimit = 5

// OrgLookupError 组织名未命中，附带模糊匹配到的候选名
type OrgLookupError struct {
	Name       string
	Candidates []string
}

func (e *OrgLookupError) Error() string {
	return fmt.Sprintf("组织不存在: %s", e.Name)
}

func (e *OrgLookupError) Unwrap() error {
	return ErrOrganizationNotFound
}

type ReviewService interface {
	// UploadReviews 同步解析、分类并入库一份人工点评CSV
	UploadReviews(ctx context.Context, content []byte) (*dto.ManualUploadResultDTO, error)
}

type reviewServiceImpl struct {
	classifier textClassifier
	orgRepo    repository.OrganizationRepo
	reviewRepo repository.ManualReviewRepo
}

func NewReviewService(classifier textClassifier, orgRepo repository.OrganizationRepo, reviewRepo repository.ManualReviewRepo) ReviewService {
	return &reviewServiceImpl{
		classifier: classifier,
		orgRepo:    orgRepo,
		reviewRepo: reviewRepo,
	}
}

// reviewRow 一行已解析的点评
type reviewRow struct {
	organization string
	username     string
	text         string
	submittedAt  *time.Time
}

func (s *reviewServiceImpl) UploadReviews(ctx context.Context, content []byte) (*dto.ManualUploadResultDTO, error) {
	rows, err := parseReviewCSV(content)
	if err != nil {
		return nil, err
	}

	// 先整体解析组织名，任何一行解析失败都不落库
	orgIDs := make(map[string]string)
	for _, row := range rows {
		if _, ok := orgIDs[row.organization]; ok {
			continue
		}
		org, err := s.orgRepo.GetByName(ctx, row.organization)
		if err != nil {
			return nil, ErrPersistence
		}
		if org == nil {
			candidates, _ := s.orgRepo.FindNamesLike(ctx, row.organization, orgCandidateLimit)
			return nil, &OrgLookupError{Name: row.organization, Candidates: candidates}
		}
		orgIDs[row.organization] = org.ID
	}

	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.text
	}
	sentiments, err := s.classifier.ClassifySentimentBatch(ctx, texts, defaultBenchmark)
	if err != nil {
		return nil, err
	}
	emotions, err := s.classifier.ClassifyEmotionBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(sentiments) != len(rows) || len(emotions) != len(rows) {
		return nil, ErrClassifier
	}

	reviews := make([]*model.ManualReview, 0, len(rows))
	for i, row := range rows {
		reviews = append(reviews, &model.ManualReview{
			OrganizationID:      orgIDs[row.organization],
			Username:            row.username,
			ReviewText:          row.text,
			ReviewSubmittedDate: row.submittedAt,
			Sentiment:           sentiments[i].Sentiment,
			RawScore:            sentiments[i].RawScore,
			ScaledScore:         sentiments[i].ScaledScore,
			Benchmark:           sentiments[i].Benchmark,
			SentimentConfidence: sentiments[i].Confidence,
			Emotion:             emotions[i].Emotion,
			EmotionConfidence:   emotions[i].Confidence,
		})
	}

	inserted, err := s.reviewRepo.BulkInsert(ctx, reviews)
	if err != nil {
		log.ErrorContext(ctx, "人工点评批量入库失败", "err", err)
		return nil, ErrPersistence
	}
	for _, orgID := range orgIDs {
		invalidateOrganizationCache(ctx, orgID)
	}

	log.InfoContext(ctx, "人工点评上传完成", "inserted", inserted)
	return &dto.ManualUploadResultDTO{Inserted: inserted}, nil
}

// parseReviewCSV 按固定列名解析点评CSV，跳过正文为空的行
func parseReviewCSV(content []byte) ([]reviewRow, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, ErrFileEmpty
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{reviewColumnOrganization, reviewColumnUsername, reviewColumnText} {
		if _, ok := columns[required]; !ok {
			return nil, ErrColumnNotFound
		}
	}

	var rows []reviewRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrFileNotSupported
		}

		row := reviewRow{
			organization: fieldAt(record, columns[reviewColumnOrganization]),
			username:     fieldAt(record, columns[reviewColumnUsername]),
			text:         fieldAt(record, columns[reviewColumnText]),
		}
		if row.text == "" || row.organization == "" {
			continue
		}
		if i, ok := columns[reviewColumnDate]; ok {
			row.submittedAt = parseReviewDate(fieldAt(record, i))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrFileEmpty
	}
	return rows, nil
}

func fieldAt(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseReviewDate 宽松解析提交日期，解析失败按缺失处理
func parseReviewDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
