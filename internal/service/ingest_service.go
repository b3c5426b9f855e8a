package service

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/model"
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/llm"
	"Lighthouse/internal/pkg/logger"
	"Lighthouse/internal/pkg/minio"
	"Lighthouse/internal/pkg/youtube"
	"Lighthouse/internal/repository"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	log "log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// 摄取请求的默认参数
const (
	defaultStorage     = consts.StorageCSV
	defaultBenchmark   = 5
	defaultMaxVideos   = 5
	defaultMaxComments = 100
)

// sourceConnector 上游数据源能力，由 youtube.Client 实现
type sourceConnector interface {
	SearchVideos(ctx context.Context, brand string, keyword string, maxResults int) ([]string, error)
	FetchComments(ctx context.Context, videoID string, maxComments int) ([]youtube.RawComment, error)
}

// textClassifier 分类能力，由 llm.Classifier 实现
type textClassifier interface {
	ClassifySentimentBatch(ctx context.Context, texts []string, benchmark int) ([]llm.SentimentResult, error)
	ClassifyEmotionBatch(ctx context.Context, texts []string) ([]llm.EmotionResult, error)
}

// artifactWriter 导出文件能力，由 export.Writer 实现
type artifactWriter interface {
	WriteCSV(brand string, keyword string, comments []*model.YouTubeComment) (string, error)
	WriteXLSX(brand string, keyword string, comments []*model.YouTubeComment) (string, error)
}

// crisisPublisher 危机告警发布能力，由 kafka.AlertProducer 实现
type crisisPublisher interface {
	PublishCrisis(ctx context.Context, organizationID string, source string, report *model.CrisisReport) error
}

type IngestService interface {
	// SubmitIngestion 受理一次YouTube摄取请求，立即返回任务号，流水线在后台执行
	SubmitIngestion(ctx context.Context, req *dto.IngestRequestDTO) (*dto.IngestAcceptedDTO, error)
	// SubmitFileIngestion 受理一次文件摄取请求，立即返回任务号
	SubmitFileIngestion(ctx context.Context, req *dto.FileIngestRequestDTO, filename string, content []byte) (*dto.IngestAcceptedDTO, error)
	// GetJobStatus 查询任务状态，未知任务返回 ErrJobNotFound
	GetJobStatus(ctx context.Context, jobID string) (*model.IngestJob, error)
}

type ingestServiceImpl struct {
	connector   sourceConnector
	classifier  textClassifier
	commentRepo repository.CommentRepo
	jobStore    repository.JobStore
	exporter    artifactWriter
	publisher   crisisPublisher
}

func NewIngestService(
	connector sourceConnector,
	classifier textClassifier,
	commentRepo repository.CommentRepo,
	jobStore repository.JobStore,
	exporter artifactWriter,
	publisher crisisPublisher,
) IngestService {
	return &ingestServiceImpl{
		connector:   connector,
		classifier:  classifier,
		commentRepo: commentRepo,
		jobStore:    jobStore,
		exporter:    exporter,
		publisher:   publisher,
	}
}

func (s *ingestServiceImpl) SubmitIngestion(ctx context.Context, req *dto.IngestRequestDTO) (*dto.IngestAcceptedDTO, error) {
	applyIngestDefaults(req)

	job := &model.IngestJob{
		ID:        uuid.NewString(),
		Status:    consts.JobStatusProcessing,
		Source:    consts.SourceYouTube,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.jobStore.Create(ctx, job); err != nil {
		return nil, ErrPersistence
	}

	go s.runYouTubePipeline(job.ID, req)

	log.InfoContext(ctx, "摄取任务已受理", "jobID", job.ID, "brand", req.Brand, "keyword", req.Keyword)
	return &dto.IngestAcceptedDTO{JobID: job.ID, Status: job.Status}, nil
}

func (s *ingestServiceImpl) SubmitFileIngestion(ctx context.Context, req *dto.FileIngestRequestDTO, filename string, content []byte) (*dto.IngestAcceptedDTO, error) {
	if req.Storage == "" {
		req.Storage = defaultStorage
	}
	if req.Benchmark == 0 {
		req.Benchmark = defaultBenchmark
	}

	// 列名与文件格式在受理前同步校验，避免无效任务进入后台
	texts, err := parseUploadTexts(filename, content, req.TextColumn)
	if err != nil {
		return nil, err
	}

	job := &model.IngestJob{
		ID:        uuid.NewString(),
		Status:    consts.JobStatusProcessing,
		Source:    consts.SourceFileUpload,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err = s.jobStore.Create(ctx, job); err != nil {
		return nil, ErrPersistence
	}

	go s.runFilePipeline(job.ID, req, filename, texts)

	log.InfoContext(ctx, "文件摄取任务已受理", "jobID", job.ID, "file", filename, "rows", len(texts))
	return &dto.IngestAcceptedDTO{JobID: job.ID, Status: job.Status}, nil
}

func (s *ingestServiceImpl) GetJobStatus(ctx context.Context, jobID string) (*model.IngestJob, error) {
	job, err := s.jobStore.Get(ctx, jobID)
	if err != nil {
		return nil, ErrPersistence
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// runYouTubePipeline 后台worker，任务状态只会被本方法改写一次
func (s *ingestServiceImpl) runYouTubePipeline(jobID string, req *dto.IngestRequestDTO) {
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, jobID)
	timer := newPipelineTimer()

	videoIDs, err := s.connector.SearchVideos(ctx, req.Brand, req.Keyword, req.MaxVideos)
	if err != nil {
		s.failJob(ctx, jobID, sourceFailure(err))
		return
	}
	timer.Mark("search")

	var records []*model.YouTubeComment
	for _, videoID := range videoIDs {
		raw, err := s.connector.FetchComments(ctx, videoID, req.MaxCommentsPerVideo)
		if err != nil {
			s.failJob(ctx, jobID, sourceFailure(err))
			return
		}
		if len(raw) == 0 {
			continue
		}

		// 情感与情绪都按整段视频的评论批量送分，再按位置合并
		texts := make([]string, len(raw))
		for i, comment := range raw {
			texts[i] = comment.Text
		}
		sentiments, err := s.classifier.ClassifySentimentBatch(ctx, texts, req.Benchmark)
		if err != nil {
			s.failJob(ctx, jobID, err)
			return
		}
		emotions, err := s.classifier.ClassifyEmotionBatch(ctx, texts)
		if err != nil {
			s.failJob(ctx, jobID, err)
			return
		}

		normalized, err := normalizeComments(req.OrganizationID, raw, sentiments, emotions)
		if err != nil {
			s.failJob(ctx, jobID, err)
			return
		}
		records = append(records, normalized...)
	}
	timer.Mark("fetch_and_classify")

	result := &model.IngestRunResult{
		Records:         len(records),
		VideosProcessed: len(videoIDs),
		Storage:         req.Storage,
		Benchmark:       req.Benchmark,
	}

	// 全部视频处理完后单次落盘，中途不做部分写入
	if err = s.persistRun(ctx, req.Storage, req.Brand, req.Keyword, records, result); err != nil {
		s.failJob(ctx, jobID, err)
		return
	}
	timer.Mark("persist")

	result.CrisisReport = detectRunCrisis(records)
	if result.CrisisReport != nil && result.CrisisReport.Crisis {
		if err = s.publisher.PublishCrisis(ctx, req.OrganizationID, consts.SourceYouTube, result.CrisisReport); err != nil {
			log.WarnContext(ctx, "危机告警发布失败", "jobID", jobID, "err", err)
		}
	}

	result.PerformanceMarks = timer.Report()
	s.completeJob(ctx, jobID, result)
}

func (s *ingestServiceImpl) runFilePipeline(jobID string, req *dto.FileIngestRequestDTO, filename string, texts []string) {
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, jobID)
	timer := newPipelineTimer()

	sentiments, err := s.classifier.ClassifySentimentBatch(ctx, texts, req.Benchmark)
	if err != nil {
		s.failJob(ctx, jobID, err)
		return
	}
	emotions, err := s.classifier.ClassifyEmotionBatch(ctx, texts)
	if err != nil {
		s.failJob(ctx, jobID, err)
		return
	}
	timer.Mark("classify")

	now := time.Now()
	records := make([]*model.YouTubeComment, 0, len(texts))
	for i, text := range texts {
		records = append(records, &model.YouTubeComment{
			OrganizationID:      req.OrganizationID,
			Source:              consts.SourceFileUpload,
			Text:                text,
			PublishedAt:         now,
			Sentiment:           sentiments[i].Sentiment,
			RawScore:            sentiments[i].RawScore,
			ScaledScore:         sentiments[i].ScaledScore,
			Benchmark:           sentiments[i].Benchmark,
			SentimentConfidence: sentiments[i].Confidence,
			Emotion:             emotions[i].Emotion,
			EmotionConfidence:   emotions[i].Confidence,
			FetchedAt:           now,
		})
	}

	result := &model.IngestRunResult{
		Records:   len(records),
		Storage:   req.Storage,
		Benchmark: req.Benchmark,
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if err = s.persistRun(ctx, req.Storage, base, "upload", records, result); err != nil {
		s.failJob(ctx, jobID, err)
		return
	}
	timer.Mark("persist")

	result.CrisisReport = detectRunCrisis(records)
	if result.CrisisReport != nil && result.CrisisReport.Crisis {
		if err = s.publisher.PublishCrisis(ctx, req.OrganizationID, consts.SourceFileUpload, result.CrisisReport); err != nil {
			log.WarnContext(ctx, "危机告警发布失败", "jobID", jobID, "err", err)
		}
	}

	result.PerformanceMarks = timer.Report()
	s.completeJob(ctx, jobID, result)
}

// persistRun 按存储模式落库或导出文件，文件模式下同时尝试上传对象存储
func (s *ingestServiceImpl) persistRun(ctx context.Context, storage string, brand string, keyword string, records []*model.YouTubeComment, result *model.IngestRunResult) error {
	if len(records) == 0 {
		return nil
	}

	switch storage {
	case consts.StorageDatabase:
		if _, err := s.commentRepo.BulkInsert(ctx, records); err != nil {
			log.ErrorContext(ctx, "评论批量入库失败", "err", err)
			return ErrPersistence
		}
		invalidateOrganizationCache(ctx, records[0].OrganizationID)
		return nil

	case consts.StorageCSV, consts.StorageExcel:
		var path string
		var err error
		if storage == consts.StorageExcel {
			path, err = s.exporter.WriteXLSX(brand, keyword, records)
		} else {
			path, err = s.exporter.WriteCSV(brand, keyword, records)
		}
		if err != nil {
			log.ErrorContext(ctx, "结果文件导出失败", "err", err)
			return ErrPersistence
		}
		result.File = path

		objectName := filepath.ToSlash(path)
		if key, upErr := minio.UploadFile(ctx, path, objectName, exportContentType(storage)); upErr != nil {
			log.WarnContext(ctx, "导出文件上传对象存储失败", "file", path, "err", upErr)
		} else if key != "" {
			result.FileURL = minio.GetPublicURL(key)
		}
		return nil

	default:
		return ErrStorageInvalid
	}
}

func (s *ingestServiceImpl) completeJob(ctx context.Context, jobID string, result *model.IngestRunResult) {
	job := s.loadJob(ctx, jobID)
	if job == nil {
		return
	}
	job.Status = consts.JobStatusCompleted
	job.Result = result
	job.UpdatedAt = time.Now()
	if err := s.jobStore.Update(ctx, job); err != nil {
		log.ErrorContext(ctx, "任务状态更新失败", "jobID", jobID, "err", err)
		return
	}
	log.InfoContext(ctx, "摄取任务完成", "jobID", jobID, "records", result.Records)
}

func (s *ingestServiceImpl) failJob(ctx context.Context, jobID string, cause error) {
	job := s.loadJob(ctx, jobID)
	if job == nil {
		return
	}
	job.Status = consts.JobStatusFailed
	job.Error = cause.Error()
	job.UpdatedAt = time.Now()
	if err := s.jobStore.Update(ctx, job); err != nil {
		log.ErrorContext(ctx, "任务状态更新失败", "jobID", jobID, "err", err)
		return
	}
	log.ErrorContext(ctx, "摄取任务失败", "jobID", jobID, "err", cause)
}

// sourceFailure 把连接器错误统一收敛到业务侧哨兵，保留原始原因便于排查
func sourceFailure(cause error) error {
	return fmt.Errorf("%w: %v", ErrSourceUnavailable, cause)
}

func (s *ingestServiceImpl) loadJob(ctx context.Context, jobID string) *model.IngestJob {
	job, err := s.jobStore.Get(ctx, jobID)
	if err != nil || job == nil {
		log.ErrorContext(ctx, "任务读取失败", "jobID", jobID, "err", err)
		return nil
	}
	return job
}

// normalizeComments 把原始评论与两路分类结果按位置合并为入库记录
// 长度不一致或正文为空视为上游契约被破坏，整段丢弃并报错
func normalizeComments(organizationID string, raw []youtube.RawComment, sentiments []llm.SentimentResult, emotions []llm.EmotionResult) ([]*model.YouTubeComment, error) {
	if len(sentiments) != len(raw) || len(emotions) != len(raw) {
		return nil, ErrClassifier
	}

	now := time.Now()
	records := make([]*model.YouTubeComment, 0, len(raw))
	for i, comment := range raw {
		if strings.TrimSpace(comment.Text) == "" {
			return nil, ErrParamInvalid
		}
		records = append(records, &model.YouTubeComment{
			OrganizationID:      organizationID,
			Source:              consts.SourceYouTube,
			VideoID:             comment.VideoID,
			Author:              comment.Author,
			Text:                comment.Text,
			PublishedAt:         comment.PublishedAt,
			LikeCount:           comment.LikeCount,
			Sentiment:           sentiments[i].Sentiment,
			RawScore:            sentiments[i].RawScore,
			ScaledScore:         sentiments[i].ScaledScore,
			Benchmark:           sentiments[i].Benchmark,
			SentimentConfidence: sentiments[i].Confidence,
			Emotion:             emotions[i].Emotion,
			EmotionConfidence:   emotions[i].Confidence,
			FetchedAt:           now,
		})
	}
	return records, nil
}

// detectRunCrisis 对本次运行的新增记录做危机检测
func detectRunCrisis(records []*model.YouTubeComment) *model.CrisisReport {
	negative, anger := 0, 0
	for _, record := range records {
		if record.Sentiment == consts.SentimentNegative {
			negative++
		}
		if record.Emotion == consts.EmotionAnger {
			anger++
		}
	}
	return DetectCrisis(negative, anger, len(records))
}

// parseUploadTexts 解析上传文件，取指定列的非空文本
func parseUploadTexts(filename string, content []byte, textColumn string) ([]string, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSVRows(content)
	case ".xlsx":
		rows, err = readXLSXRows(content)
	default:
		return nil, ErrFileNotSupported
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrFileEmpty
	}

	column := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), textColumn) {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, ErrColumnNotFound
	}

	texts := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if column >= len(row) {
			continue
		}
		if text := strings.TrimSpace(row[column]); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return nil, ErrFileEmpty
	}
	return texts, nil
}

func readCSVRows(content []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrFileNotSupported
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSXRows(content []byte) ([][]string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, ErrFileNotSupported
	}
	defer book.Close()

	rows, err := book.GetRows(book.GetSheetName(0))
	if err != nil {
		return nil, ErrFileNotSupported
	}
	return rows, nil
}

func applyIngestDefaults(req *dto.IngestRequestDTO) {
	if req.Storage == "" {
		req.Storage = defaultStorage
	}
	if req.Benchmark == 0 {
		req.Benchmark = defaultBenchmark
	}
	if req.MaxVideos == 0 {
		req.MaxVideos = defaultMaxVideos
	}
	if req.MaxCommentsPerVideo == 0 {
		req.MaxCommentsPerVideo = defaultMaxComments
	}
}

// exportContentType 导出文件的MIME类型
func exportContentType(storage string) string {
	if storage == consts.StorageExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}
