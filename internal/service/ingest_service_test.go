package service

import (
	"Lighthouse/internal/api/dto"
	"Lighthouse/internal/model"
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/llm"
	"Lighthouse/internal/pkg/youtube"
	"Lighthouse/internal/repository"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeConnector struct {
	videos   []string
	comments map[string][]youtube.RawComment
	err      error
}

func (f *fakeConnector) SearchVideos(ctx context.Context, brand string, keyword string, maxResults int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.videos, nil
}

func (f *fakeConnector) FetchComments(ctx context.Context, videoID string, maxComments int) ([]youtube.RawComment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.comments[videoID], nil
}

// fakeClassifier 按文本内容给出确定性结果
type fakeClassifier struct {
	err error
}

func (f *fakeClassifier) ClassifySentimentBatch(ctx context.Context, texts []string, benchmark int) ([]llm.SentimentResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	results := make([]llm.SentimentResult, 0, len(texts))
	for _, text := range texts {
		if strings.Contains(text, "bad") {
			results = append(results, llm.SentimentResult{
				Sentiment: consts.SentimentNegative, RawScore: -1, ScaledScore: 0, Benchmark: benchmark, Confidence: 0.9,
			})
			continue
		}
		results = append(results, llm.SentimentResult{
			Sentiment: consts.SentimentPositive, RawScore: 1, ScaledScore: float64(benchmark), Benchmark: benchmark, Confidence: 0.9,
		})
	}
	return results, nil
}

func (f *fakeClassifier) ClassifyEmotionBatch(ctx context.Context, texts []string) ([]llm.EmotionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	results := make([]llm.EmotionResult, 0, len(texts))
	for _, text := range texts {
		if strings.Contains(text, "bad") {
			results = append(results, llm.EmotionResult{Emotion: consts.EmotionAnger, Confidence: 0.8})
			continue
		}
		results = append(results, llm.EmotionResult{Emotion: consts.EmotionJoy, Confidence: 0.8})
	}
	return results, nil
}

type fakeExporter struct {
	path    string
	written int
}

func (f *fakeExporter) WriteCSV(brand string, keyword string, comments []*model.YouTubeComment) (string, error) {
	f.written = len(comments)
	return f.path, nil
}

func (f *fakeExporter) WriteXLSX(brand string, keyword string, comments []*model.YouTubeComment) (string, error) {
	f.written = len(comments)
	return f.path, nil
}

type fakePublisher struct {
	published []*model.CrisisReport
}

func (f *fakePublisher) PublishCrisis(ctx context.Context, organizationID string, source string, report *model.CrisisReport) error {
	f.published = append(f.published, report)
	return nil
}

func waitForJob(t *testing.T, svc IngestService, jobID string) *model.IngestJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := svc.GetJobStatus(context.Background(), jobID)
		if err != nil {
			t.Fatalf("任务查询失败: %v", err)
		}
		if job.Status != consts.JobStatusProcessing {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("任务超时未结束")
	return nil
}

const testOrgID = "0d6f9a62-4f1c-45c6-9a36-5ad5ef0a27c5"

func TestSubmitIngestion_DatabaseStorage(t *testing.T) {
	connector := &fakeConnector{
		videos: []string{"v1", "v2"},
		comments: map[string][]youtube.RawComment{
			"v1": {
				{VideoID: "v1", Author: "a", Text: "love it", LikeCount: 3},
				{VideoID: "v1", Author: "b", Text: "bad product", LikeCount: 1},
			},
			"v2": {
				{VideoID: "v2", Author: "c", Text: "nice"},
			},
		},
	}
	commentRepo := &fakeCommentRepo{}
	svc := NewIngestService(connector, &fakeClassifier{}, commentRepo,
		repository.NewMemoryJobStore(), &fakeExporter{}, &fakePublisher{})

	accepted, err := svc.SubmitIngestion(context.Background(), &dto.IngestRequestDTO{
		OrganizationID: testOrgID,
		Brand:          "acme",
		Keyword:        "review",
		Storage:        consts.StorageDatabase,
		Benchmark:      10,
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, consts.JobStatusProcessing, accepted.Status)

	job := waitForJob(t, svc, accepted.JobID)

	assert.Equal(t, consts.JobStatusCompleted, job.Status)
	assert.Equal(t, 3, job.Result.Records)
	assert.Equal(t, 2, job.Result.VideosProcessed)
	assert.Equal(t, 10, job.Result.Benchmark)

	// 单次批量入库，按位置合并分类结果
	assert.Equal(t, 3, len(commentRepo.inserted))
	first := commentRepo.inserted[0]
	assert.Equal(t, "love it", first.Text)
	assert.Equal(t, consts.SentimentPositive, first.Sentiment)
	assert.Equal(t, 10.0, first.ScaledScore)
	assert.Equal(t, consts.EmotionJoy, first.Emotion)
	second := commentRepo.inserted[1]
	assert.Equal(t, consts.SentimentNegative, second.Sentiment)
	assert.Equal(t, 0.0, second.ScaledScore)
	assert.Equal(t, consts.EmotionAnger, second.Emotion)

	// 3条中1条负面，未过阈值
	assert.Equal(t, false, job.Result.CrisisReport.Crisis)
	if _, ok := job.Result.PerformanceMarks["total_time"]; !ok {
		t.Fatal("缺少total_time性能标记")
	}
}

func TestSubmitIngestion_CrisisTriggersAlert(t *testing.T) {
	connector := &fakeConnector{
		videos: []string{"v1"},
		comments: map[string][]youtube.RawComment{
			"v1": {
				{VideoID: "v1", Text: "bad"},
				{VideoID: "v1", Text: "very bad"},
				{VideoID: "v1", Text: "so bad"},
				{VideoID: "v1", Text: "ok fine"},
			},
		},
	}
	publisher := &fakePublisher{}
	exporter := &fakeExporter{path: "/tmp/out.csv"}
	svc := NewIngestService(connector, &fakeClassifier{}, &fakeCommentRepo{},
		repository.NewMemoryJobStore(), exporter, publisher)

	accepted, _ := svc.SubmitIngestion(context.Background(), &dto.IngestRequestDTO{
		OrganizationID: testOrgID,
		Brand:          "acme",
		Keyword:        "fail",
	})
	job := waitForJob(t, svc, accepted.JobID)

	assert.Equal(t, consts.JobStatusCompleted, job.Status)
	// 默认csv模式走导出而不是入库
	assert.Equal(t, 4, exporter.written)
	assert.Equal(t, "/tmp/out.csv", job.Result.File)

	// 3/4 负面、3/4 愤怒，两个阈值都触发
	assert.Equal(t, true, job.Result.CrisisReport.Crisis)
	assert.Equal(t, 2, len(job.Result.CrisisReport.Reasons))
	assert.Equal(t, 1, len(publisher.published))
}

func TestSubmitIngestion_SourceFailureFailsJob(t *testing.T) {
	// 连接器抛自己的哨兵，落到任务上必须已翻译成业务侧哨兵
	connector := &fakeConnector{err: youtube.ErrSourceUnavailable}
	svc := NewIngestService(connector, &fakeClassifier{}, &fakeCommentRepo{},
		repository.NewMemoryJobStore(), &fakeExporter{}, &fakePublisher{})

	accepted, _ := svc.SubmitIngestion(context.Background(), &dto.IngestRequestDTO{
		OrganizationID: testOrgID,
		Brand:          "acme",
		Keyword:        "review",
	})
	job := waitForJob(t, svc, accepted.JobID)

	assert.Equal(t, consts.JobStatusFailed, job.Status)
	assert.Equal(t, true, strings.Contains(job.Error, ErrSourceUnavailable.Error()))
	assert.Equal(t, true, job.Result == nil)
}

func TestSourceFailure_MapsToBusinessSentinel(t *testing.T) {
	err := sourceFailure(youtube.ErrSourceUnavailable)

	assert.Equal(t, true, errors.Is(err, ErrSourceUnavailable))
	assert.Equal(t, true, strings.Contains(err.Error(), youtube.ErrSourceUnavailable.Error()))
}

func TestGetJobStatus_Unknown(t *testing.T) {
	svc := NewIngestService(&fakeConnector{}, &fakeClassifier{}, &fakeCommentRepo{},
		repository.NewMemoryJobStore(), &fakeExporter{}, &fakePublisher{})

	_, err := svc.GetJobStatus(context.Background(), "no-such-job")

	assert.Equal(t, ErrJobNotFound, err)
}

func TestSubmitFileIngestion_CSV(t *testing.T) {
	content := []byte("id,comment\n1,love it\n2,bad stuff\n3,\n4,nice\n")
	commentRepo := &fakeCommentRepo{}
	svc := NewIngestService(&fakeConnector{}, &fakeClassifier{}, commentRepo,
		repository.NewMemoryJobStore(), &fakeExporter{}, &fakePublisher{})

	accepted, err := svc.SubmitFileIngestion(context.Background(), &dto.FileIngestRequestDTO{
		OrganizationID: testOrgID,
		TextColumn:     "comment",
		Storage:        consts.StorageDatabase,
	}, "feedback.csv", content)
	assert.Equal(t, nil, err)

	job := waitForJob(t, svc, accepted.JobID)

	assert.Equal(t, consts.JobStatusCompleted, job.Status)
	// 空正文的行被跳过
	assert.Equal(t, 3, job.Result.Records)
	assert.Equal(t, 3, len(commentRepo.inserted))
	assert.Equal(t, consts.SourceFileUpload, commentRepo.inserted[0].Source)
}

func TestSubmitFileIngestion_ColumnNotFound(t *testing.T) {
	content := []byte("id,comment\n1,hello\n")
	svc := NewIngestService(&fakeConnector{}, &fakeClassifier{}, &fakeCommentRepo{},
		repository.NewMemoryJobStore(), &fakeExporter{}, &fakePublisher{})

	_, err := svc.SubmitFileIngestion(context.Background(), &dto.FileIngestRequestDTO{
		OrganizationID: testOrgID,
		TextColumn:     "review_text",
	}, "feedback.csv", content)

	assert.Equal(t, ErrColumnNotFound, err)
}

func TestSubmitFileIngestion_UnsupportedExtension(t *testing.T) {
	svc := NewIngestService(&fakeConnector{}, &fakeClassifier{}, &fakeCommentRepo{},
		repository.NewMemoryJobStore(), &fakeExporter{}, &fakePublisher{})

	_, err := svc.SubmitFileIngestion(context.Background(), &dto.FileIngestRequestDTO{
		OrganizationID: testOrgID,
		TextColumn:     "comment",
	}, "feedback.txt", []byte("whatever"))

	assert.Equal(t, ErrFileNotSupported, err)
}
