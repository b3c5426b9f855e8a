package export

import (
	"Lighthouse/internal/model"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/goccy/go-json"
)

func sampleComments() []*model.YouTubeComment {
	return []*model.YouTubeComment{
		{
			VideoID: "v1", Author: "alice", Text: "love it",
			PublishedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			LikeCount:   3, Sentiment: "Positive", RawScore: 1, ScaledScore: 5.0,
			Benchmark: 5, SentimentConfidence: 0.91, Emotion: "Joy", EmotionConfidence: 0.8,
		},
		{
			VideoID: "v1", Author: "bob", Text: "awful",
			Sentiment: "Negative", RawScore: -1, ScaledScore: 0,
			Benchmark: 5, SentimentConfidence: 0.88, Emotion: "Anger", EmotionConfidence: 0.7,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	path, err := writer.WriteCSV("Acme Corp", "bad review", sampleComments())
	assert.Equal(t, nil, err)

	// 目录与文件名片段小写下划线化
	rel, _ := filepath.Rel(dir, path)
	parts := strings.Split(filepath.ToSlash(rel), "/")
	assert.Equal(t, "youtube", parts[0])
	assert.Equal(t, "acme_corp", parts[1])
	assert.Equal(t, true, strings.HasPrefix(parts[3], "run_"))
	assert.Equal(t, true, strings.HasSuffix(parts[3], "_bad_review.csv"))

	file, err := os.Open(path)
	assert.Equal(t, nil, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, "video_id", rows[0][0])
	assert.Equal(t, "love it", rows[1][2])
	assert.Equal(t, "0.00", rows[2][7])
}

func TestMetadataAppendsOnePerRun(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	path1, err := writer.WriteCSV("acme", "alpha", sampleComments())
	assert.Equal(t, nil, err)
	_, err = writer.WriteCSV("acme", "beta", sampleComments())
	assert.Equal(t, nil, err)

	metaPath := filepath.Join(filepath.Dir(path1), "metadata.json")
	content, err := os.ReadFile(metaPath)
	assert.Equal(t, nil, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, 2, len(lines))

	var meta runMetadata
	assert.Equal(t, nil, json.Unmarshal([]byte(lines[0]), &meta))
	assert.Equal(t, "acme", meta.Brand)
	assert.Equal(t, "alpha", meta.Keyword)
	assert.Equal(t, 2, meta.Records)
	assert.Equal(t, filepath.Base(path1), meta.File)
}
