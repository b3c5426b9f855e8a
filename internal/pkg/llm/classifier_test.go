package llm

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel 每次调用按序返回预置的回复
type fakeModel struct {
	responses []string
	calls     int
	err       error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	content := f.responses[f.calls%len(f.responses)]
	f.calls++
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := f.GenerateContent(ctx, nil)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func TestClassifySentimentBatch_ScoreScaling(t *testing.T) {
	model := &fakeModel{responses: []string{
		`[{"sentiment":"negative","confidence":0.91},
		  {"sentiment":"neutral","confidence":0.55},
		  {"sentiment":"positive","confidence":0.87}]`,
	}}
	classifier := NewClassifierWithModel(model, "test-model", 20)

	results, err := classifier.ClassifySentimentBatch(context.Background(),
		[]string{"terrible", "meh", "amazing"}, 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(results))

	// scaled = ((raw+1)/2)*benchmark
	assert.Equal(t, "Negative", results[0].Sentiment)
	assert.Equal(t, -1, results[0].RawScore)
	assert.Equal(t, 0.0, results[0].ScaledScore)

	assert.Equal(t, "Neutral", results[1].Sentiment)
	assert.Equal(t, 0, results[1].RawScore)
	assert.Equal(t, 2.5, results[1].ScaledScore)

	assert.Equal(t, "Positive", results[2].Sentiment)
	assert.Equal(t, 1, results[2].RawScore)
	assert.Equal(t, 5.0, results[2].ScaledScore)
	assert.Equal(t, 5, results[2].Benchmark)
}

func TestClassifySentimentBatch_StripsCodeFence(t *testing.T) {
	model := &fakeModel{responses: []string{
		"```json\n[{\"sentiment\":\"positive\",\"confidence\":0.8}]\n```",
	}}
	classifier := NewClassifierWithModel(model, "test-model", 20)

	results, err := classifier.ClassifySentimentBatch(context.Background(), []string{"good"}, 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, "Positive", results[0].Sentiment)
	assert.Equal(t, 10.0, results[0].ScaledScore)
}

func TestClassifySentimentBatch_UnknownLabelFallsBackToNeutral(t *testing.T) {
	model := &fakeModel{responses: []string{
		`[{"sentiment":"ecstatic","confidence":0.7}]`,
	}}
	classifier := NewClassifierWithModel(model, "test-model", 20)

	results, err := classifier.ClassifySentimentBatch(context.Background(), []string{"wow"}, 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, "Neutral", results[0].Sentiment)
	assert.Equal(t, 0, results[0].RawScore)
}

func TestClassifySentimentBatch_LengthMismatch(t *testing.T) {
	model := &fakeModel{responses: []string{
		`[{"sentiment":"positive","confidence":0.8}]`,
	}}
	classifier := NewClassifierWithModel(model, "test-model", 20)

	_, err := classifier.ClassifySentimentBatch(context.Background(), []string{"a", "b"}, 5)

	if err == nil {
		t.Fatal("期望长度不一致错误")
	}
}

func TestClassifySentimentBatch_Chunking(t *testing.T) {
	model := &fakeModel{responses: []string{
		`[{"sentiment":"positive","confidence":0.8},{"sentiment":"negative","confidence":0.8}]`,
	}}
	classifier := NewClassifierWithModel(model, "test-model", 2)

	results, err := classifier.ClassifySentimentBatch(context.Background(),
		[]string{"a", "b", "c", "d"}, 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, 4, len(results))
	// 批大小为2，四条文本分两次调用
	assert.Equal(t, 2, model.calls)
}

func TestClassifyEmotionBatch_CanonicalLabels(t *testing.T) {
	model := &fakeModel{responses: []string{
		`[{"emotion":"anger","confidence":0.9},
		  {"emotion":"JOY","confidence":0.6},
		  {"emotion":"confused","confidence":0.5}]`,
	}}
	classifier := NewClassifierWithModel(model, "test-model", 20)

	results, err := classifier.ClassifyEmotionBatch(context.Background(),
		[]string{"grr", "yay", "huh"})

	assert.Equal(t, nil, err)
	assert.Equal(t, "Anger", results[0].Emotion)
	assert.Equal(t, "Joy", results[1].Emotion)
	// 不在标签集内回落为 Neutral
	assert.Equal(t, "Neutral", results[2].Emotion)
}
