package llm

import (
	"Lighthouse/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultBatchSize = 20

// Classifier 情感/情绪分类器，由进程显式构造并注入编排器
type Classifier struct {
	model     llms.Model
	modelName string
	batchSize int
}

// NewClassifier 根据配置构造分类器
func NewClassifier(cfg config.LLMConfig) (*Classifier, error) {
	model, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)
	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return nil, err
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Classifier{
		model:     model,
		modelName: cfg.Model,
		batchSize: batchSize,
	}, nil
}

// NewClassifierWithModel 注入现成的模型实例，测试替身用
func NewClassifierWithModel(model llms.Model, modelName string, batchSize int) *Classifier {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Classifier{
		model:     model,
		modelName: modelName,
		batchSize: batchSize,
	}
}

// ClassifySentimentBatch 批量情感分类，结果与输入等长且顺序一致
func (c *Classifier) ClassifySentimentBatch(ctx context.Context, texts []string, benchmark int) ([]SentimentResult, error) {
	results := make([]SentimentResult, 0, len(texts))

	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))
		chunk := texts[start:end]

		content, err := c.fetchModel(ctx, sentimentBatchPrompt, buildNumberedPrompt(chunk))
		if err != nil {
			log.ErrorContext(ctx, "情感分类-AI大模型请求失败", "err", err)
			return nil, err
		}

		parsed, err := parseSentimentBatch(content, benchmark)
		if err != nil {
			log.ErrorContext(ctx, "情感分类-AI大模型返回数据解析失败", "err", err, "content", content)
			return nil, err
		}
		if len(parsed) != len(chunk) {
			return nil, fmt.Errorf("情感分类结果数量与输入不一致: got %d, want %d", len(parsed), len(chunk))
		}

		results = append(results, parsed...)
	}

	return results, nil
}

// ClassifyEmotionBatch 批量情绪分类，结果与输入等长且顺序一致
func (c *Classifier) ClassifyEmotionBatch(ctx context.Context, texts []string) ([]EmotionResult, error) {
	results := make([]EmotionResult, 0, len(texts))

	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))
		chunk := texts[start:end]

		content, err := c.fetchModel(ctx, emotionBatchPrompt, buildNumberedPrompt(chunk))
		if err != nil {
			log.ErrorContext(ctx, "情绪分类-AI大模型请求失败", "err", err)
			return nil, err
		}

		parsed, err := parseEmotionBatch(content)
		if err != nil {
			log.ErrorContext(ctx, "情绪分类-AI大模型返回数据解析失败", "err", err, "content", content)
			return nil, err
		}
		if len(parsed) != len(chunk) {
			return nil, fmt.Errorf("情绪分类结果数量与输入不一致: got %d, want %d", len(parsed), len(chunk))
		}

		results = append(results, parsed...)
	}

	return results, nil
}

func (c *Classifier) fetchModel(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if err := ClassifySem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer ClassifySem.Release(1)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithModel(c.modelName),
		llms.WithTemperature(0),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("AI大模型返回数据为空")
	}
	return resp.Choices[0].Content, nil
}

// buildNumberedPrompt 将文本拼成带编号的列表，换行压扁避免破坏编号
func buildNumberedPrompt(texts []string) string {
	var builder strings.Builder
	for i, text := range texts {
		flat := strings.ReplaceAll(text, "\n", " ")
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, flat))
	}
	return builder.String()
}
