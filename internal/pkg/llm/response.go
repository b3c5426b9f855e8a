package llm

import (
	"math"
	"strings"

	"github.com/goccy/go-json"
)

// SentimentResult 单条文本的情感分类结果
type SentimentResult struct {
	Sentiment   string  `json:"sentiment"`
	RawScore    int     `json:"raw_score"`
	ScaledScore float64 `json:"scaled_score"`
	Benchmark   int     `json:"benchmark"`
	Confidence  float64 `json:"confidence"`
}

// EmotionResult 单条文本的情绪分类结果
type EmotionResult struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"emotion_confidence"`
}

var mapSentimentScore = map[string]int{
	"negative": -1,
	"neutral":  0,
	"positive": 1,
}

var setEmotion = map[string]bool{
	"Anger":    true,
	"Disgust":  true,
	"Fear":     true,
	"Joy":      true,
	"Neutral":  true,
	"Sadness":  true,
	"Surprise": true,
}

type rawSentimentItem struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

type rawEmotionItem struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// cleanModelJSON 去除模型输出中可能包裹的markdown代码块标记
func cleanModelJSON(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseSentimentBatch 解析一个批次的情感结果并完成数值映射
// raw_score: negative→-1 neutral→0 positive→1，scaled = ((raw+1)/2)*benchmark 保留两位
func parseSentimentBatch(content string, benchmark int) ([]SentimentResult, error) {
	var items []rawSentimentItem
	if err := json.Unmarshal([]byte(cleanModelJSON(content)), &items); err != nil {
		return nil, err
	}

	results := make([]SentimentResult, 0, len(items))
	for _, item := range items {
		label := strings.ToLower(strings.TrimSpace(item.Sentiment))
		rawScore, ok := mapSentimentScore[label]
		if !ok {
			// 模型返回了集合外的标签，按中性处理
			label = "neutral"
			rawScore = 0
		}

		normalized := (float64(rawScore) + 1) / 2
		results = append(results, SentimentResult{
			Sentiment:   strings.ToUpper(label[:1]) + label[1:],
			RawScore:    rawScore,
			ScaledScore: round2(normalized * float64(benchmark)),
			Benchmark:   benchmark,
			Confidence:  round4(clampConfidence(item.Confidence)),
		})
	}
	return results, nil
}

// parseEmotionBatch 解析一个批次的情绪结果，统一为规范大小写
func parseEmotionBatch(content string) ([]EmotionResult, error) {
	var items []rawEmotionItem
	if err := json.Unmarshal([]byte(cleanModelJSON(content)), &items); err != nil {
		return nil, err
	}

	results := make([]EmotionResult, 0, len(items))
	for _, item := range items {
		label := strings.ToLower(strings.TrimSpace(item.Emotion))
		if label != "" {
			label = strings.ToUpper(label[:1]) + label[1:]
		}
		if !setEmotion[label] {
			label = "Neutral"
		}
		results = append(results, EmotionResult{
			Emotion:    label,
			Confidence: round4(clampConfidence(item.Confidence)),
		})
	}
	return results, nil
}
