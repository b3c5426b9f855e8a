package consts

// 情感标签，首字母大写为规范形式
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// 情绪标签
const (
	EmotionAnger    = "Anger"
	EmotionDisgust  = "Disgust"
	EmotionFear     = "Fear"
	EmotionJoy      = "Joy"
	EmotionNeutral  = "Neutral"
	EmotionSadness  = "Sadness"
	EmotionSurprise = "Surprise"
)

// 数据来源
const (
	SourceYouTube    = "youtube"
	SourceManual     = "manual"
	SourceFileUpload = "file_upload"
)

// 仪表盘平台口径
const (
	PlatformConsolidated = "consolidated"
	PlatformYouTube      = "youtube"
	PlatformManual       = "manual"
	PlatformAll          = "all"
)

// 存储方式
const (
	StorageCSV      = "csv"
	StorageExcel    = "excel"
	StorageDatabase = "database"
)

// 任务状态
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)
