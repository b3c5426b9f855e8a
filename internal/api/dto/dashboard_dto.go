package dto

// PlatformBreakdownDTO 单平台在选定时间窗口内的占比与计数
// Positive/Negative/Neutral 为该平台自身总量的整数百分比
type PlatformBreakdownDTO struct {
	Positive      int `json:"positive"`
	Negative      int `json:"negative"`
	Neutral       int `json:"neutral"`
	Approval      int `json:"approval"`
	PositiveCount int `json:"positiveCount"`
	NegativeCount int `json:"negativeCount"`
	NeutralCount  int `json:"neutralCount"`
	TotalCount    int `json:"totalCount"`
}

// AggregateSummaryDTO 仪表盘聚合结果，每次查询即时重算
type AggregateSummaryDTO struct {
	Platform      string                           `json:"platform"`
	Period        string                           `json:"period"`
	PositiveCount int                              `json:"positiveCount"`
	NegativeCount int                              `json:"negativeCount"`
	NeutralCount  int                              `json:"neutralCount"`
	TotalCount    int                              `json:"totalCount"`
	Approval      int                              `json:"approval"`
	Emotions      map[string]int                   `json:"emotions"`
	Platforms     map[string]*PlatformBreakdownDTO `json:"platforms,omitempty"`
}
