package dto

// IngestRequestDTO YouTube摄取请求
type IngestRequestDTO struct {
	OrganizationID      string `json:"organization_id" validate:"required,uuid"`
	Brand               string `json:"brand" validate:"required,min=1,max=100"`
	Keyword             string `json:"keyword" validate:"required,min=1,max=200"`
	Storage             string `json:"storage" validate:"omitempty,oneof=csv excel database"`
	Benchmark           int    `json:"benchmark" validate:"omitempty,gte=1,lte=1000"`
	MaxVideos           int    `json:"max_videos" validate:"omitempty,gte=1,lte=20"`
	MaxCommentsPerVideo int    `json:"max_comments_per_video" validate:"omitempty,gte=1,lte=500"`
}

// FileIngestRequestDTO 文件摄取请求，文件内容由handler从表单读取
type FileIngestRequestDTO struct {
	OrganizationID string `json:"organization_id" form:"organization_id" validate:"required,uuid"`
	TextColumn     string `json:"text_column" form:"text_column" validate:"required,min=1,max=100"`
	Storage        string `json:"storage" form:"storage" validate:"omitempty,oneof=csv excel database"`
	Benchmark      int    `json:"benchmark" form:"benchmark" validate:"omitempty,gte=1,lte=1000"`
}

// IngestAcceptedDTO 任务受理回执
type IngestAcceptedDTO struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}
