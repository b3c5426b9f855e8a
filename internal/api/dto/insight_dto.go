package dto

// TopCommentDTO 榜单中的一条评论
type TopCommentDTO struct {
	Text        string  `json:"text"`
	Author      string  `json:"author,omitempty"`
	Platform    string  `json:"platform"`
	Sentiment   string  `json:"sentiment"`
	ScaledScore float64 `json:"scaledScore"`
	Benchmark   int     `json:"benchmark"`
}

// TopCommentsDTO 正负两个方向的评论榜单，各至多10条
type TopCommentsDTO struct {
	PositiveComments []*TopCommentDTO `json:"positiveComments"`
	NegativeComments []*TopCommentDTO `json:"negativeComments"`
}
