package youtube

import (
	"Lighthouse/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrSourceUnavailable 上游搜索/评论接口不可用（非2xx、超时、响应不可解析）
var ErrSourceUnavailable = errors.New("YouTube数据源不可用")

const pageSize = 100

// RawComment 上游返回的原始评论，尚未经过分类
type RawComment struct {
	VideoID     string
	Author      string
	Text        string
	PublishedAt time.Time
	LikeCount   int
}

// Client YouTube Data API v3 客户端
type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(cfg config.YouTubeConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second)

	return &Client{
		http:   client,
		apiKey: cfg.ApiKey,
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay       string `json:"textDisplay"`
					AuthorDisplayName string `json:"authorDisplayName"`
					PublishedAt       string `json:"publishedAt"`
					LikeCount         int    `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos 按 品牌+关键词 搜索视频，返回至多 maxResults 个视频ID
func (c *Client) SearchVideos(ctx context.Context, brand string, keyword string, maxResults int) ([]string, error) {
	var result searchResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"q":          brand + " " + keyword,
			"type":       "video",
			"maxResults": fmt.Sprintf("%d", maxResults),
			"key":        c.apiKey,
		}).
		SetResult(&result).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: search status %d", ErrSourceUnavailable, resp.StatusCode())
	}

	videoIDs := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID != "" {
			videoIDs = append(videoIDs, item.ID.VideoID)
		}
	}

	log.InfoContext(ctx, "视频搜索完成", "brand", brand, "keyword", keyword, "videos", len(videoIDs))
	return videoIDs, nil
}

// FetchComments 分页拉取某视频的顶级评论，至多 maxComments 条
// 上游不再返回 nextPageToken 或返回空页时提前结束
func (c *Client) FetchComments(ctx context.Context, videoID string, maxComments int) ([]RawComment, error) {
	comments := make([]RawComment, 0, maxComments)
	pageToken := ""

	for len(comments) < maxComments {
		remaining := maxComments - len(comments)

		params := map[string]string{
			"part":       "snippet",
			"videoId":    videoID,
			"maxResults": fmt.Sprintf("%d", min(pageSize, remaining)),
			"textFormat": "plainText",
			"key":        c.apiKey,
		}
		if pageToken != "" {
			params["pageToken"] = pageToken
		}

		var result commentThreadsResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(&result).
			Get("/commentThreads")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("%w: commentThreads status %d", ErrSourceUnavailable, resp.StatusCode())
		}

		if len(result.Items) == 0 {
			break
		}

		for _, item := range result.Items {
			snippet := item.Snippet.TopLevelComment.Snippet

			publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt)
			if err != nil {
				publishedAt = time.Time{}
			}

			comments = append(comments, RawComment{
				VideoID:     videoID,
				Author:      snippet.AuthorDisplayName,
				Text:        snippet.TextDisplay,
				PublishedAt: publishedAt,
				LikeCount:   snippet.LikeCount,
			})
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(comments) > maxComments {
		comments = comments[:maxComments]
	}

	log.InfoContext(ctx, "评论拉取完成", "video_id", videoID, "comments", len(comments))
	return comments, nil
}
