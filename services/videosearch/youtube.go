package videosearch

import (
	"context"
	"fmt"
	"time"

	"coursify/config"

	"github.com/go-resty/resty/v2"
)

// Video is the metadata returned for one search hit.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	URL          string `json:"url"`
}

// Searcher resolves a free-text query into video metadata. Lesson enrichment
// uses it best-effort only; a search failure never fails a lesson.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Video, error)
}

// YoutubeClient implements Searcher against the YouTube Data API v3.
type YoutubeClient struct {
	client *resty.Client
	apiKey string
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

func NewYoutubeClient() *YoutubeClient {
	cfg := config.AppConfig
	client := resty.New().
		SetBaseURL(cfg.YoutubeApiUrl).
		SetTimeout(15 * time.Second)
	return &YoutubeClient{client: client, apiKey: cfg.YoutubeApiKey}
}

// Search returns up to 3 videos for the query.
func (y *YoutubeClient) Search(ctx context.Context, query string) ([]Video, error) {
	if y.apiKey == "" {
		return nil, fmt.Errorf("youtube API key is not configured")
	}

	var result searchResponse
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"type":       "video",
			"maxResults": "3",
			"q":          query,
			"key":        y.apiKey,
		}).
		SetResult(&result).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("youtube search returned %s", resp.Status())
	}

	videos := make([]Video, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			URL:          "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}
	return videos, nil
}
