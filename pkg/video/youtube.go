package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

var ErrMissingKey = errors.New("youtube api key is not configured")

// Video is one recommendation shown next to a course.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Client queries the YouTube Data API search endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns up to max videos for query. Any non-2xx answer is an error.
func (c *Client) Search(ctx context.Context, query string, max int) ([]Video, error) {
	if c.APIKey == "" {
		return nil, ErrMissingKey
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(max))
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("youtube error: status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	videos := make([]Video, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		videos = append(videos, Video{
			ID:        item.ID.VideoID,
			Title:     item.Snippet.Title,
			Thumbnail: item.Snippet.Thumbnails.Medium.URL,
			Channel:   item.Snippet.ChannelTitle,
		})
	}
	return videos, nil
}

// Fallback is the fixed list served whenever search is unavailable.
func Fallback() []Video {
	return []Video{
		{
			ID:        "Y_9t3eQFmU4",
			Title:     "Computer Science Basics: Programming Languages",
			Thumbnail: "https://i.ytimg.com/vi/Y_9t3eQFmU4/mqdefault.jpg",
			Channel:   "LearnFree",
		},
		{
			ID:        "zOjov-2OZ0E",
			Title:     "Introduction to Programming and Computer Science",
			Thumbnail: "https://i.ytimg.com/vi/zOjov-2OZ0E/mqdefault.jpg",
			Channel:   "freeCodeCamp.org",
		},
		{
			ID:        "l26oaHV7D40",
			Title:     "Programming Basics: Statements & Functions",
			Thumbnail: "https://i.ytimg.com/vi/l26oaHV7D40/mqdefault.jpg",
			Channel:   "CrashCourse",
		},
	}
}
