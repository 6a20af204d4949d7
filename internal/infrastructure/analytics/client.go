package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
)

// Client - HTTP клиент сервиса аналитики соцсетей
type Client struct {
	BaseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type platformMetricsResponse struct {
	Platforms []struct {
		Platform     string  `json:"platform"`
		Followers    int64   `json:"followers"`
		AvgLikes     float64 `json:"avg_likes"`
		AvgComments  float64 `json:"avg_comments"`
		QualityScore float64 `json:"quality_score"`
	} `json:"platforms"`
}

func (c *Client) GetCreatorMetrics(ctx context.Context, creatorID string) ([]domain.CreatorMetrics, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/creators/%s/metrics", c.BaseURL, creatorID), nil)
	if err != nil {
		return nil, err
	}

	response, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("analytics service returned status %d", response.StatusCode)
	}

	var parsed platformMetricsResponse
	if err := json.Unmarshal(responseBodyBytes, &parsed); err != nil {
		return nil, err
	}

	now := time.Now()
	metrics := make([]domain.CreatorMetrics, 0, len(parsed.Platforms))
	for _, p := range parsed.Platforms {
		metrics = append(metrics, domain.CreatorMetrics{
			CreatorID:    creatorID,
			Platform:     p.Platform,
			Followers:    p.Followers,
			AvgLikes:     p.AvgLikes,
			AvgComments:  p.AvgComments,
			QualityScore: p.QualityScore,
			CollectedAt:  now,
		})
	}
	return metrics, nil
}
