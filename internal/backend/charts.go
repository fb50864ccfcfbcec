package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// chartMaxBytes caps how much rendered image we are willing to buffer.
const chartMaxBytes = 5 << 20

// ChartClient fetches pre-rendered occupancy charts from the external chart
// service. Chart generation itself is the service's concern; the bot only
// relays the PNG to the chat.
type ChartClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewChartClient creates a chart service client.
func NewChartClient(baseURL string) *ChartClient {
	return &ChartClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// OccupancyChart returns the rendered occupancy chart PNG for a facility.
func (c *ChartClient) OccupancyChart(ctx context.Context, facility string) ([]byte, error) {
	u := c.baseURL + "?facility=" + url.QueryEscape(facility)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build chart request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch chart: unexpected status %d", resp.StatusCode)
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, chartMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("read chart body: %w", err)
	}
	return img, nil
}
