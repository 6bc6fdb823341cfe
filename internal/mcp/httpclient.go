package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/gymtrack/internal/storage"
	"github.com/claude/gymtrack/internal/view"
	"github.com/claude/gymtrack/internal/workout"
)

// HTTPClient implements DataSource by calling the GymTrack REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// queryParams translates a view query into REST query parameters.
func queryParams(q view.Query) url.Values {
	v := url.Values{}
	if !q.Start.IsZero() {
		v.Set("start", q.Start.Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		v.Set("end", q.End.Format(time.RFC3339))
	}
	var sources []string
	if q.IncludeSheet {
		sources = append(sources, "sheet")
	}
	if q.IncludeTracker {
		sources = append(sources, "tracker")
	}
	if len(sources) > 0 && len(sources) < 2 {
		v.Set("sources", strings.Join(sources, ","))
	}
	return v
}

func (c *HTTPClient) Sets(ctx context.Context, q view.Query) (workout.Table, error) {
	body, err := c.get(ctx, "/api/v1/sets", queryParams(q))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Sets workout.Table `json:"sets"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode sets: %w", err)
	}
	return resp.Sets, nil
}

func (c *HTTPClient) Streak(ctx context.Context, q view.Query) (int, []workout.WeeklyCount, error) {
	body, err := c.get(ctx, "/api/v1/streak", queryParams(q))
	if err != nil {
		return 0, nil, err
	}

	var resp struct {
		StreakWeeks int                  `json:"streak_weeks"`
		WeeklySets  []workout.WeeklyCount `json:"weekly_sets"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, nil, fmt.Errorf("httpclient: decode streak: %w", err)
	}
	return resp.StreakWeeks, resp.WeeklySets, nil
}

func (c *HTTPClient) PersonalRecords(ctx context.Context, q view.Query) ([]workout.PersonalRecord, []workout.PersonalRecord, error) {
	body, err := c.get(ctx, "/api/v1/prs", queryParams(q))
	if err != nil {
		return nil, nil, err
	}

	var resp struct {
		MaxWeight []workout.PersonalRecord `json:"max_weight"`
		MaxVolume []workout.PersonalRecord `json:"max_volume"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("httpclient: decode prs: %w", err)
	}
	return resp.MaxWeight, resp.MaxVolume, nil
}

func (c *HTTPClient) Progress(ctx context.Context, q view.Query, exercise string) ([]workout.ProgressPoint, error) {
	params := queryParams(q)
	params.Set("exercise", exercise)

	body, err := c.get(ctx, "/api/v1/progress", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Series []workout.ProgressPoint `json:"series"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode progress: %w", err)
	}
	return resp.Series, nil
}

func (c *HTTPClient) Stats(ctx context.Context, _ int) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
