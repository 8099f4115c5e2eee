// File path: internal/remote/client.go
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nicodishanthj/fitsight/internal/activity"
	"github.com/nicodishanthj/fitsight/internal/common"
	"github.com/nicodishanthj/fitsight/internal/common/telemetry"
)

// ActivityDetail is the remote view of one activity, including the free-text
// description that carries posted insights.
type ActivityDetail struct {
	activity.Activity
	Description string
}

// Client is the boundary to the remote activity-tracking service. The
// reconciliation engine only ever reads activities and replaces descriptions
// through this interface.
type Client interface {
	Activity(ctx context.Context, id string) (*ActivityDetail, error)
	RecentActivities(ctx context.Context, start, limit int) ([]activity.Activity, error)
	UpdateDescription(ctx context.Context, id, description string) error
}

// HTTPClient implements Client against the service's REST API.
type HTTPClient struct {
	cfg        Config
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a client from the provided configuration.
func NewClient(cfg Config) (*HTTPClient, error) {
	if !cfg.Enabled() {
		return nil, errors.New("remote endpoint not configured")
	}
	logger := common.Logger()
	logger.Info("remote: initializing client", "endpoint", cfg.Endpoint, "timeout", cfg.Timeout)
	transport := &http.Transport{
		MaxIdleConns:        cfg.HTTPMaxIdleConns,
		MaxIdleConnsPerHost: cfg.HTTPMaxIdlePerHost,
		IdleConnTimeout:     cfg.HTTPIdleConnTimeout,
	}
	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
	}, nil
}

// NewFromEnv loads configuration and constructs a client, returning nil when
// no endpoint is configured.
func NewFromEnv() (*HTTPClient, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return nil, nil
	}
	return NewClient(cfg)
}

// Activity fetches one activity with its current description.
func (c *HTTPClient) Activity(ctx context.Context, id string) (*ActivityDetail, error) {
	if c == nil {
		return nil, errors.New("remote client not initialised")
	}
	var payload wireActivity
	url := fmt.Sprintf("%s/activity-service/activity/%s", c.baseURL, id)
	started := time.Now()
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch activity %s: %w", id, err)
	}
	telemetry.RecordRemoteRequest("activity", time.Since(started))
	detail := &ActivityDetail{Activity: payload.toActivity(), Description: payload.Description}
	return detail, nil
}

// RecentActivities lists activities ordered most recent first, using the
// service's offset-based paging.
func (c *HTTPClient) RecentActivities(ctx context.Context, start, limit int) ([]activity.Activity, error) {
	if c == nil {
		return nil, errors.New("remote client not initialised")
	}
	if limit <= 0 {
		limit = 20
	}
	if start < 0 {
		start = 0
	}
	var payload []wireActivity
	url := fmt.Sprintf("%s/activitylist-service/activities/search/activities?start=%d&limit=%d", c.baseURL, start, limit)
	started := time.Now()
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch recent activities: %w", err)
	}
	telemetry.RecordRemoteRequest("activity_list", time.Since(started))
	activities := make([]activity.Activity, 0, len(payload))
	for _, wire := range payload {
		activities = append(activities, wire.toActivity())
	}
	return activities, nil
}

// UpdateDescription replaces the full description text of an activity.
func (c *HTTPClient) UpdateDescription(ctx context.Context, id, description string) error {
	if c == nil {
		return errors.New("remote client not initialised")
	}
	body, err := json.Marshal(map[string]string{
		"activityId":  id,
		"description": description,
	})
	if err != nil {
		return fmt.Errorf("encode description: %w", err)
	}
	url := fmt.Sprintf("%s/activity-service/activity/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update activity %s: %w", id, err)
	}
	defer drainAndClose(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("update activity %s: unexpected status %d", id, resp.StatusCode)
	}
	telemetry.RecordRemoteRequest("update_description", time.Since(started))
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if token := strings.TrimSpace(c.cfg.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
