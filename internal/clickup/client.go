// Package clickup creates the follow-up task in the task tracking service
// for each form submission. Unlike the onboarding API client this one fails
// loudly: callers decide whether the failure matters.
package clickup

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/edibridge/onboard/internal/errl"
	"github.com/edibridge/onboard/internal/models"
)

const defaultBaseURL = "https://api.clickup.com/api/v2"

// Fixed task attributes for every onboarding submission.
const (
	taskStatus   = "to do"
	taskPriority = 3
)

var taskTags = []string{"edi-onboarding", "vendor"}

// Config configures the task tracking client.
type Config struct {
	// BaseURL of the API. Defaults to the public ClickUp endpoint.
	BaseURL string
	// ListID is the list the tasks are created in.
	ListID string
	// Token is sent raw in the Authorization header. ClickUp does not use
	// the Bearer prefix.
	Token string
	// Timeout in seconds for each request. Defaults to 30.
	Timeout int
}

// Client is the task tracking client.
type Client struct {
	cfg  Config
	http *http.Client
}

// Task is the created task as reported by the service.
type Task struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type taskRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Priority     int      `json:"priority"`
	Tags         []string `json:"tags"`
	CustomFields []any    `json:"custom_fields"`
}

type errorResponse struct {
	Err string `json:"err"`
}

// NewClient creates a task tracking client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.Token == "" {
		return nil, errl.Errorf("clickup client requires a token")
	}
	if cfg.ListID == "" {
		return nil, errl.Errorf("clickup client requires a list id")
	}
	c := *cfg
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg: c,
		http: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

// CreateTask creates one task for the submitted form: the company name as
// title, the formatted description as body, fixed status, priority and tags.
func (c *Client) CreateTask(ctx context.Context, payload models.OnboardingPayload) (*Task, error) {
	body := taskRequest{
		Name:         payload.Section1Data.CompanyName,
		Description:  FormatTaskDescription(payload),
		Status:       taskStatus,
		Priority:     taskPriority,
		Tags:         taskTags,
		CustomFields: []any{},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, errl.Errorf("failed to marshal task request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/list/" + c.cfg.ListID + "/task"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, errl.Error(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errl.Errorf("task request failed: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errl.Errorf("failed to read task response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(respData, &errResp); err == nil && errResp.Err != "" {
			return nil, errl.Errorf("clickup: %s", errResp.Err)
		}
		return nil, errl.Errorf("clickup: HTTP %d", resp.StatusCode)
	}

	var task Task
	if err := json.Unmarshal(respData, &task); err != nil {
		return nil, errl.Errorf("failed to decode task response: %w", err)
	}

	slog.Info("Created tracking task", "task_id", task.ID, "name", task.Name)
	return &task, nil
}
