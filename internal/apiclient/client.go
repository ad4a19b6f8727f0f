// Package apiclient talks to the primary onboarding API. All responses are
// folded into a Result: the submit path never propagates transport errors,
// because a primary API failure must not abort the submission flow.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/edibridge/onboard/internal/errl"
	"github.com/edibridge/onboard/internal/models"
)

// Config configures the onboarding API client.
type Config struct {
	// BaseURL is the API root, for example "https://api.example.com/v1".
	BaseURL string
	// APIKey is sent as "Authorization: Bearer <key>" when non-empty.
	APIKey string
	// Timeout in seconds for each request. Defaults to 30.
	Timeout int
}

// Client is the onboarding API client.
type Client struct {
	cfg  Config
	http *http.Client
}

// Result is the uniform outcome of every API call.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message"`
}

// NewClient creates a client for the onboarding API.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errl.Errorf("api client requires a base URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg: *cfg,
		http: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

// SubmitOnboarding posts the complete form payload to POST /onboarding.
func (c *Client) SubmitOnboarding(ctx context.Context, payload models.OnboardingPayload) Result {
	return c.do(ctx, http.MethodPost, "/onboarding", payload,
		"Form submitted successfully", "Failed to submit form")
}

// GetTransactionTypes fetches the server-side transaction type list.
func (c *Client) GetTransactionTypes(ctx context.Context) Result {
	return c.do(ctx, http.MethodGet, "/transaction-types", nil,
		"Transaction types retrieved successfully", "Failed to retrieve transaction types")
}

// ValidateCompany asks the API to validate Section 1 data.
func (c *Client) ValidateCompany(ctx context.Context, company models.CompanyInfo) Result {
	return c.do(ctx, http.MethodPost, "/validate/company", company,
		"Company information validated", "Validation failed")
}

// GetOnboarding fetches an existing onboarding record.
func (c *Client) GetOnboarding(ctx context.Context, id string) Result {
	return c.do(ctx, http.MethodGet, "/onboarding/"+id, nil,
		"Onboarding data retrieved successfully", "Failed to retrieve onboarding data")
}

// UpdateOnboarding replaces an existing onboarding record.
func (c *Client) UpdateOnboarding(ctx context.Context, id string, payload models.OnboardingPayload) Result {
	return c.do(ctx, http.MethodPut, "/onboarding/"+id, payload,
		"Onboarding updated successfully", "Failed to update onboarding")
}

// TestConnection checks connectivity and authentication via GET /health.
func (c *Client) TestConnection(ctx context.Context) Result {
	return c.do(ctx, http.MethodGet, "/health", nil,
		"Connection successful", "Connection failed")
}

func (c *Client) do(ctx context.Context, method, path string, body any, okMsg, failMsg string) Result {
	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Result{Success: false, Error: err.Error(), Message: failMsg}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Result{Success: false, Error: err.Error(), Message: failMsg}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	slog.Debug("API request", "method", method, "url", url)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("No response from server", "method", method, "url", url, "error", err)
		return Result{Success: false, Error: err.Error(), Message: failMsg}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Success: false, Error: err.Error(), Message: failMsg}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logResponseClass(resp.StatusCode, data)
		return Result{
			Success: false,
			Error:   responseError(resp.StatusCode, data),
			Message: failMsg,
		}
	}

	slog.Debug("API response", "status", resp.StatusCode, "bytes", len(data))
	return Result{Success: true, Data: data, Message: okMsg}
}

// logResponseClass records the failure class. Diagnostics only: callers never
// branch on the status code.
func (c *Client) logResponseClass(status int, body []byte) {
	switch status {
	case http.StatusUnauthorized:
		slog.Error("Authentication failed - invalid API key", "status", status)
	case http.StatusForbidden:
		slog.Error("Access forbidden - insufficient permissions", "status", status)
	case http.StatusNotFound:
		slog.Error("Resource not found", "status", status)
	case http.StatusInternalServerError:
		slog.Error("Internal server error", "status", status)
	default:
		slog.Error("API request failed", "status", status, "body", string(body))
	}
}

func responseError(status int, body []byte) string {
	if len(body) > 0 {
		return string(body)
	}
	return fmt.Sprintf("HTTP %d", status)
}
