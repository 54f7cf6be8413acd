// Package api is the typed HTTP client for the backend collaborator. The
// endpoint is treated as a pure, stateless function of its query string:
// no retries, no state, any non-2xx comes back as a NetworkError for the
// cache entry.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/contract-explorer/internal/models"
	"github.com/example/contract-explorer/internal/query"
)

// NetworkError covers transport failures and non-2xx responses.
type NetworkError struct {
	Status  int // 0 for transport-level failures
	Code    string
	Message string
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network: %s", e.Message)
	}
	return fmt.Sprintf("backend %d: %s %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchPage requests one page of rows for req.
func (c *Client) FetchPage(ctx context.Context, req query.PageRequest) (*models.Page, error) {
	u := fmt.Sprintf("%s/api/entities/%s?%s", c.baseURL, req.Entity, req.Params().Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", reqID)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Message: err.Error()}
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		zap.String("entity", req.Entity.String()),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Best-effort parse of the error envelope.
		var apiErr models.APIError
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, &NetworkError{Status: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
	}

	var page models.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &NetworkError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return &page, nil
}
