package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/readtrack/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "readtrack/1.0"

	itemsPath    = "/api/textual-items/"
	projectsPath = "/api/reading-projects/"
)

// Client implements domain.ItemRepository and domain.ProjectRepository
// for the reading-tracker REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new tracker API client. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured API base
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := RequestID(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("tracker request", "url", reqURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tracker request failed", "url", reqURL, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("tracker request error", "status", resp.StatusCode, "request_id", requestID, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}

// decode unmarshals a JSON body into dest
func (c *Client) decode(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return nil
}

// ListItems returns textual items, filtered to a project when scope is non-empty
func (c *Client) ListItems(ctx context.Context, scope string) ([]domain.TextualItem, error) {
	var query url.Values
	if scope != "" {
		query = url.Values{}
		query.Set("project", scope)
	}

	body, err := c.doRequest(ctx, itemsPath, query)
	if err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	if err := c.decode(body, &dtos); err != nil {
		return nil, err
	}

	return MapItems(dtos), nil
}

// ListProjects returns reading projects, filtered by reader name when non-empty
func (c *Client) ListProjects(ctx context.Context, reader string) ([]domain.ReadingProject, error) {
	var query url.Values
	if reader != "" {
		query = url.Values{}
		query.Set("reader", reader)
	}

	body, err := c.doRequest(ctx, projectsPath, query)
	if err != nil {
		return nil, err
	}

	var dtos []ProjectDTO
	if err := c.decode(body, &dtos); err != nil {
		return nil, err
	}

	return MapProjects(dtos), nil
}
