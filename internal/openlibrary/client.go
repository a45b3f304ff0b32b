package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/readtrack/internal/domain"
)

const (
	DefaultBaseURL = "https://openlibrary.org"
	searchPath     = "/search.json"
	defaultTimeout = 15 * time.Second
	userAgent      = "readtrack/1.0"

	// Lists in the detail pane are trimmed to this many entries
	maxListEntries = 5
)

// searchResponse is the subset of /search.json we read
type searchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []doc `json:"docs"`
}

type doc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
	Subject          []string `json:"subject"`
	EditionCount     int      `json:"edition_count"`
}

// Client implements domain.MetadataRepository against the OpenLibrary search API
type Client struct {
	rest   *resty.Client
	logger *slog.Logger
}

// NewClient creates an OpenLibrary client. An empty baseURL uses the public API.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetLogger(restyLogger{logger})

	return &Client{rest: rest, logger: logger}
}

// LookupMetadata searches by ISBN or title and returns the best match
func (c *Client) LookupMetadata(ctx context.Context, title, isbn string) (*domain.BookMetadata, error) {
	query := domain.MetadataQuery(title, isbn)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	c.logger.Debug("openlibrary request", "query", query)

	// Query params are form-encoded, so spaces go out as '+'
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get(searchPath)
	if err != nil {
		c.logger.Warn("openlibrary request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrServerOffline, err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("openlibrary request error", "status", resp.StatusCode())
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode())
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	if result.NumFound == 0 || len(result.Docs) == 0 {
		return nil, domain.ErrNoMetadata
	}

	return mapDoc(query, result.NumFound, result.Docs[0]), nil
}

func mapDoc(query string, numFound int, d doc) *domain.BookMetadata {
	return &domain.BookMetadata{
		Query:            query,
		Title:            d.Title,
		Authors:          d.AuthorName,
		FirstPublishYear: d.FirstPublishYear,
		Publishers:       head(d.Publisher, maxListEntries),
		Subjects:         head(d.Subject, maxListEntries),
		EditionCount:     d.EditionCount,
		NumFound:         numFound,
	}
}

func head(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// restyLogger routes resty's own warnings into the structured log; the TUI
// owns stderr
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
