package tracker

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/readtrack/internal/adapter"
	"github.com/mmcdole/readtrack/internal/domain"
)

var _ domain.TrackerSource = (*Client)(nil)

// NewSource creates the tracker backend client from configuration
func NewSource(cfg *adapter.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	u, err := url.Parse(cfg.Server.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: scheme and host are required", cfg.Server.URL)
	}

	return NewClient(cfg.Server.URL, cfg.Server.Timeout, logger), nil
}
