// Package source fetches raw dataset bodies over HTTP or from a local file.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/config"
)

// ErrNoSource is returned when no data source is configured.
var ErrNoSource = errors.New("no data source configured")

// Source fetches one complete response body.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// New builds the source for a configured kind and location.
func New(kind config.SourceKind, location string, timeout time.Duration) (Source, error) {
	switch kind {
	case config.SourceFile:
		return NewFileSource(location), nil
	case config.SourceURL, config.SourceSheet:
		return NewHTTPSource(location, &http.Client{Timeout: timeout}), nil
	case config.SourceNone:
		return nil, ErrNoSource
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

// FromConfig builds the source selected by cfg.
func FromConfig(cfg *config.Config) (Source, error) {
	kind, location := cfg.Source()
	return New(kind, location, cfg.FetchTimeout)
}
