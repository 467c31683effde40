package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/llm-analytics-tui/internal/logger"
)

const (
	// maxErrorBody limits how many cells of a failed response are quoted in errors.
	maxErrorBody = 200
	// maxBodyBytes caps a response body.
	maxBodyBytes = 64 << 20
)

// ErrBodyTooLarge is returned when a response exceeds the body cap.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPSource fetches a gviz endpoint or a proxy returning {"data": ...}.
type HTTPSource struct {
	client  *http.Client
	url     string
	maxBody int64
}

// NewHTTPSource creates a source for rawURL. A nil client uses http.DefaultClient.
func NewHTTPSource(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, url: rawURL, maxBody: maxBodyBytes}
}

// Name returns the URL without its query string.
func (s *HTTPSource) Name() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return s.url
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

// Fetch performs one GET and returns the body of a 2xx response.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := ansi.Truncate(strings.TrimSpace(string(body)), maxErrorBody, "...")
		return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, snippet)
	}

	if int64(len(body)) > s.maxBody {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, s.maxBody)
	}

	return body, nil
}
