package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// VersionSource produces raw text containing a version announcement.
type VersionSource interface {
	RawVersion(ctx context.Context) (string, error)
}

// HTTPSource reads the nightly release page.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	userAgent  string
}

// SourceOption configures an HTTPSource.
type SourceOption func(*HTTPSource)

// WithSourceClient sets a custom HTTP client (useful for testing).
func WithSourceClient(c *http.Client) SourceOption {
	return func(s *HTTPSource) {
		s.httpClient = c
	}
}

// WithSourceUserAgent overrides the User-Agent header.
func WithSourceUserAgent(ua string) SourceOption {
	return func(s *HTTPSource) {
		s.userAgent = ua
	}
}

// NewHTTPSource creates a source for the release page at url.
func NewHTTPSource(url string, opts ...SourceOption) *HTTPSource {
	s := &HTTPSource{
		url:        url,
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the release page address.
func (s *HTTPSource) URL() string {
	return s.url
}

// RawVersion fetches the release page and returns its body.
func (s *HTTPSource) RawVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %w", ErrTransport, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %w", ErrTransport, s.url, err)
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		return "", fmt.Errorf("%w: %s returned status %d", ErrTransport, s.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: response body from %s is not valid UTF-8", ErrTransport, s.url)
	}
	return string(body), nil
}

// statusOK reports whether code is a 2xx status. Both the release page and
// the asset request use it.
func statusOK(code int) bool {
	return code >= 200 && code <= 299
}
