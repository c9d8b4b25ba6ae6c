package importer

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrTimeout marks a fetch that exceeded the fixed deadline, so the
// handler can answer 504 instead of a generic upstream failure.
var ErrTimeout = errors.New("request timed out")

// UpstreamError is a non-2xx answer from the fetched site.
type UpstreamError struct {
	Code   int
	Status string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to fetch URL: %d %s", e.Code, e.Status)
}

// Fetcher retrieves a URL and reduces it to readable text. One attempt,
// fixed timeout, no retries.
type Fetcher struct {
	Client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: timeout}}
}

// ValidateURL accepts only absolute http/https URLs.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("invalid URL: missing host")
	}
	return u, nil
}

// FetchText downloads the URL and returns its extracted text.
func (f *Fetcher) FetchText(u *url.URL) (string, error) {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ChronomapBot/1.0)")

	resp, err := f.Client.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	// Bound the body read; extraction output is size-checked separately.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return ExtractTextFromHTML(string(body)), nil
}
