// Package webpage fetches arbitrary web pages and boils them down to plain text
// usable as LLM context.
package webpage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mkromann/ugc-builder/internal/errors"
)

var (
	ErrInvalidURL = errors.NewSentinel("invalid URL")
	ErrFetch      = errors.NewSentinel("could not fetch page")
)

// userAgent identifies our scraper to the sites it fetches.
const userAgent = "UGC-Builder-Bot/1.0"

// maxBodyBytes caps how much of a response we are willing to read. Pages larger than
// this get truncated by the extractor anyway.
const maxBodyBytes = 5 << 20

type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger.With("source", "Fetcher"),
	}
}

// ValidateURL rejects anything that is not an absolute http or https URL. It runs
// before any network call is made.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrap(ErrInvalidURL, "parse URL", slog.String("url", rawURL))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.Wrap(ErrInvalidURL, "unsupported scheme", slog.String("scheme", parsed.Scheme))
	}
	if parsed.Host == "" {
		return errors.Wrap(ErrInvalidURL, "missing host", slog.String("url", rawURL))
	}
	return nil
}

// Fetch downloads the page at rawURL. Any network failure or non-2xx status is
// classified as ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Wrap(ErrFetch, "create request", slog.String("url", rawURL))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrFetch, "request page", slog.String("url", rawURL))
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.logger.LogAttrs(ctx, slog.LevelError, "close response body", errors.SlogError(closeErr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.Wrap(ErrFetch, "unexpected status",
			slog.String("url", rawURL), slog.Int("status", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", errors.Wrap(ErrFetch, "read response body", slog.String("url", rawURL))
	}
	return string(body), nil
}
