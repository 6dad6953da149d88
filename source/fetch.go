package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"golf-atlas/utils"
)

// maxBodyBytes caps how much of a CSV response is read.
const maxBodyBytes = 32 << 20

// CacheBustParam is the query parameter the cache-busting token travels in.
const CacheBustParam = "_cb"

// Fetcher retrieves raw CSV text from a URL or a local file.
type Fetcher struct {
	client *http.Client
	logger *utils.Logger
}

// NewFetcher creates a Fetcher whose HTTP requests time out after timeout.
func NewFetcher(timeout time.Duration, logger *utils.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// IsLocal reports whether src names a file rather than an HTTP resource.
func IsLocal(src string) bool {
	return strings.HasPrefix(src, "file://") || !strings.Contains(src, "://")
}

// LocalPath strips the file:// scheme from a local source.
func LocalPath(src string) string {
	return strings.TrimPrefix(src, "file://")
}

// Fetch returns the document at src. HTTP responses are never served from a
// cache, and a non-empty cacheBust token is added to the request URL. There
// is no retry: any failure is returned as-is.
func (f *Fetcher) Fetch(ctx context.Context, src, cacheBust string) ([]byte, error) {
	if IsLocal(src) {
		body, err := os.ReadFile(LocalPath(src))
		if err != nil {
			return nil, fmt.Errorf("read local csv: %w", err)
		}
		f.logger.Debug("[source] Read %s from %s", humanize.Bytes(uint64(len(body))), src)
		return body, nil
	}

	target, err := withCacheBust(src, cacheBust)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("could not fetch CSV (%d)", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read csv body: %w", err)
	}

	f.logger.Info("[source] Fetched %s in %v", humanize.Bytes(uint64(len(body))), time.Since(start).Round(time.Millisecond))
	return body, nil
}

func withCacheBust(src, token string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse source url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
	if token == "" {
		return src, nil
	}
	q := u.Query()
	q.Set(CacheBustParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
