package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// maxCatalogSize caps a downloaded catalog document.
const maxCatalogSize = 4 << 20

// fetchBackoff is the base delay between download attempts.
var fetchBackoff = time.Second

// Fetch downloads a catalog document and parses it. The format comes from the
// URL path extension, then the Content-Type, and defaults to YAML. Failed
// requests and non-200 answers are retried up to three times.
func Fetch(ctx context.Context, rawURL string) (*File, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	client := &http.Client{Timeout: time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * fetchBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
			continue
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize+1))
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if len(data) > maxCatalogSize {
			return nil, fmt.Errorf("catalog %s exceeds %d bytes", rawURL, maxCatalogSize)
		}

		f, err := Parse(data, remoteFormat(u, resp.Header.Get("Content-Type")))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", rawURL, err)
		}
		if f.Source == "" {
			f.Source = rawURL
		}
		return f, nil
	}
	return nil, fmt.Errorf("fetch catalog after 3 attempts: %w", lastErr)
}

func remoteFormat(u *url.URL, contentType string) Format {
	if f, err := FormatOf(path.Base(u.Path)); err == nil {
		return f
	}
	if strings.Contains(strings.ToLower(contentType), "toml") {
		return FormatTOML
	}
	return FormatYAML
}
