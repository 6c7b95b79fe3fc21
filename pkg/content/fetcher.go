package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html/charset"

	"github.com/umputun/mpdigest/pkg/domain"
)

// HTTPFetcher downloads article pages and runs them through the PageExtractor
type HTTPFetcher struct {
	client    *http.Client
	extractor *PageExtractor
	userAgent string
	maxBody   int64
}

// FetcherConfig holds page fetcher settings
type FetcherConfig struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

// NewHTTPFetcher creates a page fetcher, timeout defaults to 20s
func NewHTTPFetcher(extractor *PageExtractor, cfg FetcherConfig) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = 10 << 20
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		extractor: extractor,
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodySize,
	}
}

// Fetch retrieves the page and extracts the article. Network and parse errors are returned
// as a failed ExtractionResult, never as an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) domain.ExtractionResult {
	body, err := f.fetch(ctx, pageURL)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch %s: %v", pageURL, err)
		return domain.ExtractionResult{SourceURL: pageURL, Error: err.Error()}
	}
	defer body.Close()

	res := f.extractor.Extract(body.reader, pageURL)
	if res.Failed() {
		lgr.Printf("[WARN] failed to extract %s: %s", pageURL, res.Error)
		return res
	}
	lgr.Printf("[DEBUG] extracted %q from %s, %d chars", res.Title, pageURL, len([]rune(res.Content)))
	return res
}

// pageBody is a size-limited, charset-decoded response body
type pageBody struct {
	reader io.Reader
	closer io.Closer
}

func (b *pageBody) Close() error { return b.closer.Close() }

func (f *HTTPFetcher) fetch(ctx context.Context, pageURL string) (*pageBody, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", pageURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, pageURL)
	}

	limited := io.LimitReader(resp.Body, f.maxBody)
	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("decode charset for %s: %w", pageURL, err)
	}
	return &pageBody{reader: decoded, closer: resp.Body}, nil
}
