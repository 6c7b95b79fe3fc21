package content

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/mpdigest/pkg/domain"
)

// ErrNotArticleLink is the failure reason for urls rejected without fetching
const ErrNotArticleLink = "not a valid article link"

// PageFetcher fetches and extracts a single article page
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) domain.ExtractionResult
}

// BatchConfig holds batch fetcher settings
type BatchConfig struct {
	Host        string        // expected article host, e.g. mp.weixin.qq.com
	PathPrefix  string        // expected article path prefix, e.g. /s
	WindowSize  int           // concurrent fetches per window
	WindowDelay time.Duration // pause between windows
}

// BatchFetcher validates article links and fetches them in small concurrent windows
type BatchFetcher struct {
	fetcher PageFetcher
	cfg     BatchConfig
}

// NewBatchFetcher makes a batch fetcher, window size defaults to 2
func NewBatchFetcher(fetcher PageFetcher, cfg BatchConfig) *BatchFetcher {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 2
	}
	if cfg.Host == "" {
		cfg.Host = "mp.weixin.qq.com"
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/s"
	}
	return &BatchFetcher{fetcher: fetcher, cfg: cfg}
}

// IsArticleURL checks that the link is an absolute url on the article host with the article path prefix
func (b *BatchFetcher) IsArticleURL(link string) bool {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !strings.EqualFold(u.Hostname(), b.cfg.Host) {
		return false
	}
	return strings.HasPrefix(u.Path, b.cfg.PathPrefix)
}

// FetchAll fetches every valid link and returns one result per input url, in input order.
// Invalid links fail without a fetch. If ctx is canceled, links not yet fetched fail with the ctx error.
func (b *BatchFetcher) FetchAll(ctx context.Context, urls []string) []domain.ExtractionResult {
	results := make([]domain.ExtractionResult, len(urls))

	// indexes of valid links, in input order
	valid := make([]int, 0, len(urls))
	for i, u := range urls {
		if !b.IsArticleURL(u) {
			results[i] = domain.ExtractionResult{SourceURL: u, Error: ErrNotArticleLink}
			continue
		}
		valid = append(valid, i)
	}

	for start := 0; start < len(valid); start += b.cfg.WindowSize {
		window := valid[start:min(start+b.cfg.WindowSize, len(valid))]

		if start > 0 && b.cfg.WindowDelay > 0 {
			if err := sleepCtx(ctx, b.cfg.WindowDelay); err != nil {
				b.failRemaining(results, urls, valid[start:], err)
				return results
			}
		}
		if err := ctx.Err(); err != nil {
			b.failRemaining(results, urls, valid[start:], err)
			return results
		}

		// sibling fetches are independent, fetch never returns an error so the group never cancels
		var g errgroup.Group
		for _, idx := range window {
			g.Go(func() error {
				results[idx] = b.fetcher.Fetch(ctx, strings.TrimSpace(urls[idx]))
				results[idx].SourceURL = urls[idx]
				return nil
			})
		}
		_ = g.Wait()
		lgr.Printf("[DEBUG] fetched window %d-%d of %d article links", start+1, start+len(window), len(valid))
	}
	return results
}

func (b *BatchFetcher) failRemaining(results []domain.ExtractionResult, urls []string, idxs []int, err error) {
	lgr.Printf("[WARN] batch fetch interrupted, %d links not fetched: %v", len(idxs), err)
	for _, idx := range idxs {
		results[idx] = domain.ExtractionResult{SourceURL: urls[idx], Error: err.Error()}
	}
}

// sleepCtx pauses for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
