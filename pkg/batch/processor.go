package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/mpdigest/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/feed_parser.go -pkg mocks -skip-ensure -fmt goimports . FeedParser

// task kinds recorded in the task log
const (
	KindBatch = "batch"
	KindFeed  = "feed"
)

var (
	// ErrNoURLs is returned for an empty url list
	ErrNoURLs = errors.New("urls must be a non-empty list")
	// ErrTooManyURLs is returned when the url list exceeds the configured maximum
	ErrTooManyURLs = errors.New("too many urls")
	// ErrNoFeedURL is returned when feed import is called without a feed url
	ErrNoFeedURL = errors.New("feed url is required")
	// ErrFeedUnavailable wraps feed fetch and parse failures
	ErrFeedUnavailable = errors.New("feed unavailable")
)

// Fetcher fetches and extracts article pages
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []domain.ExtractionResult
	IsArticleURL(link string) bool
}

// Summarizer produces a structured summary of an article
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (domain.SummaryResult, error)
}

// Store persists summarized articles and task logs
type Store interface {
	SaveArticle(ctx context.Context, account string, res domain.ExtractionResult, summary domain.SummaryResult) (int64, error)
	StartTask(ctx context.Context, kind string, total int) (int64, error)
	FinishTask(ctx context.Context, id int64, status domain.TaskStatus, success, failed int, message string) error
}

// FeedParser lists the items of an RSS/Atom feed
type FeedParser interface {
	Parse(ctx context.Context, feedURL string) (*domain.ParsedFeed, error)
}

// Config holds batch processor settings
type Config struct {
	MaxURLs        int           // maximum urls per batch
	DefaultAccount string        // account used when the request has none
	ArticleDelay   time.Duration // pause between summarized articles
}

// Processor runs the fetch, summarize and persist pipeline for a batch of article urls
type Processor struct {
	fetcher    Fetcher
	summarizer Summarizer
	store      Store
	feeds      FeedParser
	cfg        Config
}

// NewProcessor makes a batch processor. feeds can be nil if feed import is not used.
func NewProcessor(fetcher Fetcher, summarizer Summarizer, store Store, feeds FeedParser, cfg Config) *Processor {
	if cfg.MaxURLs <= 0 {
		cfg.MaxURLs = 20
	}
	if cfg.DefaultAccount == "" {
		cfg.DefaultAccount = "batch import"
	}
	return &Processor{fetcher: fetcher, summarizer: summarizer, store: store, feeds: feeds, cfg: cfg}
}

// Run processes the urls and returns a report with one entry per url, in input order.
// Only an empty or oversized url list is an error, per-url failures are reported as entries.
func (p *Processor) Run(ctx context.Context, urls []string, account string) (domain.BatchReport, error) {
	if len(urls) == 0 {
		return domain.BatchReport{}, ErrNoURLs
	}
	if len(urls) > p.cfg.MaxURLs {
		return domain.BatchReport{}, fmt.Errorf("%w: got %d, max %d", ErrTooManyURLs, len(urls), p.cfg.MaxURLs)
	}
	return p.run(ctx, KindBatch, urls, account), nil
}

// ImportFeed loads the feed, keeps item links that are article urls and runs them as a batch.
// Links beyond the configured maximum are dropped. The feed title is used as account if none is given.
func (p *Processor) ImportFeed(ctx context.Context, feedURL, account string) (domain.BatchReport, error) {
	if strings.TrimSpace(feedURL) == "" {
		return domain.BatchReport{}, ErrNoFeedURL
	}
	if p.feeds == nil {
		return domain.BatchReport{}, fmt.Errorf("%w: feed import is not configured", ErrFeedUnavailable)
	}

	feed, err := p.feeds.Parse(ctx, strings.TrimSpace(feedURL))
	if err != nil {
		return domain.BatchReport{}, fmt.Errorf("%w: %v", ErrFeedUnavailable, err) //nolint:errorlint // parser error is informational
	}

	var links []string
	for _, link := range feed.Links() {
		if p.fetcher.IsArticleURL(link) {
			links = append(links, link)
		}
	}
	if len(links) == 0 {
		return domain.BatchReport{}, fmt.Errorf("%w: no article links in feed %s", ErrNoURLs, feedURL)
	}
	if len(links) > p.cfg.MaxURLs {
		lgr.Printf("[INFO] feed %s has %d article links, importing first %d", feedURL, len(links), p.cfg.MaxURLs)
		links = links[:p.cfg.MaxURLs]
	}

	if strings.TrimSpace(account) == "" {
		account = strings.TrimSpace(feed.Title)
	}
	return p.run(ctx, KindFeed, links, account), nil
}

func (p *Processor) run(ctx context.Context, kind string, urls []string, account string) domain.BatchReport {
	account = strings.TrimSpace(account)
	if account == "" {
		account = p.cfg.DefaultAccount
	}

	started := time.Now()
	taskID, err := p.store.StartTask(ctx, kind, len(urls))
	if err != nil {
		lgr.Printf("[WARN] failed to record %s task start: %v", kind, err)
	}
	lgr.Printf("[INFO] %s task started, %d urls, account %q", kind, len(urls), account)

	report := domain.BatchReport{Results: make([]domain.BatchEntry, 0, len(urls))}
	results := p.fetcher.FetchAll(ctx, urls)

	processed := false // an article was summarized, the next one waits for the article delay
	for i, res := range results {
		if res.Failed() {
			report.AddFailure(res.SourceURL, res.Title, res.Error)
			continue
		}

		if processed && p.cfg.ArticleDelay > 0 {
			if err := sleepCtx(ctx, p.cfg.ArticleDelay); err != nil {
				p.failRemaining(&report, results[i:], err)
				break
			}
		}
		processed = true

		summary, err := p.summarizer.Summarize(ctx, res.Title, res.Content)
		if err != nil {
			lgr.Printf("[WARN] failed to summarize %s: %v", res.SourceURL, err)
			report.AddFailure(res.SourceURL, res.Title, fmt.Sprintf("summarize: %v", err))
			continue
		}

		if _, err := p.store.SaveArticle(ctx, account, res, summary); err != nil {
			lgr.Printf("[WARN] failed to save %s: %v", res.SourceURL, err)
			report.AddFailure(res.SourceURL, res.Title, fmt.Sprintf("save: %v", err))
			continue
		}
		report.AddSuccess(res.SourceURL, res.Title, summary)
		lgr.Printf("[DEBUG] summarized %s, %q", res.SourceURL, res.Title)
	}

	lgr.Printf("[INFO] %s task finished in %v, total %d, success %d, failed %d", kind,
		time.Since(started).Truncate(time.Millisecond), report.TotalProcessed, report.SuccessCount, report.FailCount)

	if taskID != 0 {
		status, msg := domain.TaskDone, ""
		if ctx.Err() != nil {
			status, msg = domain.TaskFailed, ctx.Err().Error()
		}
		// the request context may be gone already, the task log still has to be closed
		finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := p.store.FinishTask(finishCtx, taskID, status, report.SuccessCount, report.FailCount, msg); err != nil {
			lgr.Printf("[WARN] failed to record %s task finish: %v", kind, err)
		}
	}
	return report
}

// failRemaining reports the not yet processed results as failures, extraction failures keep their reason
func (p *Processor) failRemaining(report *domain.BatchReport, rest []domain.ExtractionResult, err error) {
	for _, res := range rest {
		reason := err.Error()
		if res.Failed() {
			reason = res.Error
		}
		report.AddFailure(res.SourceURL, res.Title, reason)
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
