package content

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/mpdigest/pkg/domain"
)

// ErrContentTooShort is the failure reason for pages without usable content
const ErrContentTooShort = "content extraction failed or too short"

// selector chains, tried in order, first non-empty match wins
var (
	titleSelectors   = []string{"#activity-name", ".rich_media_title", "h1.title", "h1", "title"}
	authorSelectors  = []string{"#js_name", ".rich_media_meta_nickname", "#js_author_name", ".account_nickname_inner", ".author"}
	dateSelectors    = []string{"#publish_time", ".publish_time", "#post-date", ".rich_media_meta_text"}
	contentSelectors = []string{"#js_content", ".rich_media_content", "article", ".article-content", "main"}
)

const (
	// elements dropped from the content container before reading its text
	noiseSelector = "script, style, noscript, iframe, .qr_code_pc, .reward_area, .rich_media_tool, mpvoice, mpprofile"
	// paragraph-like children joined into the article text
	paragraphSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote"
	// shorter paragraphs are decoration (captions, separators, emoji lines)
	minParagraphLength = 10
)

// ExtractorConfig holds page extractor settings
type ExtractorConfig struct {
	MaxContentLength    int
	MinContentLength    int
	ReadabilityFallback bool
}

// PageExtractor turns a fetched article page into an ExtractionResult
type PageExtractor struct {
	maxLen    int
	minLen    int
	fallback  bool
	converter *md.Converter
	now       func() time.Time
}

// NewPageExtractor makes an extractor, zero lengths fall back to 15000 max and 50 min characters
func NewPageExtractor(cfg ExtractorConfig) *PageExtractor {
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = 15000
	}
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = 50
	}
	return &PageExtractor{
		maxLen:    cfg.MaxContentLength,
		minLen:    cfg.MinContentLength,
		fallback:  cfg.ReadabilityFallback,
		converter: md.NewConverter("", true, nil),
		now:       time.Now,
	}
}

// Extract parses the html document and extracts title, author, publish date and content.
// It never returns an error, failures are reported in ExtractionResult.Error.
func (e *PageExtractor) Extract(r io.Reader, sourceURL string) domain.ExtractionResult {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return domain.ExtractionResult{SourceURL: sourceURL, Error: fmt.Sprintf("parse document: %v", err)}
	}
	return e.ExtractDocument(doc, sourceURL)
}

// ExtractDocument extracts article fields from an already parsed document
func (e *PageExtractor) ExtractDocument(doc *goquery.Document, sourceURL string) domain.ExtractionResult {
	res := domain.ExtractionResult{
		SourceURL: sourceURL,
		Title:     firstText(doc.Selection, titleSelectors),
		Author:    firstText(doc.Selection, authorSelectors),
	}
	if res.Title == "" {
		res.Title = domain.UntitledTitle
	}

	if dateText := firstText(doc.Selection, dateSelectors); dateText != "" {
		if t, ok := ParseDate(dateText, e.now()); ok {
			res.PublishDate = &t
		}
	}

	text, markdown, found := e.contentText(doc)
	if !found && e.fallback {
		text = e.readabilityText(doc, sourceURL)
	}

	text = Clean(text, e.maxLen)
	if utf8.RuneCountInString(text) < e.minLen {
		res.Error = ErrContentTooShort
		return res
	}
	res.Content = text
	res.Markdown = truncateRunes(strings.TrimSpace(markdown), e.maxLen)
	return res
}

// contentText finds the first content container with text, drops noise elements and joins
// its paragraphs. found is false if none of the content selectors matched.
func (e *PageExtractor) contentText(doc *goquery.Document) (text, markdown string, found bool) {
	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		container.Find(noiseSelector).Remove()
		if strings.TrimSpace(container.Text()) == "" {
			continue
		}

		var paragraphs []string
		container.Find(paragraphSelector).Each(func(_ int, s *goquery.Selection) {
			// only the outermost paragraph-like elements are collected, their text includes nested ones
			if s.ParentsUntilSelection(container).Filter(paragraphSelector).Length() > 0 {
				return
			}
			p := strings.TrimSpace(s.Text())
			if utf8.RuneCountInString(p) > minParagraphLength {
				paragraphs = append(paragraphs, p)
			}
		})

		text = strings.Join(paragraphs, "\n\n")
		if len(paragraphs) == 0 {
			text = container.Text()
		}
		return text, e.converter.Convert(container), true
	}
	return "", "", false
}

// readabilityText runs generic article extraction over the whole document
func (e *PageExtractor) readabilityText(doc *goquery.Document, sourceURL string) string {
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
	}
	if u, err := url.Parse(sourceURL); err == nil {
		opts.OriginalURL = u
	}
	result, err := trafilatura.Extract(strings.NewReader(html), opts)
	if err != nil || result == nil {
		lgr.Printf("[DEBUG] readability fallback failed for %s: %v", sourceURL, err)
		return ""
	}
	return result.ContentText
}

// firstText returns the first non-empty text matched by the selectors, in order, with whitespace collapsed
func firstText(root *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		var text string
		root.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = strings.Join(strings.Fields(s.Text()), " ")
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}
