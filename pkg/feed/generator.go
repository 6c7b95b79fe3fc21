package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/mpdigest/pkg/domain"
)

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Atom    string      `xml:"xmlns:atom,attr"`
	Channel *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	AtomLink      *AtomLink  `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Items         []*RSSItem `xml:"item"`
}

// AtomLink is the self link of the channel
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem is a summarized article in the digest
type RSSItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        GUID     `xml:"guid"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
}

// GUID is an item guid, article urls are permalinks
type GUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// Generator creates RSS digests of summarized articles
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new digest generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// GenerateRSS creates an RSS 2.0 digest from stored articles. Articles without a summary are skipped,
// account narrows the channel title and self link.
func (g *Generator) GenerateRSS(articles []domain.ArticleWithSummary, account string) (string, error) {
	title, selfLink := "mpdigest - all accounts", g.baseURL+"/rss"
	if account != "" {
		title, selfLink = "mpdigest - "+account, g.baseURL+"/rss/"+account
	}

	items := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		if a.Summary == nil {
			continue
		}
		items = append(items, g.convertToRSSItem(a))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "LLM summaries of WeChat public account articles",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem renders the summary, key points and sentiment into the item description
func (g *Generator) convertToRSSItem(a domain.ArticleWithSummary) *RSSItem {
	s := a.Summary.SummaryResult

	var desc strings.Builder
	desc.WriteString(s.Summary)
	if len(s.KeyPoints) > 0 {
		desc.WriteString("\n")
		for _, p := range s.KeyPoints {
			desc.WriteString("\n- " + p)
		}
	}
	fmt.Fprintf(&desc, "\n\nSentiment: %s", s.Sentiment)

	published := a.CreatedAt
	if a.PublishDate != nil {
		published = *a.PublishDate
	}

	author := a.Author
	if author == "" {
		author = a.AccountName
	}

	var categories []string
	if s.Category != "" {
		categories = []string{s.Category}
	}

	return &RSSItem{
		Title:       a.Title,
		Link:        a.URL,
		GUID:        GUID{Value: a.URL, IsPermaLink: true},
		Description: desc.String(),
		Author:      author,
		PubDate:     published.Format(time.RFC1123Z),
		Categories:  categories,
	}
}
