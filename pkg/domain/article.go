package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested account or article is not stored
var ErrNotFound = errors.New("not found")

// UntitledTitle is used when no title selector matches a page
const UntitledTitle = "untitled"

// ExtractionResult is the outcome of fetching and extracting a single article page.
// Either Content is set or Error is, never both.
type ExtractionResult struct {
	SourceURL   string
	Title       string
	Author      string
	Content     string
	Markdown    string // rich rendition of the content container, optional
	PublishDate *time.Time
	Error       string
}

// Failed reports whether extraction failed
func (r ExtractionResult) Failed() bool {
	return r.Error != ""
}

// Account represents a public account articles are grouped under
type Account struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Article represents a stored article, unique by URL
type Article struct {
	ID          int64
	AccountID   int64
	URL         string
	Title       string
	Author      string
	Content     string
	Markdown    string
	PublishDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticleWithSummary is an article joined with its account name and summary
type ArticleWithSummary struct {
	Article
	AccountName string
	Summary     *Summary
}

// Pagination describes a page of a listing
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination calculates the number of pages for the given total
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
