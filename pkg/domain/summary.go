package domain

import (
	"strings"
	"time"
)

// Sentiment represents the overall tone of an article
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// DefaultCategory is used when the LLM does not provide a category
const DefaultCategory = "uncategorized"

// ParseSentiment maps a free-form label to a known sentiment, neutral for anything unknown
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// SummaryResult is the structured LLM summary of one article
type SummaryResult struct {
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"keyPoints"`
	Sentiment Sentiment `json:"sentiment"`
	Category  string    `json:"category"`
}

// Summary is a stored summary, one per article
type Summary struct {
	ID        int64
	ArticleID int64
	SummaryResult
	CreatedAt time.Time
	UpdatedAt time.Time
}
