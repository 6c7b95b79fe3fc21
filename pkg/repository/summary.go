package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/mpdigest/pkg/domain"
)

// SummaryRepository handles summary-related database operations
type SummaryRepository struct {
	db *sqlx.DB
}

// summarySQL is the database representation of a summary
type summarySQL struct {
	ID        int64     `db:"id"`
	ArticleID int64     `db:"article_id"`
	Summary   string    `db:"summary"`
	KeyPoints string    `db:"key_points"`
	Sentiment string    `db:"sentiment"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// UpsertSummary inserts the article summary or overwrites the existing one, sets summary.ID
func (r *SummaryRepository) UpsertSummary(ctx context.Context, summary *domain.Summary) error {
	keyPoints, err := keyPointsSQL(summary.KeyPoints)
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}

	query := `
		INSERT INTO summaries (article_id, summary, key_points, sentiment, category)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(article_id) DO UPDATE SET
			summary = excluded.summary,
			key_points = excluded.key_points,
			sentiment = excluded.sentiment,
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`
	sentiment := domain.ParseSentiment(string(summary.Sentiment))
	err = withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &summary.ID, query, summary.ArticleID, summary.Summary, keyPoints,
			string(sentiment), summary.Category)
	})
	if err != nil {
		return fmt.Errorf("upsert summary for article %d: %w", summary.ArticleID, err)
	}
	return nil
}

// GetSummaryByArticle retrieves the summary of an article
func (r *SummaryRepository) GetSummaryByArticle(ctx context.Context, articleID int64) (*domain.Summary, error) {
	var s summarySQL
	if err := r.db.GetContext(ctx, &s, "SELECT * FROM summaries WHERE article_id = ?", articleID); err != nil {
		return nil, fmt.Errorf("get summary for article %d: %w", articleID, err)
	}
	return s.toDomain(), nil
}

func (s *summarySQL) toDomain() *domain.Summary {
	return &domain.Summary{
		ID:        s.ID,
		ArticleID: s.ArticleID,
		SummaryResult: domain.SummaryResult{
			Summary:   s.Summary,
			KeyPoints: parseKeyPoints(s.KeyPoints),
			Sentiment: domain.ParseSentiment(s.Sentiment),
			Category:  s.Category,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// keyPointsSQL serializes key points as a json array, nil becomes []
func keyPointsSQL(points []string) (string, error) {
	if points == nil {
		points = []string{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("marshal key points: %w", err)
	}
	return string(data), nil
}

// parseKeyPoints decodes a json array, broken values yield an empty list
func parseKeyPoints(s string) []string {
	var points []string
	if err := json.Unmarshal([]byte(s), &points); err != nil || points == nil {
		return []string{}
	}
	return points
}
