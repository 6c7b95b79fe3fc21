package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/mpdigest/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL is the database representation of an article
type articleSQL struct {
	ID          int64      `db:"id"`
	AccountID   int64      `db:"account_id"`
	URL         string     `db:"url"`
	Title       string     `db:"title"`
	Author      string     `db:"author"`
	Content     string     `db:"content"`
	Markdown    string     `db:"markdown"`
	PublishDate *time.Time `db:"publish_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// historyRowSQL is an article joined with its account and summary
type historyRowSQL struct {
	articleSQL
	AccountName      string    `db:"account_name"`
	SummaryID        int64     `db:"summary_id"`
	Summary          string    `db:"summary"`
	KeyPoints        string    `db:"key_points"`
	Sentiment        string    `db:"sentiment"`
	Category         string    `db:"category"`
	SummaryCreatedAt time.Time `db:"summary_created_at"`
	SummaryUpdatedAt time.Time `db:"summary_updated_at"`
}

// HistoryFilter selects a page of summarized articles
type HistoryFilter struct {
	Account string // account name, empty for all accounts
	Limit   int
	Offset  int
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// UpsertArticle inserts the article or overwrites the one with the same URL, sets article.ID
func (r *ArticleRepository) UpsertArticle(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (account_id, url, title, author, content, markdown, publish_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			account_id = excluded.account_id,
			title = excluded.title,
			author = excluded.author,
			content = excluded.content,
			markdown = excluded.markdown,
			publish_date = excluded.publish_date,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`
	err := withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &article.ID, query, article.AccountID, article.URL, article.Title,
			article.Author, article.Content, article.Markdown, article.PublishDate)
	})
	if err != nil {
		return fmt.Errorf("upsert article %s: %w", article.URL, err)
	}
	return nil
}

// GetArticleByURL retrieves an article by its source URL
func (r *ArticleRepository) GetArticleByURL(ctx context.Context, url string) (*domain.Article, error) {
	var a articleSQL
	if err := r.db.GetContext(ctx, &a, "SELECT * FROM articles WHERE url = ?", url); err != nil {
		return nil, fmt.Errorf("get article %s: %w", url, err)
	}
	return a.toDomain(), nil
}

// CountArticles returns the number of stored articles
func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// GetHistory returns summarized articles, most recently updated first, and the total number
// of rows matching the filter
func (r *ArticleRepository) GetHistory(ctx context.Context, filter HistoryFilter) ([]domain.ArticleWithSummary, int, error) {
	base := sq.Select().
		From("articles a").
		Join("accounts acc ON acc.id = a.account_id").
		Join("summaries s ON s.article_id = a.id")
	if filter.Account != "" {
		base = base.Where(sq.Eq{"acc.name": filter.Account})
	}

	countQuery, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build history count query: %w", err)
	}
	var total int
	if err = r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}
	if total == 0 {
		return []domain.ArticleWithSummary{}, 0, nil
	}

	q := base.Columns(
		"a.id", "a.account_id", "a.url", "a.title", "a.author", "a.content", "a.markdown",
		"a.publish_date", "a.created_at", "a.updated_at",
		"acc.name AS account_name",
		"s.id AS summary_id", "s.summary", "s.key_points", "s.sentiment", "s.category",
		"s.created_at AS summary_created_at", "s.updated_at AS summary_updated_at",
	).OrderBy("a.updated_at DESC", "a.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build history query: %w", err)
	}
	var rows []historyRowSQL
	if err = r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("get history: %w", err)
	}

	res := make([]domain.ArticleWithSummary, len(rows))
	for i, row := range rows {
		summary := summarySQL{
			ID:        row.SummaryID,
			ArticleID: row.ID,
			Summary:   row.Summary,
			KeyPoints: row.KeyPoints,
			Sentiment: row.Sentiment,
			Category:  row.Category,
			CreatedAt: row.SummaryCreatedAt,
			UpdatedAt: row.SummaryUpdatedAt,
		}
		res[i] = domain.ArticleWithSummary{
			Article:     *row.toDomain(),
			AccountName: row.AccountName,
			Summary:     summary.toDomain(),
		}
	}
	return res, total, nil
}

func (a *articleSQL) toDomain() *domain.Article {
	return &domain.Article{
		ID:          a.ID,
		AccountID:   a.AccountID,
		URL:         a.URL,
		Title:       a.Title,
		Author:      a.Author,
		Content:     a.Content,
		Markdown:    a.Markdown,
		PublishDate: a.PublishDate,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
