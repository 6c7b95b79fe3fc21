package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/umputun/mpdigest/pkg/domain"
	"github.com/umputun/mpdigest/pkg/repository"
)

// Store provides unified access to repositories for the batch processor and the web server
type Store struct {
	accountRepo *repository.AccountRepository
	articleRepo *repository.ArticleRepository
	summaryRepo *repository.SummaryRepository
	taskLogRepo *repository.TaskLogRepository
}

// NewStore creates a new store on top of the repositories
func NewStore(repos *repository.Repositories) *Store {
	return &Store{
		accountRepo: repos.Account,
		articleRepo: repos.Article,
		summaryRepo: repos.Summary,
		taskLogRepo: repos.TaskLog,
	}
}

// SaveArticle upserts the account, the article and its summary, returns the article id.
// The three upserts are independent, a failure in the middle leaves earlier writes in place.
func (s *Store) SaveArticle(ctx context.Context, account string, res domain.ExtractionResult, summary domain.SummaryResult) (int64, error) {
	accountID, err := s.accountRepo.UpsertAccount(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("save account: %w", err)
	}

	article := &domain.Article{
		AccountID:   accountID,
		URL:         res.SourceURL,
		Title:       res.Title,
		Author:      res.Author,
		Content:     res.Content,
		Markdown:    res.Markdown,
		PublishDate: res.PublishDate,
	}
	if err := s.articleRepo.UpsertArticle(ctx, article); err != nil {
		return 0, fmt.Errorf("save article: %w", err)
	}

	if err := s.summaryRepo.UpsertSummary(ctx, &domain.Summary{ArticleID: article.ID, SummaryResult: summary}); err != nil {
		return article.ID, fmt.Errorf("save summary: %w", err)
	}
	return article.ID, nil
}

// GetHistory returns a page of summarized articles, page is 1-based
func (s *Store) GetHistory(ctx context.Context, account string, page, limit int) ([]domain.ArticleWithSummary, domain.Pagination, error) {
	page, limit = max(page, 1), max(limit, 1)
	rows, total, err := s.articleRepo.GetHistory(ctx, repository.HistoryFilter{
		Account: account,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	})
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("get history: %w", err)
	}
	return rows, domain.NewPagination(page, limit, total), nil
}

// GetArticle returns a stored article with its account name and summary.
// Unknown urls give domain.ErrNotFound, an article without a summary has a nil Summary.
func (s *Store) GetArticle(ctx context.Context, url string) (*domain.ArticleWithSummary, error) {
	article, err := s.articleRepo.GetArticleByURL(ctx, url)
	if err != nil {
		return nil, notFound(err)
	}

	acc, err := s.accountRepo.GetAccountByID(ctx, article.AccountID)
	if err != nil {
		return nil, fmt.Errorf("get article account: %w", err)
	}
	res := &domain.ArticleWithSummary{Article: *article, AccountName: acc.Name}

	summary, err := s.summaryRepo.GetSummaryByArticle(ctx, article.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("get article summary: %w", err)
	default:
		res.Summary = summary
	}
	return res, nil
}

// Account methods

// ListAccounts returns all known accounts ordered by name
func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// GetAccount returns the account with the given name, domain.ErrNotFound if there is none
func (s *Store) GetAccount(ctx context.Context, name string) (*domain.Account, error) {
	acc, err := s.accountRepo.GetAccountByName(ctx, name)
	if err != nil {
		return nil, notFound(err)
	}
	return acc, nil
}

// Task log methods

// StartTask records a running batch task
func (s *Store) StartTask(ctx context.Context, kind string, total int) (int64, error) {
	return s.taskLogRepo.StartTask(ctx, kind, total)
}

// FinishTask records the outcome of a batch task
func (s *Store) FinishTask(ctx context.Context, id int64, status domain.TaskStatus, success, failed int, message string) error {
	return s.taskLogRepo.FinishTask(ctx, id, status, success, failed, message)
}

// RecentTasks returns the latest batch tasks
func (s *Store) RecentTasks(ctx context.Context, limit int) ([]domain.TaskLog, error) {
	return s.taskLogRepo.RecentTasks(ctx, limit)
}

// Stats returns the number of stored articles
func (s *Store) Stats(ctx context.Context) (articles int, err error) {
	return s.articleRepo.CountArticles(ctx)
}

// notFound turns a missing row error into domain.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}
