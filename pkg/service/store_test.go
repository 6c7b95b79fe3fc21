package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/mpdigest/pkg/domain"
	"github.com/umputun/mpdigest/pkg/repository"
)

func setupStore(t *testing.T) (*Store, *repository.Repositories) {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return NewStore(repos), repos
}

func TestStore_SaveArticle(t *testing.T) {
	store, repos := setupStore(t)
	ctx := context.Background()

	published := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	res := domain.ExtractionResult{
		SourceURL:   "https://mp.weixin.qq.com/s/abc",
		Title:       "标题",
		Author:      "作者",
		Content:     "正文",
		Markdown:    "正文",
		PublishDate: &published,
	}
	summary := domain.SummaryResult{Summary: "摘要", KeyPoints: []string{"要点"}, Sentiment: domain.SentimentPositive, Category: "科技"}

	id, err := store.SaveArticle(ctx, "batch import", res, summary)
	require.NoError(t, err)
	assert.NotZero(t, id)

	// saving the same url again updates the stored article and summary
	res.Title = "新标题"
	summary.Summary = "新摘要"
	id2, err := store.SaveArticle(ctx, "other account", res, summary)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	article, err := repos.Article.GetArticleByURL(ctx, res.SourceURL)
	require.NoError(t, err)
	assert.Equal(t, "新标题", article.Title)
	assert.Equal(t, "作者", article.Author)

	acc, err := repos.Account.GetAccountByName(ctx, "other account")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, article.AccountID)

	stored, err := repos.Summary.GetSummaryByArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "新摘要", stored.Summary)

	count, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_GetArticle(t *testing.T) {
	store, repos := setupStore(t)
	ctx := context.Background()

	res := domain.ExtractionResult{SourceURL: "https://mp.weixin.qq.com/s/abc", Title: "标题", Content: "正文"}
	summary := domain.SummaryResult{Summary: "摘要", KeyPoints: []string{"要点"}, Sentiment: domain.SentimentNegative, Category: "财经"}
	id, err := store.SaveArticle(ctx, "汽车观察", res, summary)
	require.NoError(t, err)

	t.Run("with summary", func(t *testing.T) {
		article, err := store.GetArticle(ctx, res.SourceURL)
		require.NoError(t, err)
		assert.Equal(t, id, article.ID)
		assert.Equal(t, "标题", article.Title)
		assert.Equal(t, "汽车观察", article.AccountName)
		require.NotNil(t, article.Summary)
		assert.Equal(t, summary, article.Summary.SummaryResult)
	})

	t.Run("without summary", func(t *testing.T) {
		accID, err := repos.Account.UpsertAccount(ctx, "汽车观察")
		require.NoError(t, err)
		bare := &domain.Article{AccountID: accID, URL: "https://mp.weixin.qq.com/s/bare", Title: "bare"}
		require.NoError(t, repos.Article.UpsertArticle(ctx, bare))

		article, err := store.GetArticle(ctx, bare.URL)
		require.NoError(t, err)
		assert.Equal(t, "bare", article.Title)
		assert.Nil(t, article.Summary)
	})

	t.Run("unknown url", func(t *testing.T) {
		_, err := store.GetArticle(ctx, "https://mp.weixin.qq.com/s/missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_Accounts(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha"} {
		_, err := store.SaveArticle(ctx, name, domain.ExtractionResult{SourceURL: "https://mp.weixin.qq.com/s/" + name},
			domain.SummaryResult{Sentiment: domain.SentimentNeutral})
		require.NoError(t, err)
	}

	accounts, err := store.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alpha", accounts[0].Name)
	assert.Equal(t, "zeta", accounts[1].Name)

	acc, err := store.GetAccount(ctx, "zeta")
	require.NoError(t, err)
	assert.Equal(t, accounts[1].ID, acc.ID)

	_, err = store.GetAccount(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveArticle_EmptyAccount(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.SaveArticle(context.Background(), "", domain.ExtractionResult{SourceURL: "https://mp.weixin.qq.com/s/x"}, domain.SummaryResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save account")
}

func TestStore_GetHistory(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for i := range 25 {
		account := "a"
		if i >= 20 {
			account = "b"
		}
		res := domain.ExtractionResult{SourceURL: fmt.Sprintf("https://mp.weixin.qq.com/s/%d", i), Title: fmt.Sprintf("t%d", i), Content: "c"}
		_, err := store.SaveArticle(ctx, account, res, domain.SummaryResult{Summary: "s", Sentiment: domain.SentimentNeutral, Category: "c"})
		require.NoError(t, err)
	}

	rows, pg, err := store.GetHistory(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 10, Total: 25, Pages: 3}, pg)

	rows, pg, err = store.GetHistory(ctx, "", 3, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Equal(t, 3, pg.Page)

	rows, pg, err = store.GetHistory(ctx, "b", 1, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 10, Total: 5, Pages: 1}, pg)

	// page and limit are clamped to at least 1
	rows, pg, err = store.GetHistory(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 1, Total: 25, Pages: 25}, pg)
}

func TestStore_Tasks(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	id, err := store.StartTask(ctx, "batch", 2)
	require.NoError(t, err)
	require.NoError(t, store.FinishTask(ctx, id, domain.TaskDone, 1, 1, ""))

	tasks, err := store.RecentTasks(ctx, 5)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskDone, tasks[0].Status)
	assert.Equal(t, 1, tasks[0].Success)
}
