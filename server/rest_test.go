package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/mpdigest/pkg/batch"
	"github.com/umputun/mpdigest/pkg/domain"
	"github.com/umputun/mpdigest/server/mocks"
)

func TestServer_statusHandler(t *testing.T) {
	t.Run("with stats", func(t *testing.T) {
		database := &mocks.DatabaseMock{
			StatsFunc: func(ctx context.Context) (int, error) {
				return 42, nil
			},
		}
		srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "1.2.3", false)

		req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
		w := httptest.NewRecorder()
		srv.statusHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var status map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "ok", status["status"])
		assert.Equal(t, "1.2.3", status["version"])
		assert.NotEmpty(t, status["time"])
		assert.InDelta(t, 42, status["articles"], 0.001)
	})

	t.Run("stats error", func(t *testing.T) {
		database := &mocks.DatabaseMock{
			StatsFunc: func(ctx context.Context) (int, error) {
				return 0, errors.New("db is gone")
			},
		}
		srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "1.2.3", false)

		w := httptest.NewRecorder()
		srv.statusHandler(w, httptest.NewRequest("GET", "/api/v1/status", http.NoBody))

		assert.Equal(t, http.StatusOK, w.Code)
		var status map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "ok", status["status"])
		assert.NotContains(t, status, "articles")
	})
}

func TestServer_batchSummarizeHandler(t *testing.T) {
	summary := domain.SummaryResult{Summary: "short", KeyPoints: []string{"one"}, Sentiment: domain.SentimentPositive, Category: "tech"}

	tests := []struct {
		name        string
		body        string
		runErr      error
		wantCode    int
		wantError   string
		wantRun     bool
		wantAccount string
	}{
		{name: "invalid json", body: `{"urls":`, wantCode: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "missing urls", body: `{"accountName":"acc"}`, wantCode: http.StatusBadRequest, wantError: "urls must be a non-empty list"},
		{name: "urls not a list", body: `{"urls":"https://example.com"}`, wantCode: http.StatusBadRequest,
			wantError: "urls must be a non-empty list"},
		{name: "urls null", body: `{"urls":null}`, wantCode: http.StatusBadRequest, wantError: "urls must be a non-empty list"},
		{name: "empty urls", body: `{"urls":[]}`, wantCode: http.StatusBadRequest, wantError: "urls must be a non-empty list"},
		{name: "too many urls", body: `{"urls":["a","b"]}`, runErr: fmt.Errorf("%w: got 2, max 1", batch.ErrTooManyURLs),
			wantCode: http.StatusBadRequest, wantError: "too many urls: got 2, max 1", wantRun: true},
		{name: "internal error", body: `{"urls":["a"]}`, runErr: errors.New("boom"),
			wantCode: http.StatusInternalServerError, wantError: "internal server error", wantRun: true},
		{name: "success", body: `{"urls":["https://mp.weixin.qq.com/s/a","bad"],"accountName":" my account "}`,
			wantCode: http.StatusOK, wantRun: true, wantAccount: "my account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := &mocks.ProcessorMock{
				RunFunc: func(ctx context.Context, urls []string, account string) (domain.BatchReport, error) {
					if tt.runErr != nil {
						return domain.BatchReport{}, tt.runErr
					}
					report := domain.BatchReport{}
					report.AddSuccess(urls[0], "Title A", summary)
					report.AddFailure(urls[1], "", "not a valid article link")
					return report, nil
				},
			}
			srv := New(testConfig(":8080"), &mocks.DatabaseMock{}, processor, "test", false)

			req := httptest.NewRequest("POST", "/api/batch-summarize", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.batchSummarizeHandler(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if !tt.wantRun {
				assert.Empty(t, processor.RunCalls())
			} else {
				require.Len(t, processor.RunCalls(), 1)
			}

			if tt.wantError != "" {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, false, resp["success"])
				assert.Equal(t, tt.wantError, resp["error"])
				return
			}

			assert.Equal(t, tt.wantAccount, processor.RunCalls()[0].Account)
			assert.Equal(t, []string{"https://mp.weixin.qq.com/s/a", "bad"}, processor.RunCalls()[0].Urls)

			var resp struct {
				Success        bool                `json:"success"`
				Results        []domain.BatchEntry `json:"results"`
				TotalProcessed int                 `json:"totalProcessed"`
				SuccessCount   int                 `json:"successCount"`
				FailCount      int                 `json:"failCount"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, 2, resp.TotalProcessed)
			assert.Equal(t, 1, resp.SuccessCount)
			assert.Equal(t, 1, resp.FailCount)
			require.Len(t, resp.Results, 2)
			assert.Equal(t, "https://mp.weixin.qq.com/s/a", resp.Results[0].URL)
			assert.Equal(t, "Title A", resp.Results[0].Title)
			require.NotNil(t, resp.Results[0].Summary)
			assert.Equal(t, summary, *resp.Results[0].Summary)
			assert.Empty(t, resp.Results[0].Error)
			assert.Equal(t, "bad", resp.Results[1].URL)
			assert.Nil(t, resp.Results[1].Summary)
			assert.Equal(t, "not a valid article link", resp.Results[1].Error)
		})
	}
}

func TestServer_batchSummarizeHandlerResponseKeys(t *testing.T) {
	processor := &mocks.ProcessorMock{
		RunFunc: func(ctx context.Context, urls []string, account string) (domain.BatchReport, error) {
			report := domain.BatchReport{}
			report.AddFailure(urls[0], "", "not a valid article link")
			return report, nil
		},
	}
	srv := New(testConfig(":8080"), &mocks.DatabaseMock{}, processor, "test", false)

	w := httptest.NewRecorder()
	srv.batchSummarizeHandler(w, httptest.NewRequest("POST", "/api/batch-summarize", strings.NewReader(`{"urls":["x"]}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, key := range []string{"success", "results", "totalProcessed", "successCount", "failCount"} {
		assert.Contains(t, resp, key)
	}
	entry := resp["results"].([]any)[0].(map[string]any)
	assert.NotContains(t, entry, "summary")
}

func TestServer_feedImportHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		importErr error
		wantCode  int
		wantError string
	}{
		{name: "invalid json", body: `not json`, wantCode: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "no feed url", body: `{}`, importErr: batch.ErrNoFeedURL, wantCode: http.StatusBadRequest,
			wantError: "feed url is required"},
		{name: "no links", body: `{"feedUrl":"https://example.com/rss"}`,
			importErr: fmt.Errorf("%w: no article links in feed https://example.com/rss", batch.ErrNoURLs),
			wantCode:  http.StatusBadRequest, wantError: "urls must be a non-empty list: no article links in feed https://example.com/rss"},
		{name: "feed unavailable", body: `{"feedUrl":"https://example.com/rss"}`,
			importErr: fmt.Errorf("%w: unexpected status code: 404", batch.ErrFeedUnavailable),
			wantCode:  http.StatusBadGateway, wantError: "feed unavailable: unexpected status code: 404"},
		{name: "success", body: `{"feedUrl":" https://example.com/rss ","accountName":"acc"}`, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := &mocks.ProcessorMock{
				ImportFeedFunc: func(ctx context.Context, feedURL, account string) (domain.BatchReport, error) {
					if tt.importErr != nil {
						return domain.BatchReport{}, tt.importErr
					}
					report := domain.BatchReport{}
					report.AddSuccess("https://mp.weixin.qq.com/s/a", "A", domain.SummaryResult{Summary: "s"})
					return report, nil
				},
			}
			srv := New(testConfig(":8080"), &mocks.DatabaseMock{}, processor, "test", false)

			w := httptest.NewRecorder()
			srv.feedImportHandler(w, httptest.NewRequest("POST", "/api/batch-summarize/feed", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Equal(t, false, resp["success"])
				assert.Equal(t, tt.wantError, resp["error"])
				return
			}
			assert.Equal(t, true, resp["success"])
			assert.InDelta(t, 1, resp["successCount"], 0.001)
			require.Len(t, processor.ImportFeedCalls(), 1)
			assert.Equal(t, "https://example.com/rss", processor.ImportFeedCalls()[0].FeedURL)
			assert.Equal(t, "acc", processor.ImportFeedCalls()[0].Account)
		})
	}
}

func TestServer_historyHandler(t *testing.T) {
	published := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)
	articles := []domain.ArticleWithSummary{
		{
			Article: domain.Article{ID: 2, URL: "https://mp.weixin.qq.com/s/b", Title: "B", Author: "author",
				Content: "content b", PublishDate: &published, CreatedAt: created, UpdatedAt: created},
			AccountName: "acc",
			Summary: &domain.Summary{ID: 1, ArticleID: 2, SummaryResult: domain.SummaryResult{Summary: "sum b",
				KeyPoints: []string{"k1", "k2"}, Sentiment: domain.SentimentNegative, Category: "news"}},
		},
		{
			Article:     domain.Article{ID: 1, URL: "https://mp.weixin.qq.com/s/a", Title: "A", CreatedAt: created, UpdatedAt: created},
			AccountName: "acc",
		},
	}

	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantLimit   int
		wantAccount string
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10},
		{name: "explicit", query: "?page=3&limit=5&account=acc", wantPage: 3, wantLimit: 5, wantAccount: "acc"},
		{name: "limit capped", query: "?limit=500", wantPage: 1, wantLimit: 100},
		{name: "invalid values", query: "?page=abc&limit=-4", wantPage: 1, wantLimit: 10},
		{name: "zero page", query: "?page=0", wantPage: 1, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := &mocks.DatabaseMock{
				GetHistoryFunc: func(ctx context.Context, account string, page, limit int) ([]domain.ArticleWithSummary, domain.Pagination, error) {
					return articles, domain.NewPagination(page, limit, 2), nil
				},
			}
			srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "test", false)

			w := httptest.NewRecorder()
			srv.historyHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/history"+tt.query, http.NoBody))
			require.Equal(t, http.StatusOK, w.Code)

			require.Len(t, database.GetHistoryCalls(), 1)
			call := database.GetHistoryCalls()[0]
			assert.Equal(t, tt.wantPage, call.Page)
			assert.Equal(t, tt.wantLimit, call.Limit)
			assert.Equal(t, tt.wantAccount, call.Account)

			var resp historyResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, domain.NewPagination(tt.wantPage, tt.wantLimit, 2), resp.Pagination)
			require.Len(t, resp.Data, 2)

			assert.Equal(t, int64(2), resp.Data[0].ID)
			assert.Equal(t, "B", resp.Data[0].Title)
			assert.Equal(t, "acc", resp.Data[0].AccountName)
			require.NotNil(t, resp.Data[0].PublishDate)
			assert.True(t, published.Equal(*resp.Data[0].PublishDate))
			require.NotNil(t, resp.Data[0].Summary)
			assert.Equal(t, "sum b", resp.Data[0].Summary.Summary)
			assert.Equal(t, []string{"k1", "k2"}, resp.Data[0].Summary.KeyPoints)
			assert.Equal(t, domain.SentimentNegative, resp.Data[0].Summary.Sentiment)

			assert.Nil(t, resp.Data[1].Summary)
			assert.Nil(t, resp.Data[1].PublishDate)
		})
	}
}

func TestServer_historyHandlerEmptyAndErrors(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		database := &mocks.DatabaseMock{
			GetHistoryFunc: func(ctx context.Context, account string, page, limit int) ([]domain.ArticleWithSummary, domain.Pagination, error) {
				return nil, domain.NewPagination(page, limit, 0), nil
			},
		}
		srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "test", false)

		w := httptest.NewRecorder()
		srv.historyHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/history", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
		assert.Contains(t, w.Body.String(), `"pagination":{"page":1,"limit":10,"total":0,"pages":0}`)
	})

	t.Run("database error", func(t *testing.T) {
		database := &mocks.DatabaseMock{
			GetHistoryFunc: func(ctx context.Context, account string, page, limit int) ([]domain.ArticleWithSummary, domain.Pagination, error) {
				return nil, domain.Pagination{}, errors.New("disk i/o error")
			},
		}
		srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "test", false)

		w := httptest.NewRecorder()
		srv.historyHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/history", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, w.Body.String())
	})
}

func TestServer_tasksHandler(t *testing.T) {
	started := time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)
	finished := started.Add(time.Minute)

	database := &mocks.DatabaseMock{
		RecentTasksFunc: func(ctx context.Context, limit int) ([]domain.TaskLog, error) {
			return []domain.TaskLog{
				{ID: 2, Kind: "feed", Status: domain.TaskRunning, Total: 5, StartedAt: started},
				{ID: 1, Kind: "batch", Status: domain.TaskDone, Total: 3, Success: 2, Failed: 1,
					StartedAt: started, FinishedAt: &finished},
			}, nil
		},
	}
	srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "test", false)

	w := httptest.NewRecorder()
	srv.tasksHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/tasks?limit=5", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, database.RecentTasksCalls(), 1)
	assert.Equal(t, 5, database.RecentTasksCalls()[0].Limit)

	var resp struct {
		Success bool       `json:"success"`
		Data    []taskItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "running", resp.Data[0].Status)
	assert.Nil(t, resp.Data[0].FinishedAt)
	assert.Equal(t, "done", resp.Data[1].Status)
	assert.Equal(t, 2, resp.Data[1].Success)
	assert.Equal(t, 1, resp.Data[1].Failed)
	require.NotNil(t, resp.Data[1].FinishedAt)

	t.Run("default limit and error", func(t *testing.T) {
		failing := &mocks.DatabaseMock{
			RecentTasksFunc: func(ctx context.Context, limit int) ([]domain.TaskLog, error) {
				return nil, errors.New("locked")
			},
		}
		srv := New(testConfig(":8080"), failing, &mocks.ProcessorMock{}, "test", false)
		w := httptest.NewRecorder()
		srv.tasksHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/tasks", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		require.Len(t, failing.RecentTasksCalls(), 1)
		assert.Equal(t, defaultTasksLimit, failing.RecentTasksCalls()[0].Limit)
	})
}

func TestServer_articleHandler(t *testing.T) {
	created := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
	database := &mocks.DatabaseMock{
		GetArticleFunc: func(ctx context.Context, url string) (*domain.ArticleWithSummary, error) {
			switch url {
			case "https://mp.weixin.qq.com/s/abc":
				return &domain.ArticleWithSummary{
					Article:     domain.Article{ID: 7, URL: url, Title: "芯片", CreatedAt: created, UpdatedAt: created},
					AccountName: "tech",
					Summary: &domain.Summary{SummaryResult: domain.SummaryResult{Summary: "about chips",
						KeyPoints: []string{"fabs"}, Sentiment: domain.SentimentPositive, Category: "tech"}},
				}, nil
			case "https://mp.weixin.qq.com/s/missing":
				return nil, fmt.Errorf("get article: %w", domain.ErrNotFound)
			default:
				return nil, errors.New("disk i/o error")
			}
		},
	}
	srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "test", false)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.articleHandler(w, httptest.NewRequest("GET",
			"/api/batch-summarize/article?url=https%3A%2F%2Fmp.weixin.qq.com%2Fs%2Fabc", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool        `json:"success"`
			Data    historyItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(7), resp.Data.ID)
		assert.Equal(t, "芯片", resp.Data.Title)
		assert.Equal(t, "tech", resp.Data.AccountName)
		require.NotNil(t, resp.Data.Summary)
		assert.Equal(t, []string{"fabs"}, resp.Data.Summary.KeyPoints)
	})

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantBody string
	}{
		{name: "missing url", query: "", wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"error":"url is required"}`},
		{name: "not found", query: "?url=https://mp.weixin.qq.com/s/missing", wantCode: http.StatusNotFound,
			wantBody: `{"success":false,"error":"article not found"}`},
		{name: "database error", query: "?url=https://mp.weixin.qq.com/s/broken", wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"error":"internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.articleHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/article"+tt.query, http.NoBody))
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestServer_accountsHandler(t *testing.T) {
	created := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
	database := &mocks.DatabaseMock{
		ListAccountsFunc: func(ctx context.Context) ([]domain.Account, error) {
			return []domain.Account{
				{ID: 2, Name: "batch import", CreatedAt: created, UpdatedAt: created},
				{ID: 1, Name: "tech", CreatedAt: created, UpdatedAt: created},
			}, nil
		},
	}
	srv := New(testConfig(":8080"), database, &mocks.ProcessorMock{}, "test", false)

	w := httptest.NewRecorder()
	srv.accountsHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/accounts", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    []accountItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "batch import", resp.Data[0].Name)
	assert.Equal(t, int64(1), resp.Data[1].ID)

	t.Run("database error", func(t *testing.T) {
		failing := &mocks.DatabaseMock{
			ListAccountsFunc: func(ctx context.Context) ([]domain.Account, error) {
				return nil, errors.New("locked")
			},
		}
		srv := New(testConfig(":8080"), failing, &mocks.ProcessorMock{}, "test", false)
		w := httptest.NewRecorder()
		srv.accountsHandler(w, httptest.NewRequest("GET", "/api/batch-summarize/accounts", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, w.Body.String())
	})
}

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	renderJSON(w, nil, http.StatusCreated, map[string]string{"key": "value"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())

	w = httptest.NewRecorder()
	renderJSON(w, nil, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	renderError(w, nil, errors.New("bad thing"), http.StatusBadRequest)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"bad thing"}`, w.Body.String())

	w = httptest.NewRecorder()
	renderError(w, nil, nil, http.StatusInternalServerError)
	assert.JSONEq(t, `{"success":false,"error":"unknown error"}`, w.Body.String())
}
