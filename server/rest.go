package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/mpdigest/pkg/batch"
	"github.com/umputun/mpdigest/pkg/domain"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	defaultTasksLimit   = 20
	maxTasksLimit       = 100
)

var errInvalidURLs = errors.New("urls must be a non-empty list")

// batchRequest is the body of a batch summarize request. URLs is kept raw to tell
// a missing or non-list value apart from a malformed body.
type batchRequest struct {
	URLs        json.RawMessage `json:"urls"`
	AccountName string          `json:"accountName"`
}

type feedRequest struct {
	FeedURL     string `json:"feedUrl"`
	AccountName string `json:"accountName"`
}

type batchResponse struct {
	Success bool `json:"success"`
	domain.BatchReport
}

// historyItem is an article with its summary as returned by the history endpoint
type historyItem struct {
	ID          int64                 `json:"id"`
	URL         string                `json:"url"`
	Title       string                `json:"title"`
	Author      string                `json:"author"`
	AccountName string                `json:"accountName"`
	Content     string                `json:"content"`
	PublishDate *time.Time            `json:"publishDate,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
	Summary     *domain.SummaryResult `json:"summary,omitempty"`
}

type historyResponse struct {
	Success    bool              `json:"success"`
	Data       []historyItem     `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

type accountItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type taskItem struct {
	ID         int64      `json:"id"`
	Kind       string     `json:"kind"`
	Status     string     `json:"status"`
	Total      int        `json:"total"`
	Success    int        `json:"success"`
	Failed     int        `json:"failed"`
	Message    string     `json:"message,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	if articles, err := s.db.Stats(r.Context()); err == nil {
		status["articles"] = articles
	} else {
		lgr.Printf("[WARN] failed to get stats: %v", err)
	}
	renderJSON(w, r, http.StatusOK, status)
}

// batchSummarizeHandler fetches, summarizes and stores a list of article urls
func (s *Server) batchSummarizeHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	var urls []string
	if len(req.URLs) == 0 || json.Unmarshal(req.URLs, &urls) != nil || len(urls) == 0 {
		renderError(w, r, errInvalidURLs, http.StatusBadRequest)
		return
	}

	lgr.Printf("[INFO] batch summarize request, %d urls, account %q", len(urls), req.AccountName)
	report, err := s.processor.Run(r.Context(), urls, strings.TrimSpace(req.AccountName))
	if err != nil {
		s.renderProcessorError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, batchResponse{Success: true, BatchReport: report})
}

// feedImportHandler imports article links found in a feed
func (s *Server) feedImportHandler(w http.ResponseWriter, r *http.Request) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	lgr.Printf("[INFO] feed import request for %s", req.FeedURL)
	report, err := s.processor.ImportFeed(r.Context(), strings.TrimSpace(req.FeedURL), strings.TrimSpace(req.AccountName))
	if err != nil {
		s.renderProcessorError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, batchResponse{Success: true, BatchReport: report})
}

// historyHandler returns stored articles with summaries, newest first
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1, 0)
	limit := queryInt(r, "limit", defaultHistoryLimit, maxHistoryLimit)
	account := strings.TrimSpace(r.URL.Query().Get("account"))

	articles, pagination, err := s.db.GetHistory(r.Context(), account, page, limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get history: %v", err)
		renderError(w, r, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	resp := historyResponse{Success: true, Data: make([]historyItem, 0, len(articles)), Pagination: pagination}
	for _, a := range articles {
		resp.Data = append(resp.Data, newHistoryItem(a))
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// articleHandler returns a single stored article by its url
func (s *Server) articleHandler(w http.ResponseWriter, r *http.Request) {
	articleURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if articleURL == "" {
		renderError(w, r, errors.New("url is required"), http.StatusBadRequest)
		return
	}

	article, err := s.db.GetArticle(r.Context(), articleURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderError(w, r, errors.New("article not found"), http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to get article %s: %v", articleURL, err)
		renderError(w, r, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true, "data": newHistoryItem(*article)})
}

// accountsHandler lists accounts articles were imported under
func (s *Server) accountsHandler(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.db.ListAccounts(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list accounts: %v", err)
		renderError(w, r, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	data := make([]accountItem, 0, len(accounts))
	for _, a := range accounts {
		data = append(data, accountItem{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt})
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true, "data": data})
}

func newHistoryItem(a domain.ArticleWithSummary) historyItem {
	item := historyItem{
		ID:          a.ID,
		URL:         a.URL,
		Title:       a.Title,
		Author:      a.Author,
		AccountName: a.AccountName,
		Content:     a.Content,
		PublishDate: a.PublishDate,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Summary != nil {
		summary := a.Summary.SummaryResult
		item.Summary = &summary
	}
	return item
}

// tasksHandler returns recent batch task logs
func (s *Server) tasksHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultTasksLimit, maxTasksLimit)
	tasks, err := s.db.RecentTasks(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get tasks: %v", err)
		renderError(w, r, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	data := make([]taskItem, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, taskItem{
			ID:         t.ID,
			Kind:       t.Kind,
			Status:     string(t.Status),
			Total:      t.Total,
			Success:    t.Success,
			Failed:     t.Failed,
			Message:    t.Message,
			StartedAt:  t.StartedAt,
			FinishedAt: t.FinishedAt,
		})
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true, "data": data})
}

// renderProcessorError maps batch errors to status codes, request errors are reported as is
func (s *Server) renderProcessorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, batch.ErrNoURLs), errors.Is(err, batch.ErrTooManyURLs), errors.Is(err, batch.ErrNoFeedURL):
		renderError(w, r, err, http.StatusBadRequest)
	case errors.Is(err, batch.ErrFeedUnavailable):
		lgr.Printf("[WARN] %v", err)
		renderError(w, r, err, http.StatusBadGateway)
	default:
		lgr.Printf("[ERROR] batch failed: %v", err)
		renderError(w, r, errors.New("internal server error"), http.StatusInternalServerError)
	}
}

// queryInt reads a positive int query parameter, invalid values give def, max caps the value if set
func queryInt(r *http.Request, name string, def, maxVal int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"success": false, "error": errMsg})
}
