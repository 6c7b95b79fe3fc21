package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/mpdigest/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . Processor

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	processor Processor
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for article, account and task log reads
type Database interface {
	GetHistory(ctx context.Context, account string, page, limit int) ([]domain.ArticleWithSummary, domain.Pagination, error)
	GetArticle(ctx context.Context, url string) (*domain.ArticleWithSummary, error)
	GetAccount(ctx context.Context, name string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	RecentTasks(ctx context.Context, limit int) ([]domain.TaskLog, error)
	Stats(ctx context.Context) (articles int, err error)
}

// Processor runs batch imports
type Processor interface {
	Run(ctx context.Context, urls []string, account string) (domain.BatchReport, error)
	ImportFeed(ctx context.Context, feedURL, account string) (domain.BatchReport, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, processor Processor, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		processor: processor,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout, // batch requests are synchronous, timeout must cover a whole batch
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("mpdigest", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
	})

	s.router.HandleFunc("POST /api/batch-summarize", s.batchSummarizeHandler)
	s.router.HandleFunc("GET /api/batch-summarize/history", s.historyHandler)
	s.router.HandleFunc("POST /api/batch-summarize/feed", s.feedImportHandler)
	s.router.HandleFunc("GET /api/batch-summarize/tasks", s.tasksHandler)
	s.router.HandleFunc("GET /api/batch-summarize/article", s.articleHandler)
	s.router.HandleFunc("GET /api/batch-summarize/accounts", s.accountsHandler)

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/{account}", s.rssHandler)
}
