package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/mpdigest/pkg/domain"
	"github.com/umputun/mpdigest/pkg/feed"
)

const defaultRSSLimit = 50

// rssHandler serves an RSS digest of the latest summarized articles.
// Supports both /rss/{account} and /rss?account=... patterns
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	account := strings.TrimSpace(r.PathValue("account"))
	if account == "" {
		account = strings.TrimSpace(r.URL.Query().Get("account"))
	}

	if account != "" {
		if _, err := s.db.GetAccount(r.Context(), account); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "Account not found", http.StatusNotFound)
				return
			}
			lgr.Printf("[ERROR] failed to get account %q for RSS: %v", account, err)
			http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
			return
		}
	}

	articles, _, err := s.db.GetHistory(r.Context(), account, 1, defaultRSSLimit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.NewGenerator(baseURL(r)).GenerateRSS(articles, account)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[WARN] failed to write RSS response: %v", err)
	}
}

// baseURL is the externally visible server url, X-Forwarded-Proto is respected behind a proxy
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
