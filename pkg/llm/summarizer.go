package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/mpdigest/pkg/config"
	"github.com/umputun/mpdigest/pkg/domain"
)

const (
	// fallbackLines is the number of response lines used when the answer has no json object
	fallbackLines = 3
	// fallbackSummaryLen caps the fallback summary, in runes
	fallbackSummaryLen = 200
)

// default system prompt for article summarization
const defaultSystemPrompt = `You are an assistant that summarizes Chinese and English news articles.
Always answer with a single JSON object and nothing else.
Write the summary and key points in the same language as the article.`

// promptTemplate is filled with the article title and content
const promptTemplate = `Summarize the following article.

Title: %s

Content:
%s

Respond with a JSON object with exactly these fields:
- "summary": a concise summary of the article, at most 150 characters
- "keyPoints": an array of 3 to 5 key points
- "sentiment": one of "positive", "negative" or "neutral"
- "category": a short category label, e.g. technology, finance, society, culture`

// Summarizer uses LLM to summarize articles
type Summarizer struct {
	client     *openai.Client
	config     config.LLMConfig
	systemMsg  string
	sanitizer  *bluemonday.Policy
	batchDelay time.Duration
}

// BatchItem is a single article for SummarizeBatch
type BatchItem struct {
	ID      string
	Title   string
	Content string
}

// BatchSummary is the outcome for one BatchItem, either Result or Err is set
type BatchSummary struct {
	Result domain.SummaryResult
	Err    error
}

// NewSummarizer creates a new LLM summarizer. Endpoint and API key are required.
func NewSummarizer(cfg config.LLMConfig) (*Summarizer, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("llm endpoint is not configured")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.Endpoint
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Summarizer{
		client:     openai.NewClientWithConfig(clientConfig),
		config:     cfg,
		systemMsg:  systemMsg,
		sanitizer:  bluemonday.StrictPolicy(),
		batchDelay: cfg.BatchDelay,
	}, nil
}

// Summarize asks the LLM for a structured summary of a single article.
// Unparsable answers fall back to a line-based summary, only transport failures return an error.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) (domain.SummaryResult, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: s.systemMsg,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, title, content),
			},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.SummaryResult{}, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.SummaryResult{}, errors.New("no response from llm")
	}

	// blank answers go through the line fallback as well and produce the default result
	answer := resp.Choices[0].Message.Content
	if res, ok := s.parseResponse(answer); ok {
		return res, nil
	}
	lgr.Printf("[DEBUG] no json in llm response for %q, using line fallback", title)
	return s.fallback(answer), nil
}

// SummarizeBatch summarizes items one by one with the configured delay between calls.
// Every item id is present in the result, failed items carry Err.
func (s *Summarizer) SummarizeBatch(ctx context.Context, items []BatchItem) map[string]BatchSummary {
	res := make(map[string]BatchSummary, len(items))
	for i, item := range items {
		if i > 0 && s.batchDelay > 0 {
			if err := sleepCtx(ctx, s.batchDelay); err != nil {
				for _, rest := range items[i:] {
					res[rest.ID] = BatchSummary{Err: err}
				}
				return res
			}
		}
		summary, err := s.Summarize(ctx, item.Title, item.Content)
		if err != nil {
			lgr.Printf("[WARN] failed to summarize %s: %v", item.ID, err)
			res[item.ID] = BatchSummary{Err: err}
			continue
		}
		res[item.ID] = BatchSummary{Result: summary}
	}
	return res
}

// llmAnswer is the json object requested from the LLM. Both camel and snake case key points are accepted.
type llmAnswer struct {
	Summary        string   `json:"summary"`
	KeyPoints      []string `json:"keyPoints"`
	KeyPointsSnake []string `json:"key_points"`
	Sentiment      string   `json:"sentiment"`
	Category       string   `json:"category"`
}

// parseResponse decodes the json object between the first '{' and the last '}'
func (s *Summarizer) parseResponse(answer string) (domain.SummaryResult, bool) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start == -1 || end == -1 || start >= end {
		return domain.SummaryResult{}, false
	}

	var parsed llmAnswer
	if err := json.Unmarshal([]byte(answer[start:end+1]), &parsed); err != nil {
		lgr.Printf("[DEBUG] failed to parse llm json: %v", err)
		return domain.SummaryResult{}, false
	}

	points := parsed.KeyPoints
	if len(points) == 0 {
		points = parsed.KeyPointsSnake
	}

	res := domain.SummaryResult{
		Summary:   s.sanitize(parsed.Summary),
		KeyPoints: make([]string, 0, len(points)),
		Sentiment: domain.ParseSentiment(parsed.Sentiment),
		Category:  s.sanitize(parsed.Category),
	}
	for _, p := range points {
		if p = s.sanitize(p); p != "" {
			res.KeyPoints = append(res.KeyPoints, p)
		}
	}
	if res.Category == "" {
		res.Category = domain.DefaultCategory
	}
	return res, true
}

// fallback builds a summary from the first non-blank lines of a free-text answer
func (s *Summarizer) fallback(answer string) domain.SummaryResult {
	lines := make([]string, 0, fallbackLines)
	for _, line := range strings.Split(answer, "\n") {
		if line = s.sanitize(line); line != "" {
			lines = append(lines, line)
		}
		if len(lines) == fallbackLines {
			break
		}
	}

	summary := strings.Join(lines, " ")
	if r := []rune(summary); len(r) > fallbackSummaryLen {
		summary = strings.TrimSpace(string(r[:fallbackSummaryLen]))
	}
	return domain.SummaryResult{
		Summary:   summary,
		KeyPoints: lines,
		Sentiment: domain.SentimentNeutral,
		Category:  domain.DefaultCategory,
	}
}

// sanitize strips markup the LLM sometimes adds and unescapes entities left by the policy
func (s *Summarizer) sanitize(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(v)))
}

// sleepCtx pauses for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
