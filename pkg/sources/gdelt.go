package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/internal/logger"
	"github.com/coinpulse/newsharvest/pkg/httpclient"
)

// DefaultGDELTBaseURL is the GDELT DOC 2.0 artlist endpoint.
const DefaultGDELTBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

const gdeltDatetimeSuffix = "000000"

// GDELTConfig holds everything one GDELT fetch run needs. All former
// module-level knobs are explicit here.
type GDELTConfig struct {
	BaseURL         string
	Keywords        []string
	ExcludePatterns []string
	Window          Window
	MaxRecords      int
	RequestDelay    time.Duration
}

func (c GDELTConfig) withDefaults() GDELTConfig {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultGDELTBaseURL
	}
	if c.MaxRecords <= 0 {
		c.MaxRecords = 250
	}
	if c.ExcludePatterns == nil {
		c.ExcludePatterns = DefaultExcludePatterns
	}
	return c
}

// GDELT fetches articles from the GDELT DOC API in monthly chunks.
type GDELT struct {
	client httpclient.Client
	log    logger.Logger
}

// NewGDELT builds a GDELT fetcher with the given HTTP client and logger.
func NewGDELT(client httpclient.Client, log logger.Logger) *GDELT {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &GDELT{client: client, log: ensureLogger(log)}
}

// BuildQuery renders the keyword list as the parenthesized OR query
// GDELT requires.
func BuildQuery(keywords []string) string {
	return "(" + strings.Join(keywords, " OR ") + ")"
}

// Fetch splits the window into calendar-month chunks and issues one
// request per chunk. Chunk-level failures (transport, non-200, decode)
// are logged and skipped; the concatenation of all surviving chunks'
// filtered articles is returned. There is no cross-chunk dedup here;
// the exporter dedups by URL.
func (g *GDELT) Fetch(ctx context.Context, cfg GDELTConfig) ([]domain.Article, error) {
	cfg = cfg.withDefaults()

	filter, err := NewRelevanceFilter(cfg.Keywords, cfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	chunks := MonthChunks(cfg.Window.Start, cfg.Window.End)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("window %s..%s yields no chunks",
			cfg.Window.Start.Format("2006-01-02"), cfg.Window.End.Format("2006-01-02"))
	}

	query := BuildQuery(cfg.Keywords)
	g.log.InfoObj("starting gdelt fetch", "gdelt_fetch_start", map[string]any{
		"query":  query,
		"chunks": len(chunks),
		"start":  cfg.Window.Start.Format("2006-01-02"),
		"end":    cfg.Window.End.Format("2006-01-02"),
	})

	pacer := newPacer(cfg.RequestDelay)

	var all []domain.Article
	for i, chunk := range chunks {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return all, err
			}
		} else if ctx.Err() != nil {
			return all, ctx.Err()
		}

		fetched, err := g.fetchChunk(ctx, cfg, query, chunk)
		if err != nil {
			g.log.WarnObj("gdelt chunk failed, skipping", "gdelt_chunk_error", map[string]any{
				"chunk": i + 1,
				"start": chunk.Start.Format("2006-01-02"),
				"end":   chunk.End.Format("2006-01-02"),
				"error": err.Error(),
			})
			continue
		}

		kept := filter.Apply(fetched)
		g.log.InfoObj("gdelt chunk fetched", "gdelt_chunk_done", map[string]any{
			"chunk":    i + 1,
			"fetched":  len(fetched),
			"relevant": len(kept),
		})
		all = append(all, kept...)
	}

	g.log.InfoObj("gdelt fetch finished", "gdelt_fetch_done", map[string]any{
		"articles": len(all),
	})
	return all, nil
}

// fetchChunk issues one artlist request for the chunk.
func (g *GDELT) fetchChunk(ctx context.Context, cfg GDELTConfig, query string, chunk Chunk) ([]domain.Article, error) {
	reqURL, err := gdeltRequestURL(cfg, query, chunk)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Get(ctx, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	articles, err := decodeArticles(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	return articles, nil
}

func gdeltRequestURL(cfg GDELTConfig, query string, chunk Chunk) (string, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := base.Query()
	q.Set("query", query)
	q.Set("mode", "artlist")
	q.Set("maxrecords", strconv.Itoa(cfg.MaxRecords))
	q.Set("format", "json")
	q.Set("startdatetime", chunk.Start.Format("20060102")+gdeltDatetimeSuffix)
	q.Set("enddatetime", chunk.End.Format("20060102")+gdeltDatetimeSuffix)
	base.RawQuery = q.Encode()

	return base.String(), nil
}

// decodeArticles accepts both response shapes GDELT emits: an object
// with an "articles" list, or a bare list.
func decodeArticles(body []byte) ([]domain.Article, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []domain.Article
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapper struct {
		Articles []domain.Article `json:"articles"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Articles, nil
}
