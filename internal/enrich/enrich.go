// Package enrich backfills missing article metadata by scraping the
// article pages. GDELT artlist responses frequently omit the snippet;
// the og: tags on the page usually carry one.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/internal/logger"
	"github.com/coinpulse/newsharvest/pkg/httpclient"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	maxPageWorkers   = 10
)

// Config controls one enrichment pass.
type Config struct {
	// RequestDelay paces page fetches across all workers.
	RequestDelay time.Duration
	// UserAgent is sent with every page fetch when non-empty.
	UserAgent string
}

// Enricher scrapes article pages for missing metadata.
type Enricher struct {
	client httpclient.Client
	log    logger.Logger
}

// New builds an Enricher with the given HTTP client and logger.
func New(client httpclient.Client, log logger.Logger) *Enricher {
	if client == nil {
		client = httpclient.NewRestyClient(15 * time.Second)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Enricher{client: client, log: log}
}

// Run returns a copy of articles where every entry missing a snippet
// has been enriched from its page when possible. Scrape failures
// leave the article untouched; cancellation returns whatever was
// finished by then.
func (e *Enricher) Run(ctx context.Context, cfg Config, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	var todo []int
	for i, a := range articles {
		if strings.TrimSpace(a.Snippet) == "" && a.URL != "" {
			todo = append(todo, i)
		}
	}
	if len(todo) == 0 {
		return out
	}

	var limiter <-chan time.Time
	if cfg.RequestDelay > 0 {
		ticker := time.NewTicker(cfg.RequestDelay)
		limiter = ticker.C
		defer ticker.Stop()
	}

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for range min(len(todo), maxPageWorkers) {
		wg.Add(1)
		go e.pageWorker(ctx, cfg, limiter, jobCh, out, &wg)
	}

	for _, idx := range todo {
		if ctx.Err() != nil {
			break
		}
		jobCh <- idx
	}
	close(jobCh)
	wg.Wait()

	return out
}

func (e *Enricher) pageWorker(
	ctx context.Context,
	cfg Config,
	limiter <-chan time.Time,
	jobCh <-chan int,
	out []domain.Article,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
				return
			case <-limiter:
			}
		}

		if enriched, err := e.scrapePage(ctx, cfg, out[idx]); err != nil {
			e.log.DebugObj("article page scrape failed", "enrich_error", map[string]any{
				"url":   out[idx].URL,
				"error": err.Error(),
			})
		} else {
			out[idx] = enriched
		}
	}
}

func (e *Enricher) scrapePage(ctx context.Context, cfg Config, art domain.Article) (domain.Article, error) {
	var headers map[string]string
	if cfg.UserAgent != "" {
		headers = map[string]string{"User-Agent": cfg.UserAgent}
	}

	resp, err := e.client.Get(ctx, art.URL, headers)
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != 200 {
		return art, fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parsePageMeta(body)
	if err != nil {
		return art, err
	}

	if art.Title == "" && meta.title != "" {
		art.Title = meta.title
	}
	if meta.description != "" {
		art.Snippet = meta.description
	}
	if art.SocialImage == "" && meta.imageURL != "" {
		art.SocialImage = meta.imageURL
	}
	return art, nil
}

type pageMeta struct {
	title       string
	description string
	imageURL    string
}

// parsePageMeta pulls og: and standard meta tags out of the page.
func parsePageMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	content := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	pm := pageMeta{
		title:       content(`meta[property="og:title"]`),
		description: content(`meta[property="og:description"]`),
		imageURL:    content(`meta[property="og:image"]`),
	}
	if pm.title == "" {
		pm.title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if pm.description == "" {
		pm.description = content(`meta[name="description"]`)
	}
	return pm, nil
}
