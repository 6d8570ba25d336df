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
	"github.com/coinpulse/newsharvest/pkg/dates"
	"github.com/coinpulse/newsharvest/pkg/httpclient"
)

// DefaultCryptoPanicBaseURL is the public CryptoPanic posts endpoint.
const DefaultCryptoPanicBaseURL = "https://cryptopanic.com/api/v1/posts/"

// CryptoPanicConfig holds everything one CryptoPanic fetch run needs.
type CryptoPanicConfig struct {
	BaseURL      string
	APIKey       string
	Currencies   []string
	Window       Window
	MaxPages     int
	ProbePages   int
	RequestDelay time.Duration
}

func (c CryptoPanicConfig) withDefaults() CryptoPanicConfig {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultCryptoPanicBaseURL
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 50
	}
	if c.ProbePages <= 0 {
		c.ProbePages = 5
	}
	return c
}

// CryptoPanic fetches posts page by page until the window is exhausted.
type CryptoPanic struct {
	client httpclient.Client
	log    logger.Logger
}

// NewCryptoPanic builds a CryptoPanic fetcher with the given HTTP
// client and logger.
func NewCryptoPanic(client httpclient.Client, log logger.Logger) *CryptoPanic {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &CryptoPanic{client: client, log: ensureLogger(log)}
}

// Fetch pages through the posts feed keeping records inside the
// window. The first post strictly before the window start terminates
// the run: the feed is assumed date-descending, which the API does not
// guarantee, so the assumption is logged up front instead of relied on
// silently. A transport, status or decode failure aborts the loop and
// returns whatever accumulated. The API's "next" signal is known to be
// unreliable, so when it reports no further pages before anything was
// found, a few more pages are probed manually.
func (c *CryptoPanic) Fetch(ctx context.Context, cfg CryptoPanicConfig) ([]domain.Post, error) {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("cryptopanic api key is required")
	}

	c.log.InfoObj("starting cryptopanic fetch", "cryptopanic_fetch_start", map[string]any{
		"currencies": strings.Join(cfg.Currencies, ","),
		"start":      cfg.Window.Start.Format("2006-01-02"),
		"end":        cfg.Window.End.Format("2006-01-02"),
		"max_pages":  cfg.MaxPages,
	})
	c.log.WarnObj("early termination assumes date-descending feed order; the API does not guarantee it",
		"cryptopanic_order_assumption", nil)

	pacer := newPacer(cfg.RequestDelay)

	var all []domain.Post
	for page := 1; page <= cfg.MaxPages; page++ {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return all, err
			}
		} else if ctx.Err() != nil {
			return all, ctx.Err()
		}

		posts, hasNext, err := c.fetchPage(ctx, cfg, page)
		if err != nil {
			c.log.ErrorObj("cryptopanic page failed, aborting with partial results", "cryptopanic_page_error", map[string]any{
				"page":        page,
				"accumulated": len(all),
				"error":       err.Error(),
			})
			return all, nil
		}

		if len(posts) == 0 {
			c.log.InfoObj("no more results", "cryptopanic_empty_page", map[string]any{"page": page})
			return all, nil
		}

		kept, sawOlder := c.selectInWindow(posts, cfg.Window)
		all = append(all, kept...)
		c.log.InfoObj("cryptopanic page fetched", "cryptopanic_page_done", map[string]any{
			"page":     page,
			"in_range": len(kept),
			"total":    len(all),
		})

		if sawOlder {
			c.log.InfoObj("reached posts before window start, stopping", "cryptopanic_window_exhausted", map[string]any{
				"page": page,
			})
			return all, nil
		}

		if len(kept) == 0 && c.allBeforeStart(posts, cfg.Window.Start) {
			c.log.InfoObj("entire page predates window start, stopping", "cryptopanic_window_exhausted", map[string]any{
				"page": page,
			})
			return all, nil
		}

		if !hasNext {
			if len(all) > 0 {
				c.log.InfoObj("no more pages available", "cryptopanic_last_page", map[string]any{"page": page})
				return all, nil
			}
			if page < cfg.ProbePages {
				// next=null on early pages is known to be wrong sometimes.
				c.log.DebugObj("next is null but nothing found yet, probing further", "cryptopanic_probe", map[string]any{
					"next_page": page + 1,
				})
				continue
			}
			c.log.WarnObj("no posts in window after probing; the plan may not cover the requested range",
				"cryptopanic_no_data", map[string]any{"pages_tried": page})
			return all, nil
		}
	}

	c.log.InfoObj("reached page cap", "cryptopanic_page_cap", map[string]any{"max_pages": cfg.MaxPages})
	return all, nil
}

// selectInWindow partitions a page into in-window posts and reports
// whether a post before the window start was seen. Posts after the
// window end are skipped but do not stop the run, in case ordering is
// off. Posts with missing or unparsable timestamps are skipped.
func (c *CryptoPanic) selectInWindow(posts []domain.Post, w Window) (kept []domain.Post, sawOlder bool) {
	for _, post := range posts {
		raw := post.Timestamp()
		if raw == "" {
			c.log.DebugObj("post has no timestamp, skipping", "cryptopanic_no_timestamp", map[string]any{
				"id": post.ID,
			})
			continue
		}

		t, err := dates.Parse(raw)
		if err != nil {
			c.log.DebugObj("post timestamp unparsable, skipping", "cryptopanic_bad_timestamp", map[string]any{
				"id":  post.ID,
				"raw": raw,
			})
			continue
		}

		t = t.UTC()
		switch {
		case w.Contains(t):
			kept = append(kept, post)
		case t.Before(w.Start):
			return kept, true
		}
	}
	return kept, false
}

// allBeforeStart reports whether every parsable post on the page
// predates the window start.
func (c *CryptoPanic) allBeforeStart(posts []domain.Post, start time.Time) bool {
	for _, post := range posts {
		t, err := dates.Parse(post.Timestamp())
		if err != nil {
			continue
		}
		if !t.UTC().Before(start) {
			return false
		}
	}
	return true
}

// fetchPage issues one posts request.
func (c *CryptoPanic) fetchPage(ctx context.Context, cfg CryptoPanicConfig, page int) ([]domain.Post, bool, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, false, fmt.Errorf("parse base url: %w", err)
	}

	q := base.Query()
	q.Set("auth_token", cfg.APIKey)
	q.Set("currencies", strings.Join(cfg.Currencies, ","))
	q.Set("page", strconv.Itoa(page))
	q.Set("public", "true")
	base.RawQuery = q.Encode()

	resp, err := c.client.Get(ctx, base.String(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, false, fmt.Errorf("status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	posts, hasNext, err := decodePosts(resp.Body())
	if err != nil {
		return nil, false, fmt.Errorf("decode posts: %w", err)
	}
	return posts, hasNext, nil
}

// decodePosts accepts the response shapes the API has been seen to
// emit: {"results": [...], "next": ...}, {"data": [...]}, or a bare
// list.
func decodePosts(body []byte) ([]domain.Post, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false, nil
	}

	if trimmed[0] == '[' {
		var list []domain.Post
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, false, err
		}
		return list, false, nil
	}

	var page struct {
		Results []domain.Post   `json:"results"`
		Data    []domain.Post   `json:"data"`
		Next    json.RawMessage `json:"next"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, false, err
	}

	posts := page.Results
	if len(posts) == 0 {
		posts = page.Data
	}

	hasNext := len(page.Next) > 0 && !bytes.Equal(bytes.TrimSpace(page.Next), []byte("null"))
	return posts, hasNext, nil
}
