// Package sources implements the upstream news fetchers. Each source
// is a one-shot, sequential fetch loop: requests are paced by a
// client-side limiter, failures are absorbed locally (skip the chunk
// or abort with partial results) and nothing retries.
package sources

import (
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/coinpulse/newsharvest/internal/logger"
	"github.com/coinpulse/newsharvest/pkg/httpclient"
)

// Source identifiers used by the CLI and in published events.
const (
	SourceGDELT       = "gdelt"
	SourceCryptoPanic = "cryptopanic"
)

// Window is the inclusive date range a fetch is bounded to.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DefaultHTTPClient returns the tuned client the fetchers use when
// none is injected.
func DefaultHTTPClient() httpclient.Client {
	return httpclient.NewRestyClient(60 * time.Second)
}

// newPacer builds a request pacer for the given inter-request delay.
// A nil pacer means no delay was configured.
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// responseSnippet returns a truncated snippet of the response body for
// logging.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

func ensureLogger(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
