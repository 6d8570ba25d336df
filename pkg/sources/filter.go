package sources

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coinpulse/newsharvest/internal/domain"
)

// DefaultExcludePatterns drop articles that mention the keywords only
// in an energy/mining context.
var DefaultExcludePatterns = []string{
	`\b(energy|power|electricity|mining)\s+(bitcoin|btc)\b`,
	`\b(bitcoin|btc)\s+(mining|energy)`,
}

// RelevanceFilter keeps articles whose title+snippet+url matches at
// least one keyword and none of the exclusion patterns.
type RelevanceFilter struct {
	include *regexp.Regexp
	exclude []*regexp.Regexp
}

// NewRelevanceFilter compiles the keyword and exclusion patterns. The
// keyword match is a case-insensitive word-boundary alternation;
// spaces inside multi-word keywords match any whitespace run.
func NewRelevanceFilter(keywords, excludePatterns []string) (*RelevanceFilter, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("keyword list is empty")
	}

	alts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		alts = append(alts, strings.ReplaceAll(regexp.QuoteMeta(kw), ` `, `\s+`))
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("keyword list is empty")
	}

	include, err := regexp.Compile(`(?i)\b(` + strings.Join(alts, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile keyword pattern: %w", err)
	}

	exclude := make([]*regexp.Regexp, 0, len(excludePatterns))
	for _, pat := range excludePatterns {
		re, err := regexp.Compile(`(?i)` + pat)
		if err != nil {
			return nil, fmt.Errorf("compile exclusion pattern %q: %w", pat, err)
		}
		exclude = append(exclude, re)
	}

	return &RelevanceFilter{include: include, exclude: exclude}, nil
}

// Matches reports whether the article passes the filter.
func (f *RelevanceFilter) Matches(a domain.Article) bool {
	text := strings.ToLower(a.Title + " " + a.Snippet + " " + a.URL)
	if !f.include.MatchString(text) {
		return false
	}
	for _, re := range f.exclude {
		if re.MatchString(text) {
			return false
		}
	}
	return true
}

// Apply filters a batch, preserving order.
func (f *RelevanceFilter) Apply(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}
