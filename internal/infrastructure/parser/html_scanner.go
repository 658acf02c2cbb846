package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/scanner"
)

// Selectors locate the article fields inside a page. Empty fields fall back to DefaultSelectors.
type Selectors struct {
	Article string
	Title   string
	Link    string
	Summary string
	Time    string
}

// DefaultSelectors match the common <article><h2/><a/><p/></article> layout.
var DefaultSelectors = Selectors{
	Article: "article",
	Title:   "h2",
	Link:    "a[href]",
	Summary: "p",
	Time:    "time[datetime]",
}

// HTMLScanner extracts articles from a plain news front page.
type HTMLScanner struct {
	fetcher   fetcher
	selectors Selectors
	logger    *slog.Logger
}

var _ scanner.Scanner = (*HTMLScanner)(nil)

// NewHTMLScanner returns a scanner for listing pages. Empty selectors fall
// back to the defaults.
func NewHTMLScanner(client *http.Client, userAgent string, sel Selectors, log *slog.Logger) *HTMLScanner {
	return &HTMLScanner{
		fetcher:   newFetcher(client, userAgent),
		selectors: sel.withDefaults(),
		logger:    log,
	}
}

func (h *HTMLScanner) Name() string {
	return "html"
}

// Scan fetches the source page and returns every article block that has a title and a link.
// Blocks missing either are skipped.
func (h *HTMLScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawArticle, error) {
	base, err := url.Parse(req.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url %s: %w", req.Source.URL, err)
	}

	body, err := h.fetcher.get(ctx, req.Source.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	blocks := doc.Find(h.selectors.Article)
	if blocks.Length() == 0 {
		h.warn("no articles found", "source", req.Source.Name, "url", req.Source.URL)
		return nil, nil
	}

	fetchedAt := req.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	articles := make([]domain.RawArticle, 0, blocks.Length())
	blocks.Each(func(i int, block *goquery.Selection) {
		article, err := h.parseBlock(block, base, fetchedAt)
		if err != nil {
			h.debug("skip article block", "source", req.Source.Name, "index", i, "error", err)
			return
		}
		article.Source = req.Source.Name
		articles = append(articles, article)
	})

	return articles, nil
}

func (h *HTMLScanner) parseBlock(block *goquery.Selection, base *url.URL, fetchedAt time.Time) (domain.RawArticle, error) {
	title := collapse(block.Find(h.selectors.Title).First().Text())
	if title == "" {
		return domain.RawArticle{}, fmt.Errorf("missing title")
	}

	href, ok := block.Find(h.selectors.Link).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return domain.RawArticle{}, fmt.Errorf("missing link")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return domain.RawArticle{}, fmt.Errorf("bad link %q: %w", href, err)
	}

	published := fetchedAt
	if stamp, ok := block.Find(h.selectors.Time).First().Attr("datetime"); ok {
		if t, err := parseTimestamp(stamp); err == nil {
			published = t
		}
	}

	return domain.RawArticle{
		Title:     title,
		Link:      base.ResolveReference(ref).String(),
		Summary:   collapse(block.Find(h.selectors.Summary).First().Text()),
		Published: published,
	}, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

func (s Selectors) withDefaults() Selectors {
	if s.Article == "" {
		s.Article = DefaultSelectors.Article
	}
	if s.Title == "" {
		s.Title = DefaultSelectors.Title
	}
	if s.Link == "" {
		s.Link = DefaultSelectors.Link
	}
	if s.Summary == "" {
		s.Summary = DefaultSelectors.Summary
	}
	if s.Time == "" {
		s.Time = DefaultSelectors.Time
	}
	return s
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (h *HTMLScanner) debug(msg string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}

func (h *HTMLScanner) warn(msg string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Warn(msg, args...)
	}
}
