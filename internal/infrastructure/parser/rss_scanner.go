package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/scanner"
)

// RSSScanner reads RSS and Atom feeds.
type RSSScanner struct {
	fetcher fetcher
	logger  *slog.Logger
}

var _ scanner.Scanner = (*RSSScanner)(nil)

// NewRSSScanner returns a scanner for RSS and Atom feeds.
func NewRSSScanner(client *http.Client, userAgent string, log *slog.Logger) *RSSScanner {
	return &RSSScanner{fetcher: newFetcher(client, userAgent), logger: log}
}

func (r *RSSScanner) Name() string {
	return "rss"
}

func (r *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawArticle, error) {
	body, err := r.fetcher.get(ctx, req.Source.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	if len(feed.Items) == 0 {
		if r.logger != nil {
			r.logger.Warn("feed has no items", "source", req.Source.Name, "url", req.Source.URL)
		}
		return nil, nil
	}

	fetchedAt := req.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	articles := make([]domain.RawArticle, 0, len(feed.Items))
	for _, it := range feed.Items {
		title := collapse(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}

		published := fetchedAt
		if it.PublishedParsed != nil {
			published = it.PublishedParsed.UTC()
		} else if it.UpdatedParsed != nil {
			published = it.UpdatedParsed.UTC()
		}

		summary := it.Description
		if summary == "" {
			summary = it.Content
		}

		articles = append(articles, domain.RawArticle{
			Title:     title,
			Link:      link,
			Summary:   plainText(summary),
			Published: published,
			Source:    req.Source.Name,
		})
	}

	return articles, nil
}

// plainText strips markup that feeds commonly embed in descriptions.
func plainText(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return collapse(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	return collapse(doc.Text())
}
