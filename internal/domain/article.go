package domain

import "time"

// RawArticle is an as-scraped news item before deduplication.
type RawArticle struct {
	Title     string
	Link      string
	Summary   string
	Published time.Time
	Source    string
}

// Representative returns the text the oracle compares for this article.
func (a RawArticle) Representative() Representative {
	return Representative{Title: a.Title, Summary: a.Summary}
}

// Source is a site the scraper visits.
type Source struct {
	Name    string
	URL     string
	Scanner string
}

// Representative is the canonical text of a cluster: the first-seen article's title and summary.
type Representative struct {
	Title   string
	Summary string
}

// AggregateArticle is the persisted form of a finalized cluster.
// Rank equals the number of raw articles folded into the cluster.
type AggregateArticle struct {
	Title   string
	Summary string
	Rank    int
}

// Verdict is the oracle's answer for a single candidate.
type Verdict struct {
	Matched bool
	Index   int
}

// NoMatch reports that the candidate starts a new story.
func NoMatch() Verdict {
	return Verdict{}
}

// MatchAt reports that the candidate belongs to cluster i.
func MatchAt(i int) Verdict {
	return Verdict{Matched: true, Index: i}
}
