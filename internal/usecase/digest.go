package usecase

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"NewsRanker/internal/domain"
)

// topStories returns the n highest-ranked aggregates; equal ranks keep first-seen order.
func topStories(aggregates []domain.AggregateArticle, n int) []domain.AggregateArticle {
	sorted := slices.Clone(aggregates)
	slices.SortStableFunc(sorted, func(a, b domain.AggregateArticle) int {
		return b.Rank - a.Rank
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

const (
	digestTitleLimit   = 200
	digestSummaryLimit = 280
	// digestLimit stays under the 4096-character Telegram message cap.
	digestLimit = 4000
)

// buildDigestMessage renders stories as Telegram Markdown. Text is clipped before escaping
// and whole stories are dropped once the message would exceed digestLimit, so markup is never cut.
func buildDigestMessage(stories []domain.AggregateArticle) string {
	if len(stories) == 0 {
		return ""
	}

	const header = "*Top stories*"
	var b strings.Builder
	b.WriteString(header)
	size := utf8.RuneCountInString(header)

	for i, story := range stories {
		var entry strings.Builder
		fmt.Fprintf(&entry, "\n\n%d. *%s* (%d %s)",
			i+1, escapeMarkdown(clipRunes(story.Title, digestTitleLimit)),
			story.Rank, plural(story.Rank, "source", "sources"))
		if summary := strings.TrimSpace(story.Summary); summary != "" {
			fmt.Fprintf(&entry, "\n%s", escapeMarkdown(clipRunes(summary, digestSummaryLimit)))
		}

		n := utf8.RuneCountInString(entry.String())
		if size+n > digestLimit {
			break
		}
		b.WriteString(entry.String())
		size += n
	}
	return b.String()
}

func clipRunes(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit-1])) + "…"
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "[", `\[`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
