package llm

import (
	"fmt"
	"strings"

	"NewsRanker/internal/domain"
)

const defaultSystemPrompt = "You are a news desk editor who decides whether a new article reports the same " +
	"real-world story as one already on the desk. Different wording, sources or angles on the same event " +
	"count as the same story. Articles that only share a topic or a headline phrase do not. " +
	"Respond with ONLY raw JSON, no markdown."

// summaryLimit keeps each representative short; the story list grows with every distinct story.
const summaryLimit = 400

func systemPrompt(custom string) string {
	custom = strings.TrimSpace(custom)
	if custom == "" {
		return defaultSystemPrompt
	}
	return custom
}

// buildMatchPrompt numbers the stories from 1 so that 0 can never be mistaken for a match.
func buildMatchPrompt(candidate domain.Representative, clusters []domain.Representative) string {
	var b strings.Builder

	b.WriteString("NEW ARTICLE:\n")
	fmt.Fprintf(&b, "Title: %s\n", oneLine(candidate.Title))
	fmt.Fprintf(&b, "Summary: %s\n\n", clip(oneLine(candidate.Summary), summaryLimit))

	b.WriteString("STORIES ALREADY ON THE DESK:\n")
	for i, rep := range clusters {
		fmt.Fprintf(&b, "[%d] Title: %s\n    Summary: %s\n", i+1, oneLine(rep.Title), clip(oneLine(rep.Summary), summaryLimit))
	}

	fmt.Fprintf(&b, `
TASK:
Decide whether the NEW ARTICLE reports the same story as exactly one of the %d stories above.

OUTPUT FORMAT (JSON only):
{"match": <story number between 1 and %d, or null if it is a new story>}
`, len(clusters), len(clusters))

	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
