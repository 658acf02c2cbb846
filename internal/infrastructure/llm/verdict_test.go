package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRanker/internal/domain"
)

func TestParseVerdict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want domain.Verdict
	}{
		{name: "null", text: `{"match": null}`, want: domain.NoMatch()},
		{name: "zero", text: `{"match": 0}`, want: domain.NoMatch()},
		{name: "first story", text: `{"match": 1}`, want: domain.MatchAt(0)},
		{name: "last story", text: `{"match": 3}`, want: domain.MatchAt(2)},
		{name: "quoted number", text: `{"match": "2"}`, want: domain.MatchAt(1)},
		{name: "fenced", text: "```json\n{\"match\": 2}\n```", want: domain.MatchAt(1)},
		{name: "chatter around object", text: "Sure! {\"match\": null} hope this helps", want: domain.NoMatch()},
	}

	for _, tt := range tests {
		got, err := parseVerdict(tt.text, 3)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestParseVerdictRejectsAmbiguousReplies(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"yes, story two",
		`{"answer": 1}`,
		`{"match": 4}`,
		`{"match": -1}`,
		`{"match": 1.5}`,
		`{"match": "two"}`,
		`{"match": [1, 2]}`,
		`{"match": 1`,
	} {
		_, err := parseVerdict(text, 3)
		require.Error(t, err, text)
		assert.ErrorIs(t, err, domain.ErrAmbiguousResponse, text)
		assert.ErrorIs(t, err, domain.ErrOracleUnavailable, text)
	}
}

func TestBuildMatchPromptNumbersStoriesFromOne(t *testing.T) {
	t.Parallel()

	prompt := buildMatchPrompt(
		domain.Representative{Title: "Storm\nhits coast", Summary: "Rain."},
		[]domain.Representative{
			{Title: "Election results", Summary: "Votes counted."},
			{Title: "Hurricane warning", Summary: "Coast braces."},
		},
	)

	assert.Contains(t, prompt, "Title: Storm hits coast")
	assert.Contains(t, prompt, "[1] Title: Election results")
	assert.Contains(t, prompt, "[2] Title: Hurricane warning")
	assert.NotContains(t, prompt, "[0]")
	assert.Contains(t, prompt, "between 1 and 2")
}

func TestClipKeepsRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "жжж...", clip("жжжжж", 3))
	assert.Equal(t, defaultSystemPrompt, systemPrompt("  "))
	assert.Equal(t, "custom", systemPrompt(" custom "))
}

func TestParseVerdictErrorKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	reply := strings.Repeat("ж", 200)
	_, err := parseVerdict(reply, 2)
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), strings.Repeat("ж", 120)+"...")
}
