package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"NewsRanker/internal/domain"
)

var (
	codeFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	objectRegex    = regexp.MustCompile(`(?s)\{.*\}`)
)

type matchResponse struct {
	Match json.RawMessage `json:"match"`
}

// parseVerdict turns the model's reply into a verdict over n stories.
// Anything that is not a single in-range story number or null is ambiguous.
func parseVerdict(text string, n int) (domain.Verdict, error) {
	body := strings.TrimSpace(text)
	if m := codeFenceRegex.FindStringSubmatch(body); m != nil {
		body = m[1]
	}
	if !strings.HasPrefix(body, "{") {
		body = objectRegex.FindString(body)
	}
	if body == "" {
		return domain.Verdict{}, fmt.Errorf("%w: no JSON object in %q", domain.ErrAmbiguousResponse, clip(text, 120))
	}

	dec := json.NewDecoder(strings.NewReader(body))
	var resp matchResponse
	if err := dec.Decode(&resp); err != nil {
		return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrAmbiguousResponse, err)
	}

	raw := bytes.TrimSpace(resp.Match)
	if len(raw) == 0 {
		return domain.Verdict{}, fmt.Errorf("%w: missing \"match\" field", domain.ErrAmbiguousResponse)
	}
	if string(raw) == "null" {
		return domain.NoMatch(), nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		var quoted string
		if json.Unmarshal(raw, &quoted) != nil {
			return domain.Verdict{}, fmt.Errorf("%w: match is %s", domain.ErrAmbiguousResponse, raw)
		}
		number = json.Number(strings.TrimSpace(quoted))
	}

	story, err := number.Int64()
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("%w: match is %s", domain.ErrAmbiguousResponse, raw)
	}
	if story == 0 {
		return domain.NoMatch(), nil
	}
	if story < 1 || story > int64(n) {
		return domain.Verdict{}, fmt.Errorf("%w: story %d not in 1..%d", domain.ErrAmbiguousResponse, story, n)
	}

	return domain.MatchAt(int(story - 1)), nil
}
