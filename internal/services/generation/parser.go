package generation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// IdeaCount is the number of ideas every generation returns
const IdeaCount = 10

var enumerationMarker = regexp.MustCompile(`^[\d\-\.\)\]\*•]+\s*`)

// ParseIdeas turns raw model output into exactly IdeaCount non-empty ideas.
// It prefers a JSON string array, falls back to one idea per line and pads
// with placeholders. It never fails.
func ParseIdeas(raw, persona, industry string) (ideas []string) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("Idea parsing panicked, using placeholders: %v", r)
			ideas = normalizeIdeas(nil, persona, industry)
		}
	}()

	parsed, ok := parseArray(raw)
	if !ok {
		parsed = parseLines(raw)
	}
	return normalizeIdeas(parsed, persona, industry)
}

// ParseBrief trims the brief text
func ParseBrief(raw string) string {
	return strings.TrimSpace(raw)
}

// PlaceholderIdea is the idea synthesized for position n (1-based)
func PlaceholderIdea(n int, persona, industry string) string {
	return fmt.Sprintf("Content idea %d for %s in %s", n, persona, industry)
}

// parseArray reads the array literal opening at the first '['. The span up to
// the last ']' is tried first, then each earlier ']' in order.
func parseArray(raw string) ([]string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, false
	}

	if items, ok := stringArray(raw[start : end+1]); ok {
		return items, true
	}
	for i := start + 1; i < end; i++ {
		if raw[i] != ']' {
			continue
		}
		if items, ok := stringArray(raw[start : i+1]); ok {
			return items, true
		}
	}
	return nil, false
}

func stringArray(literal string) ([]string, bool) {
	if !gjson.Valid(literal) {
		return nil, false
	}

	elements := gjson.Parse(literal).Array()
	items := make([]string, 0, len(elements))
	for _, el := range elements {
		if el.Type != gjson.String {
			return nil, false
		}
		items = append(items, el.Str)
	}
	return items, true
}

func parseLines(raw string) []string {
	var ideas []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "[" || line == "]" {
			continue
		}

		line = unquote(line)
		line = unquote(enumerationMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		ideas = append(ideas, line)
		if len(ideas) == IdeaCount {
			break
		}
	}
	return ideas
}

// unquote drops a trailing comma and surrounding quotes
func unquote(line string) string {
	line = strings.TrimSuffix(strings.TrimSpace(line), ",")
	return strings.TrimSpace(strings.Trim(line, `"'`))
}

func normalizeIdeas(parsed []string, persona, industry string) []string {
	ideas := make([]string, 0, IdeaCount)
	for _, idea := range parsed {
		if strings.TrimSpace(idea) == "" {
			continue
		}
		ideas = append(ideas, idea)
		if len(ideas) == IdeaCount {
			return ideas
		}
	}
	for len(ideas) < IdeaCount {
		ideas = append(ideas, PlaceholderIdea(len(ideas)+1, persona, industry))
	}
	return ideas
}
