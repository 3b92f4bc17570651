package provider

import (
	"encoding/json"
	"strings"
)

// ParseGlossReply normalizes a model reply into a gloss token sequence.
// The happy path is a JSON string array, optionally wrapped in markdown
// fences; anything else goes through a deterministic textual fallback so
// a sloppy reply still yields usable tokens instead of an error.
func ParseGlossReply(reply string) []string {
	content := strings.TrimSpace(reply)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var gloss []string
	if err := json.Unmarshal([]byte(content), &gloss); err == nil {
		return gloss
	}

	return fallbackGloss(content)
}

var glossStripper = strings.NewReplacer(
	"[", "", "]", "",
	"(", "", ")", "",
	"{", "", "}", "",
	`"`, "", "'", "",
)

// fallbackGloss strips list punctuation, splits on commas, uppercases and
// drops empty tokens.
func fallbackGloss(content string) []string {
	cleaned := glossStripper.Replace(content)
	parts := strings.Split(cleaned, ",")
	gloss := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.ToUpper(strings.TrimSpace(p))
		if token == "" {
			continue
		}
		gloss = append(gloss, token)
	}
	return gloss
}
