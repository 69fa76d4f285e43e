package narrative

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	codeBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	jsonBlobRe  = regexp.MustCompile(`(\{[\s\S]*\}|\[[\s\S]*\])`)
)

// extractJSON pulls a JSON value out of model output. Three tiers: the whole
// text, a fenced code block, then the first object or array in the text.
func extractJSON(text string, v any) bool {
	text = strings.TrimSpace(text)

	if json.Unmarshal([]byte(text), v) == nil {
		return true
	}

	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		if json.Unmarshal([]byte(strings.TrimSpace(m[1])), v) == nil {
			return true
		}
	}

	if m := jsonBlobRe.FindStringSubmatch(text); m != nil {
		if json.Unmarshal([]byte(m[1]), v) == nil {
			return true
		}
	}

	return false
}
