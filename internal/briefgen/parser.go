package briefgen

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
)

// SummaryFallback is substituted when a parsed chat reply is missing the mandatory
// summaryOfChanges field. The reply may still be useful, so the turn proceeds.
const SummaryFallback = "Assistant updated the brief (summary missing)."

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSONObject recovers a JSON object from a model's free-text reply. A fenced
// block explicitly tagged as JSON wins over anything else; otherwise the span from the
// first '{' to the last '}' is taken. The second return value reports whether any
// candidate was found at all.
func ExtractJSONObject(text string) (string, bool) {
	if match := fencedJSON.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1]), true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// ParseBriefDelta extracts and parses a brief delta from an assistant reply.
//
// It fails with ErrNoJSONObject when the reply contains no JSON object and with
// ErrParse when a candidate was found but does not parse. Callers decide whether
// those are fatal; the chat loop treats both as plain conversation. A missing
// summaryOfChanges is replaced with SummaryFallback rather than failing the turn.
func ParseBriefDelta(text string) (*models.BriefDelta, error) {
	candidate, found := ExtractJSONObject(text)
	if !found {
		return nil, ErrNoJSONObject
	}

	var delta models.BriefDelta
	if err := json.Unmarshal([]byte(candidate), &delta); err != nil {
		return nil, errors.Wrap(ErrParse, "unmarshal brief delta")
	}

	if delta.SummaryOfChanges == "" {
		delta.SummaryOfChanges = SummaryFallback
	}
	return &delta, nil
}
