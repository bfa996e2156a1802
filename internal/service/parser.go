package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/wanderplan/backend/internal/domain"
)

var (
	fenceMarkerRE   = regexp.MustCompile("(?i)```(?:json)?")
	trailingCommaRE = regexp.MustCompile(`,\s*([}\]])`)
)

// ResponseParser extracts a JSON object from raw generation text, tolerating
// surrounding prose, markdown fences, and trailing commas. Anything else,
// such as a missing closing brace, is a hard failure.
type ResponseParser struct{}

// NewResponseParser creates a new parser.
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// Parse attempts a direct parse of the trimmed text first, then a cleaned
// parse. The first success wins; if both fail, a MalformedResponseError with
// a truncated excerpt is returned. Retrying generation is the caller's call.
func (p *ResponseParser) Parse(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)

	var direct map[string]any
	if err := json.Unmarshal([]byte(trimmed), &direct); err == nil {
		return direct, nil
	}

	cleaned := fenceMarkerRE.ReplaceAllString(trimmed, "")
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = trailingCommaRE.ReplaceAllString(cleaned[start:end+1], "$1")

		var recovered map[string]any
		if err := json.Unmarshal([]byte(cleaned), &recovered); err == nil {
			return recovered, nil
		}
	}

	return nil, domain.NewMalformedResponseError(raw)
}
