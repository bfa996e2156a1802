package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/backend/internal/domain"
)

func TestParse_DirectJSON(t *testing.T) {
	got, err := NewResponseParser().Parse(`{"a": 1, "b": ["x", "y"]}`)
	require.NoError(t, err)

	// A clean payload must round-trip without information loss.
	assert.Equal(t, map[string]any{
		"a": float64(1),
		"b": []any{"x", "y"},
	}, got)
}

func TestParse_FencedWithProse(t *testing.T) {
	raw := "Sure! Here's your plan:\n```json\n{\"summary\": {\"title\": \"Weekend in Paris\"}}\n```\nEnjoy your trip!"

	got, err := NewResponseParser().Parse(raw)
	require.NoError(t, err)

	summary, ok := got["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Weekend in Paris", summary["title"])
}

func TestParse_TrailingCommas(t *testing.T) {
	raw := "```json\n{\"highlights\": [\"Louvre\", \"Seine\",], \"tips\": {\"transportation\": \"metro\",},}\n```"

	got, err := NewResponseParser().Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, []any{"Louvre", "Seine"}, got["highlights"])
}

func TestParse_NoJSONAtAll(t *testing.T) {
	_, err := NewResponseParser().Parse("I'm sorry, I can't help with that.")

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParse_MissingClosingBrace(t *testing.T) {
	_, err := NewResponseParser().Parse(`{"summary": {"title": "cut off`)

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParse_ExcerptIsBounded(t *testing.T) {
	raw := "garbage " + strings.Repeat("x", 1000)

	_, err := NewResponseParser().Parse(raw)

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Len(t, malformed.Excerpt, 200)
	assert.True(t, strings.HasPrefix(raw, malformed.Excerpt))
}
