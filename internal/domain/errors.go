package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrLocationNotFound means geocoding returned zero matches for the
// destination. Not retryable with the same input.
var ErrLocationNotFound = errors.New("destination not recognized")

// ErrTripNotFound means no persisted trip exists for the given id.
var ErrTripNotFound = errors.New("trip not found")

// ErrShareNotFound means a share token is unknown or expired.
var ErrShareNotFound = errors.New("share link not found")

// ProviderError reports a failed call to an external provider: a non-success
// HTTP status, a transport failure, or a timeout. Transient from the caller's
// perspective; the pipeline never retries internally.
type ProviderError struct {
	Op         string // "geocode", "forecast", "current" or "generation"
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: provider request failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// responseExcerptLimit bounds the diagnostic excerpt carried by a
// MalformedResponseError so error payloads stay small.
const responseExcerptLimit = 200

// MalformedResponseError means the generation output could not be coerced
// into JSON by any parse strategy. Excerpt is a truncated prefix of the raw
// text, never the full payload.
type MalformedResponseError struct {
	Excerpt string
}

// NewMalformedResponseError builds the error from raw generation text,
// truncating the diagnostic excerpt on a rune boundary so it stays valid
// UTF-8.
func NewMalformedResponseError(raw string) *MalformedResponseError {
	if len(raw) > responseExcerptLimit {
		cut := responseExcerptLimit
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut]
	}
	return &MalformedResponseError{Excerpt: raw}
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generation response: %q", e.Excerpt)
}

// SchemaViolationError means parsed generation output failed the itinerary's
// structural contract. ExpectedDays/ActualDays are set for day-count
// mismatches; Day (1-based) names the offending day for per-day failures.
type SchemaViolationError struct {
	Reason       string
	ExpectedDays int
	ActualDays   int
	Day          int
}

func (e *SchemaViolationError) Error() string {
	switch {
	case e.ExpectedDays != 0 || e.ActualDays != 0:
		return fmt.Sprintf("schema violation: %s (expected %d days, got %d)", e.Reason, e.ExpectedDays, e.ActualDays)
	case e.Day != 0:
		return fmt.Sprintf("schema violation on day %d: %s", e.Day, e.Reason)
	default:
		return fmt.Sprintf("schema violation: %s", e.Reason)
	}
}
