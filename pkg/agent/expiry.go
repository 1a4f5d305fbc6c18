package agent

import (
	"fmt"
	"strings"
	"time"
)

// ExpiryError is returned when an expiry timestamp cannot be parsed.
type ExpiryError struct {
	Value string
}

// Error implements the error interface.
func (e *ExpiryError) Error() string {
	return fmt.Sprintf("invalid expiry %q: expected an ISO-8601 timestamp such as 2025-12-31T23:59:59Z", e.Value)
}

// Layouts without a zone designator are read as UTC.
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseExpiry parses an ISO-8601 timestamp and returns it in UTC.
func ParseExpiry(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ExpiryError{Value: value}
}

// ParseScopes splits a comma-separated scope list, trimming entries and
// dropping empty ones.
func ParseScopes(csv string) []string {
	scopes := []string{}
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
