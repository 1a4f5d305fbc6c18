package codec

import (
	"net/url"
	"strings"
)

// ParseQuery splits a URI query string into key/value pairs.
//
// Pairs are separated by '&' and split on their first '='. Keys and values are
// percent-decoded; '+' is kept literally rather than read as a space. A pair
// without '=' maps to the empty string, and a later duplicate key replaces an
// earlier one. Keys are case-sensitive.
func ParseQuery(query string) (map[string]string, error) {
	params := make(map[string]string)
	query = strings.TrimPrefix(query, "?")
	if query == "" {
		return params, nil
	}

	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(part, "=")

		key, err := url.PathUnescape(rawKey)
		if err != nil {
			return nil, newDecodeError(rawKey, err.Error())
		}
		value, err := url.PathUnescape(rawValue)
		if err != nil {
			return nil, newDecodeError(rawValue, err.Error())
		}
		params[key] = value
	}

	return params, nil
}
