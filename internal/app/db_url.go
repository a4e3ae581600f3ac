package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the deploy
// target's pooler cannot handle binary result sets. An explicit value already
// present in the URL wins.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Has("disable_prepared_binary_result") {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL extracts the database name for startup logging. It understands
// both URL-style DSNs and key=value DSNs; unknown shapes yield "".
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}

	for _, token := range strings.Fields(raw) {
		key, value, found := strings.Cut(token, "=")
		if !found || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"'`); name != "" {
			return name
		}
	}
	return ""
}
