package utils

import (
	"strings"

	"canteen/config"
)

// ResolveImageURL turns a stored image reference into something a browser can
// load. Absolute URLs, protocol-relative URLs and data URIs pass through
// unchanged; a path starting with "/" is joined to the public base URL as-is,
// anything else is assumed to be a bare upload filename.
func ResolveImageURL(raw string) string {
	return resolveImageAgainst(config.AppConfig.PublicBaseURL, raw)
}

func resolveImageAgainst(baseURL, raw string) string {
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(raw, "//") ||
		strings.HasPrefix(lower, "data:") {
		return raw
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if strings.HasPrefix(raw, "/") {
		return baseURL + raw
	}
	return baseURL + "/uploads/" + raw
}
