package services

import (
	"net/url"
	"strings"
)

// searchURLBase is where free-text web searches are sent.
const searchURLBase = "https://www.google.com/search?q="

// BuildSearchURL percent-encodes a free-text query into a search URL.
func BuildSearchURL(query string) string {
	return searchURLBase + url.QueryEscape(query)
}

// NormalizeURL prefixes https:// when the text carries no scheme. It does
// not validate beyond that; the desktop handler decides what to do with a
// malformed address.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
