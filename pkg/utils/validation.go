package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL trims and validates a URL string, returning a normalized value
// or an error if the URL is empty, not http(s), or missing a host.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid URL: scheme must be http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL: missing host")
	}
	return s, nil
}

// LooksLikeEbayStore reports whether a pasted URL is complete enough to be
// an eBay store link, which is when the supplier question is asked.
func LooksLikeEbayStore(raw string) bool {
	s := strings.TrimSpace(raw)
	return strings.Contains(strings.ToLower(s), "ebay.com") && len(s) > 20
}

// TruncateText shortens text to maxLen runes, adding an ellipsis.
func TruncateText(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
