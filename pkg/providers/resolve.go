package providers

import (
	"net/url"
	"strings"
)

// ResolveLink resolves href against base following RFC 3986 reference resolution.
// Absolute, protocol-relative, path-absolute and path-relative references are all
// supported. ok is false when href cannot be parsed or no absolute URL results.
func ResolveLink(base, href string) (string, bool) {
	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		baseURL = nil
	}
	return resolveAgainst(baseURL, href)
}

func resolveAgainst(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if ref.IsAbs() {
		if base != nil {
			return base.ResolveReference(ref).String(), true
		}
		return ref.String(), true
	}
	if base == nil || !base.IsAbs() {
		return "", false
	}

	return base.ResolveReference(ref).String(), true
}
