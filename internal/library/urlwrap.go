package library

import (
	"net/url"
	"strings"
)

// wrapperSignatures are case-insensitive path fragments typical of
// viewer/proxy pages that embed the real resource URL in a query parameter.
var wrapperSignatures = []string{
	"pdfrenderer",
	"pdfviewer",
	"screenshot",
	"proxy.php",
	"redirect.php",
}

// wrapperParams are the query parameters checked for an embedded URL,
// in priority order.
var wrapperParams = []string{"url", "source", "target", "uri", "link", "src"}

// UnwrapURL extracts the underlying resource URL from a wrapper/proxy/render
// URL. Fetching such a wrapper directly yields a viewer shell instead of the
// document, so the embedded URL must be pulled out before fetching.
//
// The inner URL is accepted when the wrapper's path carries a known viewer
// signature, or — lacking a signature — when the path has at least two
// non-empty segments. A short bare path plus a full URL parameter is far more
// likely a redirect wrapper than a content page with a coincidental
// URL-valued parameter. False negatives are acceptable here; unwrapping a URL
// that was not wrapped is the failure mode to avoid.
//
// Unparseable input is returned unchanged; this function never fails.
func UnwrapURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	pathLower := strings.ToLower(u.Path)
	signature := false
	for _, sig := range wrapperSignatures {
		if strings.Contains(pathLower, sig) {
			signature = true
			break
		}
	}

	segments := 0
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segments++
		}
	}

	query := u.Query()
	for _, param := range wrapperParams {
		candidate := query.Get(param) // percent-decoded by Query
		if candidate == "" {
			continue
		}
		inner, err := url.Parse(candidate)
		if err != nil || inner.Host == "" {
			continue
		}
		if inner.Scheme != "http" && inner.Scheme != "https" {
			continue
		}
		if signature || segments >= 2 {
			return candidate
		}
	}
	return raw
}
