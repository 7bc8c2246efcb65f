package library

import (
	"context"
	"fmt"
	"html"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	fetchTimeout    = 60 * time.Second
	maxSnapshotName = 80
)

// Fetcher retrieves attachment payloads from source URLs. It is separate from
// the store client — sources are arbitrary web hosts, not the API.
type Fetcher struct {
	http *http.Client
}

// NewFetcher returns a Fetcher with the standard source-fetch timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{http: &http.Client{Timeout: fetchTimeout}}
}

// FetchedFile is a downloaded payload ready for upload.
type FetchedFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// FetchPDF downloads a PDF from rawURL (unwrapping viewer/proxy URLs first).
// The filename comes from explicitName, else the Content-Disposition header,
// else the URL's last path segment, forced to a .pdf suffix.
func (f *Fetcher) FetchPDF(ctx context.Context, rawURL, explicitName string) (*FetchedFile, error) {
	target := UnwrapURL(rawURL)
	data, resp, err := f.get(ctx, target)
	if err != nil {
		return nil, err
	}

	name := explicitName
	if name == "" {
		name = dispositionFilename(resp)
	}
	if name == "" {
		name = lastPathSegment(target)
	}
	if name == "" {
		name = "document"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}

	return &FetchedFile{Data: data, Filename: name, ContentType: "application/pdf"}, nil
}

// FetchSnapshot downloads an HTML page from rawURL (unwrapping first). The
// filename is derived from the page's <title>, falling back to the URL,
// sanitized to a conservative character set, truncated, and suffixed .html.
func (f *Fetcher) FetchSnapshot(ctx context.Context, rawURL string) (*FetchedFile, error) {
	target := UnwrapURL(rawURL)
	data, _, err := f.get(ctx, target)
	if err != nil {
		return nil, err
	}

	name := pageTitle(data)
	if name == "" {
		name = target
	}
	name = sanitizeFilename(name)
	if name == "" {
		name = "snapshot"
	}
	name += ".html"

	return &FetchedFile{Data: data, Filename: name, ContentType: "text/html"}, nil
}

// get performs a single bounded GET. Failures are not retried; the upstream
// status is preserved for the caller.
func (f *Fetcher) get(ctx context.Context, target string) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid source URL %q: %w", target, err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, nil, fmt.Errorf("fetching %s: status %d: %s",
			target, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return data, resp, nil
}

func dispositionFilename(resp *http.Response) string {
	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func lastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

func pageTitle(page []byte) string {
	m := titleRe.FindSubmatch(page)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(string(m[1])))
}

// sanitizeFilename keeps letters, digits, dash and underscore, turning runs
// of anything else into single underscores, bounded in length.
func sanitizeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
		if b.Len() >= maxSnapshotName {
			break
		}
	}
	return strings.Trim(b.String(), "_")
}
