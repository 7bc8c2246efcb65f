package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://api.zotero.org"
	apiVersion     = "3"

	// Metadata calls are small; binary transfers need more time.
	metadataTimeout = 30 * time.Second
	transferTimeout = 2 * time.Minute
)

// LibraryKind distinguishes personal and shared libraries.
type LibraryKind string

const (
	LibraryUser  LibraryKind = "user"
	LibraryGroup LibraryKind = "group"
)

// LibraryRef identifies the library an operation targets. It is supplied by
// the caller per operation; the client holds no library state of its own.
type LibraryRef struct {
	ID   string
	Kind LibraryKind
}

func (r LibraryRef) prefix() string {
	if r.Kind == LibraryGroup {
		return "groups/" + r.ID
	}
	return "users/" + r.ID
}

// Client is an authenticated Zotero Web API v3 client.
type Client struct {
	key     string
	apiBase string
	http    *http.Client
	uploads *http.Client
}

// New creates a Client with the given API key and base URL.
// If apiBase is empty, the public Zotero API is used.
func New(key, apiBase string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	apiBase = strings.TrimRight(apiBase, "/")

	return &Client{
		key:     key,
		apiBase: apiBase,
		http:    &http.Client{Timeout: metadataTimeout},
		uploads: &http.Client{Timeout: transferTimeout},
	}
}

// do executes the request with standard Zotero headers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Zotero-API-Version", apiVersion)
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// doJSON sends a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, url string, headers map[string]string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// getList fetches a JSON array endpoint and returns the Total-Results count
// alongside the decoded page.
func (c *Client) getList(ctx context.Context, url string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return 0, err
	}
	total := -1
	if tr := resp.Header.Get("Total-Results"); tr != "" {
		if n, err := strconv.Atoi(tr); err == nil {
			total = n
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, err
	}
	return total, nil
}

func jsonDecode(r io.Reader, out interface{}) error {
	return json.NewDecoder(r).Decode(out)
}

// url builds an API URL from path segments.
func (c *Client) url(parts ...string) string {
	return c.apiBase + "/" + strings.Join(parts, "/")
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusPreconditionFailed:
		return ErrConflict
	default:
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}
