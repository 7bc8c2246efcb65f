package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ItemTag is the tag shape carried inside item data.
type ItemTag struct {
	Tag string `json:"tag"`
}

// ItemData is the mutable field set of a library item. Freeform fields that
// this client never touches survive round-trips untouched because writes go
// through PATCH with only the changed keys.
type ItemData struct {
	Key          string    `json:"key,omitempty"`
	Version      int       `json:"version,omitempty"`
	ItemType     string    `json:"itemType"`
	Title        string    `json:"title,omitempty"`
	Date         string    `json:"date,omitempty"`
	URL          string    `json:"url,omitempty"`
	AbstractNote string    `json:"abstractNote,omitempty"`
	Extra        string    `json:"extra,omitempty"`
	LinkMode     string    `json:"linkMode,omitempty"`
	ContentType  string    `json:"contentType,omitempty"`
	Filename     string    `json:"filename,omitempty"`
	ParentItem   string    `json:"parentItem,omitempty"`
	Tags         []ItemTag `json:"tags,omitempty"`
	Collections  []string  `json:"collections,omitempty"`
	DateAdded    string    `json:"dateAdded,omitempty"`
	DateModified string    `json:"dateModified,omitempty"`
}

// Item is a library item as returned by the API. Key and Version are
// assigned by the store and opaque to this client.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Data    ItemData `json:"data"`
}

// WriteFailure is one failed entry of a multi-object write.
type WriteFailure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteResult is the multi-status response of a multi-object write.
// Entries are keyed by the zero-based submission index as a string.
type WriteResult struct {
	Success map[string]string       `json:"success"`
	Failed  map[string]WriteFailure `json:"failed"`
}

// FirstKey returns the store-assigned key of the first submitted object.
func (r *WriteResult) FirstKey() (string, bool) {
	key, ok := r.Success["0"]
	return key, ok && key != ""
}

// FirstFailure returns the failure of the first submitted object, or nil.
func (r *WriteResult) FirstFailure() *WriteFailure {
	if f, ok := r.Failed["0"]; ok {
		return &f
	}
	return nil
}

// Item fetches a single item, including its current version. Callers that
// intend to patch must use the version from this read, immediately.
func (c *Client) Item(ctx context.Context, ref LibraryRef, key string) (*Item, error) {
	var item Item
	u := c.url(ref.prefix(), "items", key)
	if err := c.doJSON(ctx, http.MethodGet, u, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemChildren returns the item's child items (attachments and notes),
// in the store's native order.
func (c *Client) ItemChildren(ctx context.Context, ref LibraryRef, key string) ([]Item, error) {
	var items []Item
	u := c.url(ref.prefix(), "items", key, "children")
	if _, err := c.getList(ctx, u, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// TopItems returns up to limit top-level items sorted by modification time
// (newest first) and the library's total top-level item count taken from the
// Total-Results header.
func (c *Client) TopItems(ctx context.Context, ref LibraryRef, limit int) ([]Item, int, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "dateModified")
	q.Set("direction", "desc")
	var items []Item
	u := c.url(ref.prefix(), "items", "top") + "?" + q.Encode()
	total, err := c.getList(ctx, u, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CreateItems persists new items in one multi-object write. A fresh
// Zotero-Write-Token makes an accidental duplicate submission a no-op on the
// store side.
func (c *Client) CreateItems(ctx context.Context, ref LibraryRef, items []map[string]interface{}) (*WriteResult, error) {
	headers := map[string]string{
		"Zotero-Write-Token": writeToken(),
	}
	var res WriteResult
	u := c.url(ref.prefix(), "items")
	if err := c.doJSON(ctx, http.MethodPost, u, headers, items, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PatchItem applies a partial update conditioned on version. A stale version
// yields ErrConflict; the store is the arbiter, there is no local retry.
// Returns the item's new version on success.
func (c *Client) PatchItem(ctx context.Context, ref LibraryRef, key string, version int, data map[string]interface{}) (int, error) {
	headers := map[string]string{
		"If-Unmodified-Since-Version": strconv.Itoa(version),
	}
	body, err := json.Marshal(data)
	if err != nil {
		return 0, err
	}
	u := c.url(ref.prefix(), "items", key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return 0, err
	}
	newVersion := version
	if lmv := resp.Header.Get("Last-Modified-Version"); lmv != "" {
		if n, err := strconv.Atoi(lmv); err == nil {
			newVersion = n
		}
	}
	return newVersion, nil
}

func writeToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
