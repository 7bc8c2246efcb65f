package zotero

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const collectionPageSize = 100

// CollectionData is the mutable field set of a collection.
type CollectionData struct {
	Name             string `json:"name"`
	ParentCollection string `json:"parentCollection,omitempty"`
}

// Collection is a library collection. Collections form a tree by parent key;
// the store owns the structure and this client never walks parent chains.
type Collection struct {
	Key     string         `json:"key"`
	Version int            `json:"version"`
	Data    CollectionData `json:"data"`
	Meta    struct {
		NumItems int `json:"numItems"`
	} `json:"meta"`
}

// NewCollection is the creation payload for a collection.
type NewCollection struct {
	Name             string `json:"name"`
	ParentCollection string `json:"parentCollection,omitempty"`
}

// Collections returns every collection in the library, paging through the
// store's bounded result windows.
func (c *Client) Collections(ctx context.Context, ref LibraryRef) ([]Collection, error) {
	var all []Collection
	start := 0
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(collectionPageSize))
		q.Set("start", strconv.Itoa(start))
		u := c.url(ref.prefix(), "collections") + "?" + q.Encode()

		var page []Collection
		total, err := c.getList(ctx, u, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		start += len(page)
		if len(page) == 0 || (total >= 0 && start >= total) {
			return all, nil
		}
	}
}

// CreateCollections creates collections in one multi-object write.
func (c *Client) CreateCollections(ctx context.Context, ref LibraryRef, cols []NewCollection) (*WriteResult, error) {
	headers := map[string]string{
		"Zotero-Write-Token": writeToken(),
	}
	var res WriteResult
	u := c.url(ref.prefix(), "collections")
	if err := c.doJSON(ctx, http.MethodPost, u, headers, cols, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
