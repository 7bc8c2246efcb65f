package zotero

import (
	"context"
	"net/url"
	"strconv"
)

// TagCount is one entry of the library's tag list with its usage count.
type TagCount struct {
	Tag  string `json:"tag"`
	Meta struct {
		NumItems int `json:"numItems"`
	} `json:"meta"`
}

// Tags returns up to limit tags ordered by usage count, descending. Ties keep
// the store's native ordering — no local tie-break is imposed.
func (c *Client) Tags(ctx context.Context, ref LibraryRef, limit int) ([]TagCount, error) {
	q := url.Values{}
	q.Set("sort", "numItems")
	q.Set("direction", "desc")
	q.Set("limit", strconv.Itoa(limit))

	var tags []TagCount
	u := c.url(ref.prefix(), "tags") + "?" + q.Encode()
	if _, err := c.getList(ctx, u, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
