package zotero

import (
	"context"
	"net/url"
	"strconv"
)

// Search query modes understood by the store.
const (
	QModeTitleCreatorYear = "titleCreatorYear"
	QModeEverything       = "everything"
)

// SearchItems runs a quick-search over the library and returns the matching
// page plus the total match count.
func (c *Client) SearchItems(ctx context.Context, ref LibraryRef, query, qmode string, limit int) ([]Item, int, error) {
	if qmode == "" {
		qmode = QModeTitleCreatorYear
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("qmode", qmode)
	q.Set("limit", strconv.Itoa(limit))

	var items []Item
	u := c.url(ref.prefix(), "items") + "?" + q.Encode()
	total, err := c.getList(ctx, u, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
