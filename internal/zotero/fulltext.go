package zotero

import (
	"context"
	"net/http"
)

// Fulltext is the indexed text of an attachment. The extent pair reports how
// much of the source the indexer has processed (pages for PDFs, characters
// for text-like content).
type Fulltext struct {
	Content      string `json:"content"`
	IndexedPages int    `json:"indexedPages,omitempty"`
	TotalPages   int    `json:"totalPages,omitempty"`
	IndexedChars int    `json:"indexedChars,omitempty"`
	TotalChars   int    `json:"totalChars,omitempty"`
}

// ItemFulltext fetches the extracted text for an attachment item.
// ErrNotFound means the attachment has not been indexed yet — indexing runs
// asynchronously on the store side.
func (c *Client) ItemFulltext(ctx context.Context, ref LibraryRef, key string) (*Fulltext, error) {
	var ft Fulltext
	u := c.url(ref.prefix(), "items", key, "fulltext")
	if err := c.doJSON(ctx, http.MethodGet, u, nil, nil, &ft); err != nil {
		return nil, err
	}
	return &ft, nil
}
