package zotero

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// ItemTemplate fetches the canonical empty field schema for an item type.
// The field set is type-dependent; a template must never be reused across
// item types. A rejection of the type name is surfaced as InvalidTypeError
// carrying the store's message.
func (c *Client) ItemTemplate(ctx context.Context, itemType string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("itemType", itemType)
	u := c.url("items", "new") + "?" + q.Encode()

	var tpl map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, u, nil, nil, &tpl); err != nil {
		// Only a client-side rejection means the type name is bad; a 5xx is
		// a transient store failure and must stay distinguishable.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return nil, &InvalidTypeError{Type: itemType, Message: apiErr.Body}
		}
		if errors.Is(err, ErrNotFound) {
			return nil, &InvalidTypeError{Type: itemType, Message: "not a valid item type"}
		}
		return nil, err
	}
	return tpl, nil
}

// AttachmentTemplate fetches the template for an imported-file attachment.
func (c *Client) AttachmentTemplate(ctx context.Context) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("itemType", "attachment")
	q.Set("linkMode", "imported_file")
	u := c.url("items", "new") + "?" + q.Encode()

	var tpl map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, u, nil, nil, &tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}
