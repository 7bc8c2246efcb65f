package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// SaveItem creates a new library item: resolve the type, acquire its
// template, merge the caller's fields, persist. When exactly one attachment
// source is supplied the attachment runs immediately afterward against the
// fresh key; its failure never rolls the item back — the store has no
// multi-object transactions and the item is valid on its own.
func (s *Service) SaveItem(ctx context.Context, ref zotero.LibraryRef, in ItemInput) (*SaveResult, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("title is required")
	}

	canonical := ResolveItemType(in.Type)
	tpl, err := s.store.ItemTemplate(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("acquire template: %w", err)
	}

	item := mapFields(tpl, in)

	res, err := s.store.CreateItems(ctx, ref, []map[string]interface{}{item})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	key, ok := res.FirstKey()
	if !ok {
		if f := res.FirstFailure(); f != nil {
			return nil, fmt.Errorf("create item rejected (code %d): %s", f.Code, f.Message)
		}
		return nil, errors.New("create item: store returned no key")
	}

	out := &SaveResult{Key: key, ItemType: canonical}

	if in.PDFURL != "" || in.SnapshotURL != "" {
		attachIn := AttachmentInput{
			PDFURL:      in.PDFURL,
			SnapshotURL: in.SnapshotURL,
			Filename:    in.Filename,
		}
		outcome := s.Attach(ctx, ref, key, attachIn)
		out.Attachment = &outcome
	}

	return out, nil
}
