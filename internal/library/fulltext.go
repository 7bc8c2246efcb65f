package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// Fulltext resolves the best available extracted text for an item.
//
// A target that is itself an attachment is probed directly; "not indexed yet"
// is a valid terminal state with an actionable note, not an error, because
// indexing runs asynchronously on the store side. A parent item's child
// attachments are probed sequentially, PDF content types strictly before
// everything else (relative order preserved within each partition), returning
// on the first text found. Transport failures during a probe do not abort the
// remaining probes; an exhausted search with zero content and zero hard
// errors is success with absent content.
func (s *Service) Fulltext(ctx context.Context, ref zotero.LibraryRef, key string) (*FulltextResult, error) {
	item, err := s.store.Item(ctx, ref, key)
	if err != nil {
		return nil, fmt.Errorf("read item %s: %w", key, err)
	}

	if item.Data.ItemType == "attachment" {
		return s.attachmentFulltext(ctx, ref, item)
	}

	children, err := s.store.ItemChildren(ctx, ref, key)
	if err != nil {
		return nil, fmt.Errorf("list children of %s: %w", key, err)
	}

	attachments := make([]zotero.Item, 0, len(children))
	for _, c := range children {
		if c.Data.ItemType == "attachment" {
			attachments = append(attachments, c)
		}
	}
	if len(attachments) == 0 {
		return &FulltextResult{
			Note: "item has no attachments, so there is no text to extract",
		}, nil
	}

	// PDFs are the most likely source of rich indexed text; probe them first.
	var pdfs, others []zotero.Item
	for _, a := range attachments {
		if a.Data.ContentType == "application/pdf" {
			pdfs = append(pdfs, a)
		} else {
			others = append(others, a)
		}
	}

	for _, a := range append(pdfs, others...) {
		ft, err := s.store.ItemFulltext(ctx, ref, a.Key)
		if err != nil {
			// This source has no usable text; move on to the next one.
			continue
		}
		if ft.Content != "" {
			indexed, total := extents(ft)
			return &FulltextResult{
				Found:         true,
				Content:       ft.Content,
				SourceKey:     a.Key,
				IndexedExtent: indexed,
				TotalExtent:   total,
			}, nil
		}
	}

	return &FulltextResult{
		Note: "none of the item's attachments have been indexed yet — extraction runs asynchronously, try again later",
	}, nil
}

// attachmentFulltext probes a directly-targeted attachment. Non-404 failures
// keep their informative detail instead of collapsing into "not indexed".
func (s *Service) attachmentFulltext(ctx context.Context, ref zotero.LibraryRef, item *zotero.Item) (*FulltextResult, error) {
	ft, err := s.store.ItemFulltext(ctx, ref, item.Key)
	if err != nil {
		if errors.Is(err, zotero.ErrNotFound) {
			return &FulltextResult{
				SourceKey: item.Key,
				Note:      "attachment has not been indexed yet — extraction runs asynchronously, try again later",
			}, nil
		}
		return nil, fmt.Errorf("read fulltext of %s: %w", item.Key, err)
	}
	if ft.Content == "" {
		return &FulltextResult{
			SourceKey: item.Key,
			Note:      "attachment is indexed but produced no text",
		}, nil
	}
	indexed, total := extents(ft)
	return &FulltextResult{
		Found:         true,
		Content:       ft.Content,
		SourceKey:     item.Key,
		IndexedExtent: indexed,
		TotalExtent:   total,
	}, nil
}

func extents(ft *zotero.Fulltext) (indexed, total int) {
	if ft.TotalPages > 0 {
		return ft.IndexedPages, ft.TotalPages
	}
	return ft.IndexedChars, ft.TotalChars
}
