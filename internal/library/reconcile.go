package library

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// UpdateInput carries replace/add/remove semantics over an existing item.
// Scalar fields overwrite when non-empty. For tags and collections a non-nil
// replacement list wins outright and short-circuits the add/remove sets;
// otherwise adds are unioned and removes subtracted against the current set.
type UpdateInput struct {
	Title    string
	Date     string
	Abstract string
	Extra    string

	Tags       []string
	AddTags    []string
	RemoveTags []string

	Collections       []string
	AddCollections    []string
	RemoveCollections []string
}

// UpdateItem computes a minimal patch from in against the item's current
// state and applies it under optimistic concurrency. The version is read
// immediately before the patch; a mismatch at apply time surfaces as
// zotero.ErrConflict rather than a silent re-read-and-retry, which could
// overwrite a concurrent change.
func (s *Service) UpdateItem(ctx context.Context, ref zotero.LibraryRef, key string, in UpdateInput) (*UpdateResult, error) {
	current, err := s.store.Item(ctx, ref, key)
	if err != nil {
		return nil, fmt.Errorf("read item %s: %w", key, err)
	}

	patch := map[string]interface{}{}
	var changed []string

	scalars := []struct {
		field string
		value string
	}{
		{"title", in.Title},
		{"date", in.Date},
		{"abstractNote", in.Abstract},
		{"extra", in.Extra},
	}
	for _, sc := range scalars {
		if sc.value != "" {
			patch[sc.field] = sc.value
			changed = append(changed, sc.field)
		}
	}

	if tags, ok := reconcileTags(current.Data.Tags, in.Tags, in.AddTags, in.RemoveTags); ok {
		patch["tags"] = tags
		changed = append(changed, "tags")
	}

	currentCols := current.Data.Collections
	if cols, ok := reconcileSet(currentCols, in.Collections, in.AddCollections, in.RemoveCollections); ok {
		patch["collections"] = cols
		changed = append(changed, "collections")
	}

	if len(patch) == 0 {
		return &UpdateResult{Key: key, Version: current.Version}, nil
	}

	version, err := s.store.PatchItem(ctx, ref, key, current.Version, patch)
	if err != nil {
		return nil, fmt.Errorf("patch item %s: %w", key, err)
	}
	return &UpdateResult{Key: key, Version: version, Changed: changed}, nil
}

// reconcileTags applies replacement or add/remove semantics over the item's
// current tag set and reports whether a patch entry is needed.
func reconcileTags(current []zotero.ItemTag, replace, add, remove []string) ([]map[string]interface{}, bool) {
	names := make([]string, 0, len(current))
	for _, t := range current {
		names = append(names, t.Tag)
	}
	next, ok := reconcileSet(names, replace, add, remove)
	if !ok {
		return nil, false
	}
	tags := make([]map[string]interface{}, 0, len(next))
	for _, n := range next {
		tags = append(tags, map[string]interface{}{"tag": n})
	}
	return tags, true
}

// reconcileSet computes the next membership set. A non-nil replace list wins
// outright. Otherwise adds and removes are applied idempotently: adding a
// present member or removing an absent one is a no-op, never an error.
// Relative order of surviving members is preserved.
func reconcileSet(current, replace, add, remove []string) ([]string, bool) {
	if replace != nil {
		return append([]string{}, replace...), true
	}
	if len(add) == 0 && len(remove) == 0 {
		return nil, false
	}

	next := make([]string, 0, len(current)+len(add))
	seen := make(map[string]bool, len(current)+len(add))
	for _, m := range current {
		if !seen[m] {
			next = append(next, m)
			seen[m] = true
		}
	}
	for _, m := range add {
		if !seen[m] {
			next = append(next, m)
			seen[m] = true
		}
	}
	if len(remove) > 0 {
		drop := make(map[string]bool, len(remove))
		for _, m := range remove {
			drop[m] = true
		}
		kept := next[:0]
		for _, m := range next {
			if !drop[m] {
				kept = append(kept, m)
			}
		}
		next = kept
	}
	return next, true
}
