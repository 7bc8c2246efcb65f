package library

import (
	"context"
	"fmt"
	"sync"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// DefaultTopTags bounds the tag list in a stats summary.
const DefaultTopTags = 10

// Stats fans out three independent read queries concurrently — most-recent
// item probe with count metadata, full collection list, bounded tag list —
// and combines them. Any single failure fails the whole aggregation: a
// summary with silently missing sections is worse than an explicit error.
func (s *Service) Stats(ctx context.Context, ref zotero.LibraryRef, topTags int) (*Stats, error) {
	if topTags <= 0 {
		topTags = DefaultTopTags
	}

	var (
		wg sync.WaitGroup

		recent      []zotero.Item
		total       int
		collections []zotero.Collection
		tags        []zotero.TagCount

		itemsErr, colsErr, tagsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		recent, total, itemsErr = s.store.TopItems(ctx, ref, 1)
	}()
	go func() {
		defer wg.Done()
		collections, colsErr = s.store.Collections(ctx, ref)
	}()
	go func() {
		defer wg.Done()
		tags, tagsErr = s.store.Tags(ctx, ref, topTags)
	}()
	wg.Wait()

	switch {
	case itemsErr != nil:
		return nil, fmt.Errorf("count items: %w", itemsErr)
	case colsErr != nil:
		return nil, fmt.Errorf("list collections: %w", colsErr)
	case tagsErr != nil:
		return nil, fmt.Errorf("list tags: %w", tagsErr)
	}

	out := &Stats{
		TotalItems:      total,
		CollectionCount: len(collections),
		Collections:     make([]string, 0, len(collections)),
		TopTags:         make([]TagUsage, 0, len(tags)),
	}
	for _, c := range collections {
		out.Collections = append(out.Collections, c.Data.Name)
	}
	for _, t := range tags {
		out.TopTags = append(out.TopTags, TagUsage{Name: t.Tag, Count: t.Meta.NumItems})
	}
	if len(recent) > 0 {
		out.MostRecent = &RecentItem{
			Key:   recent[0].Key,
			Title: recent[0].Data.Title,
			Date:  recent[0].Data.Date,
		}
	}
	return out, nil
}
