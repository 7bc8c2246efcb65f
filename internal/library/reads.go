package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// ItemView is the projection of an item returned by reads and searches.
type ItemView struct {
	Key      string
	Version  int
	Type     string
	Title    string
	Date     string
	URL      string
	Abstract string
	Tags     []string
}

func viewOf(item *zotero.Item) ItemView {
	v := ItemView{
		Key:      item.Key,
		Version:  item.Version,
		Type:     item.Data.ItemType,
		Title:    item.Data.Title,
		Date:     item.Data.Date,
		URL:      item.Data.URL,
		Abstract: item.Data.AbstractNote,
	}
	for _, t := range item.Data.Tags {
		v.Tags = append(v.Tags, t.Tag)
	}
	return v
}

// GetItem reads one item.
func (s *Service) GetItem(ctx context.Context, ref zotero.LibraryRef, key string) (*ItemView, error) {
	item, err := s.store.Item(ctx, ref, key)
	if err != nil {
		return nil, fmt.Errorf("read item %s: %w", key, err)
	}
	v := viewOf(item)
	return &v, nil
}

// Search runs a quick-search and projects the matching page.
func (s *Service) Search(ctx context.Context, ref zotero.LibraryRef, query, qmode string, limit int) ([]ItemView, int, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 25
	}
	items, total, err := s.store.SearchItems(ctx, ref, query, qmode, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}
	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, viewOf(&items[i]))
	}
	return views, total, nil
}

// CollectionView is the projection of a collection.
type CollectionView struct {
	Key       string
	Name      string
	ParentKey string
	NumItems  int
}

// ListCollections returns every collection in the library.
func (s *Service) ListCollections(ctx context.Context, ref zotero.LibraryRef) ([]CollectionView, error) {
	cols, err := s.store.Collections(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	views := make([]CollectionView, 0, len(cols))
	for _, c := range cols {
		views = append(views, CollectionView{
			Key:       c.Key,
			Name:      c.Data.Name,
			ParentKey: c.Data.ParentCollection,
			NumItems:  c.Meta.NumItems,
		})
	}
	return views, nil
}

// CreateCollection creates one collection. The name must be non-empty after
// trimming; that is validated here, before any remote call.
func (s *Service) CreateCollection(ctx context.Context, ref zotero.LibraryRef, name, parentKey string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("collection name must not be empty")
	}
	res, err := s.store.CreateCollections(ctx, ref, []zotero.NewCollection{
		{Name: name, ParentCollection: parentKey},
	})
	if err != nil {
		return "", fmt.Errorf("create collection: %w", err)
	}
	key, ok := res.FirstKey()
	if !ok {
		if f := res.FirstFailure(); f != nil {
			return "", fmt.Errorf("store rejected collection (code %d): %s", f.Code, f.Message)
		}
		return "", errors.New("store returned no collection key")
	}
	return key, nil
}

// ListTags returns up to limit tags by descending usage.
func (s *Service) ListTags(ctx context.Context, ref zotero.LibraryRef, limit int) ([]TagUsage, error) {
	if limit <= 0 {
		limit = DefaultTopTags
	}
	tags, err := s.store.Tags(ctx, ref, limit)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := make([]TagUsage, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagUsage{Name: t.Tag, Count: t.Meta.NumItems})
	}
	return out, nil
}
