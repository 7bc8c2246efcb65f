package library_test

import (
	"context"
	"errors"
	"testing"

	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/testutil"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// statefulStore simulates the remote store's versioning across a
// save-then-update flow: the item's tags and version persist between calls
// and stale patches are rejected.
func statefulStore(t *testing.T) (*testutil.MockStore, *zotero.Item) {
	t.Helper()
	item := &zotero.Item{}
	return &testutil.MockStore{
		ItemTemplateFunc: func(ctx context.Context, itemType string) (map[string]interface{}, error) {
			return map[string]interface{}{"itemType": itemType, "title": "", "date": ""}, nil
		},
		CreateItemsFunc: func(ctx context.Context, ref zotero.LibraryRef, items []map[string]interface{}) (*zotero.WriteResult, error) {
			item.Key = "ITEM0001"
			item.Version = 1
			item.Data.ItemType, _ = items[0]["itemType"].(string)
			item.Data.Title, _ = items[0]["title"].(string)
			if tags, ok := items[0]["tags"].([]map[string]interface{}); ok {
				item.Data.Tags = nil
				for _, tag := range tags {
					name, _ := tag["tag"].(string)
					item.Data.Tags = append(item.Data.Tags, zotero.ItemTag{Tag: name})
				}
			}
			return &zotero.WriteResult{Success: map[string]string{"0": item.Key}}, nil
		},
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			if item.Key == "" {
				return nil, zotero.ErrNotFound
			}
			copied := *item
			return &copied, nil
		},
		PatchItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error) {
			if version != item.Version {
				return 0, zotero.ErrConflict
			}
			if tags, ok := data["tags"].([]map[string]interface{}); ok {
				item.Data.Tags = nil
				for _, tag := range tags {
					name, _ := tag["tag"].(string)
					item.Data.Tags = append(item.Data.Tags, zotero.ItemTag{Tag: name})
				}
			}
			item.Version++
			return item.Version, nil
		},
	}, item
}

func TestSaveThenReconcileTags(t *testing.T) {
	store, item := statefulStore(t)
	svc := library.NewService(store)
	ctx := context.Background()

	res, err := svc.SaveItem(ctx, testRef, library.ItemInput{
		Type:  "article",
		Title: "A Study",
		Tags:  []string{"x"},
	})
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	upd, err := svc.UpdateItem(ctx, testRef, res.Key, library.UpdateInput{
		AddTags:    []string{"y"},
		RemoveTags: []string{"x"},
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if upd.Version != 2 {
		t.Errorf("version = %d, want 2", upd.Version)
	}
	if len(item.Data.Tags) != 1 || item.Data.Tags[0].Tag != "y" {
		t.Errorf("stored tags = %v, want exactly [y]", item.Data.Tags)
	}

	// Re-running the same adjustment must leave the set unchanged.
	if _, err := svc.UpdateItem(ctx, testRef, res.Key, library.UpdateInput{
		AddTags:    []string{"y"},
		RemoveTags: []string{"x"},
	}); err != nil {
		t.Fatalf("UpdateItem (repeat): %v", err)
	}
	if len(item.Data.Tags) != 1 || item.Data.Tags[0].Tag != "y" {
		t.Errorf("stored tags after repeat = %v, want exactly [y]", item.Data.Tags)
	}
}

func TestStaleVersionIsConflictNotNetworkFailure(t *testing.T) {
	store, item := statefulStore(t)
	svc := library.NewService(store)
	ctx := context.Background()

	if _, err := svc.SaveItem(ctx, testRef, library.ItemInput{Type: "article", Title: "T"}); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	// A concurrent writer bumps the version between our read and our patch.
	readThenBump := store.ItemFunc
	store.ItemFunc = func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
		it, err := readThenBump(ctx, ref, key)
		item.Version++
		return it, err
	}

	_, err := svc.UpdateItem(ctx, testRef, "ITEM0001", library.UpdateInput{Title: "New"})
	if !errors.Is(err, zotero.ErrConflict) {
		t.Fatalf("err = %v, want a version conflict", err)
	}
}
