package library_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/testutil"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

var testRef = zotero.LibraryRef{ID: "12345", Kind: zotero.LibraryUser}

func storedItem(version int, tags ...string) *zotero.Item {
	item := &zotero.Item{
		Key:     "ITEM0001",
		Version: version,
		Data: zotero.ItemData{
			ItemType:    "journalArticle",
			Title:       "Old Title",
			Collections: []string{"COLLAAAA"},
		},
	}
	for _, tag := range tags {
		item.Data.Tags = append(item.Data.Tags, zotero.ItemTag{Tag: tag})
	}
	return item
}

func TestUpdateItem_TagAddRemove(t *testing.T) {
	var gotVersion int
	var gotPatch map[string]interface{}
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return storedItem(7, "x", "y"), nil
		},
		PatchItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error) {
			gotVersion = version
			gotPatch = data
			return 8, nil
		},
	}
	svc := library.NewService(store)

	res, err := svc.UpdateItem(context.Background(), testRef, "ITEM0001", library.UpdateInput{
		AddTags:    []string{"z"},
		RemoveTags: []string{"x"},
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if gotVersion != 7 {
		t.Errorf("patched with version %d, want the version just read (7)", gotVersion)
	}
	wantTags := []map[string]interface{}{{"tag": "y"}, {"tag": "z"}}
	if !reflect.DeepEqual(gotPatch["tags"], wantTags) {
		t.Errorf("patch tags = %v, want %v", gotPatch["tags"], wantTags)
	}
	if _, ok := gotPatch["title"]; ok {
		t.Errorf("patch carries title although none was given")
	}
	if res.Version != 8 {
		t.Errorf("result version = %d, want 8", res.Version)
	}
	if !reflect.DeepEqual(res.Changed, []string{"tags"}) {
		t.Errorf("changed = %v, want [tags]", res.Changed)
	}
}

func TestUpdateItem_ReplacementWinsOverAddRemove(t *testing.T) {
	var gotPatch map[string]interface{}
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return storedItem(3, "old"), nil
		},
		PatchItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error) {
			gotPatch = data
			return 4, nil
		},
	}
	svc := library.NewService(store)

	_, err := svc.UpdateItem(context.Background(), testRef, "ITEM0001", library.UpdateInput{
		Tags:       []string{"fresh"},
		AddTags:    []string{"ignored"},
		RemoveTags: []string{"fresh"},
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	wantTags := []map[string]interface{}{{"tag": "fresh"}}
	if !reflect.DeepEqual(gotPatch["tags"], wantTags) {
		t.Errorf("patch tags = %v, want replacement list only", gotPatch["tags"])
	}
}

func TestUpdateItem_ScalarsAndCollections(t *testing.T) {
	var gotPatch map[string]interface{}
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return storedItem(3), nil
		},
		PatchItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error) {
			gotPatch = data
			return 4, nil
		},
	}
	svc := library.NewService(store)

	res, err := svc.UpdateItem(context.Background(), testRef, "ITEM0001", library.UpdateInput{
		Title:          "New Title",
		AddCollections: []string{"COLLBBBB"},
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if gotPatch["title"] != "New Title" {
		t.Errorf("patch title = %v", gotPatch["title"])
	}
	wantCols := []string{"COLLAAAA", "COLLBBBB"}
	if !reflect.DeepEqual(gotPatch["collections"], wantCols) {
		t.Errorf("patch collections = %v, want %v", gotPatch["collections"], wantCols)
	}
	if len(res.Changed) != 2 {
		t.Errorf("changed = %v, want title and collections", res.Changed)
	}
}

func TestUpdateItem_NoChangesSkipsPatch(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return storedItem(9, "a"), nil
		},
		// PatchItemFunc deliberately unset: reaching it fails the test.
	}
	svc := library.NewService(store)

	res, err := svc.UpdateItem(context.Background(), testRef, "ITEM0001", library.UpdateInput{})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if res.Version != 9 {
		t.Errorf("version = %d, want current version 9", res.Version)
	}
	if len(res.Changed) != 0 {
		t.Errorf("changed = %v, want none", res.Changed)
	}
	if !reflect.DeepEqual(store.Calls, []string{"Item"}) {
		t.Errorf("calls = %v, want a single read", store.Calls)
	}
}

func TestUpdateItem_ConflictSurfaces(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return storedItem(5), nil
		},
		PatchItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error) {
			return 0, zotero.ErrConflict
		},
	}
	svc := library.NewService(store)

	_, err := svc.UpdateItem(context.Background(), testRef, "ITEM0001", library.UpdateInput{Title: "T"})
	if !errors.Is(err, zotero.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	// Exactly one read and one patch: no silent re-read-and-retry.
	if !reflect.DeepEqual(store.Calls, []string{"Item", "PatchItem"}) {
		t.Errorf("calls = %v, want [Item PatchItem]", store.Calls)
	}
}
