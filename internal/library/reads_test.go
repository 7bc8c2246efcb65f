package library_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/testutil"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

func TestGetItem_Projection(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return &zotero.Item{
				Key:     "ITEM0001",
				Version: 12,
				Data: zotero.ItemData{
					ItemType: "journalArticle",
					Title:    "A Study",
					Date:     "2024",
					Tags:     []zotero.ItemTag{{Tag: "go"}, {Tag: "papers"}},
				},
			}, nil
		},
	}
	svc := library.NewService(store)

	v, err := svc.GetItem(context.Background(), testRef, "ITEM0001")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if v.Key != "ITEM0001" || v.Version != 12 || v.Type != "journalArticle" {
		t.Errorf("view = %+v", v)
	}
	if !reflect.DeepEqual(v.Tags, []string{"go", "papers"}) {
		t.Errorf("tags = %v", v.Tags)
	}
}

func TestSearch_QueryRequired(t *testing.T) {
	store := &testutil.MockStore{}
	svc := library.NewService(store)

	_, _, err := svc.Search(context.Background(), testRef, "   ", "", 10)
	if err == nil {
		t.Fatal("expected error for blank query")
	}
	if len(store.Calls) != 0 {
		t.Errorf("calls = %v, want none", store.Calls)
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	var gotLimit int
	store := &testutil.MockStore{
		SearchItemsFunc: func(ctx context.Context, ref zotero.LibraryRef, query, qmode string, limit int) ([]zotero.Item, int, error) {
			gotLimit = limit
			return []zotero.Item{{Key: "HIT00001", Data: zotero.ItemData{Title: "Hit"}}}, 99, nil
		},
	}
	svc := library.NewService(store)

	views, total, err := svc.Search(context.Background(), testRef, "go", "", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotLimit != 25 {
		t.Errorf("limit = %d, want default 25", gotLimit)
	}
	if total != 99 || len(views) != 1 || views[0].Key != "HIT00001" {
		t.Errorf("views = %v, total = %d", views, total)
	}
}

func TestCreateCollection_ValidatesBeforeRemoteCall(t *testing.T) {
	store := &testutil.MockStore{}
	svc := library.NewService(store)

	_, err := svc.CreateCollection(context.Background(), testRef, "   ", "")
	if err == nil {
		t.Fatal("expected error for blank name")
	}
	if len(store.Calls) != 0 {
		t.Errorf("calls = %v, want validation to run before any remote call", store.Calls)
	}
}

func TestCreateCollection_TrimsName(t *testing.T) {
	var gotName string
	store := &testutil.MockStore{
		CreateCollectionsFunc: func(ctx context.Context, ref zotero.LibraryRef, cols []zotero.NewCollection) (*zotero.WriteResult, error) {
			gotName = cols[0].Name
			return &zotero.WriteResult{Success: map[string]string{"0": "COLL0001"}}, nil
		},
	}
	svc := library.NewService(store)

	key, err := svc.CreateCollection(context.Background(), testRef, "  Reading List  ", "")
	if err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if gotName != "Reading List" {
		t.Errorf("name = %q, want trimmed", gotName)
	}
	if key != "COLL0001" {
		t.Errorf("key = %q", key)
	}
}

func TestListCollections_Projection(t *testing.T) {
	store := &testutil.MockStore{
		CollectionsFunc: func(ctx context.Context, ref zotero.LibraryRef) ([]zotero.Collection, error) {
			c := zotero.Collection{
				Key:  "COLL0001",
				Data: zotero.CollectionData{Name: "Reading", ParentCollection: "COLL0000"},
			}
			c.Meta.NumItems = 7
			return []zotero.Collection{c}, nil
		},
	}
	svc := library.NewService(store)

	views, err := svc.ListCollections(context.Background(), testRef)
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	want := library.CollectionView{Key: "COLL0001", Name: "Reading", ParentKey: "COLL0000", NumItems: 7}
	if len(views) != 1 || views[0] != want {
		t.Errorf("views = %+v, want [%+v]", views, want)
	}
}

func TestListTags_Mapping(t *testing.T) {
	store := &testutil.MockStore{
		TagsFunc: func(ctx context.Context, ref zotero.LibraryRef, limit int) ([]zotero.TagCount, error) {
			return []zotero.TagCount{tagCount("go", 40)}, nil
		},
	}
	svc := library.NewService(store)

	usage, err := svc.ListTags(context.Background(), testRef, 5)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	want := []library.TagUsage{{Name: "go", Count: 40}}
	if !reflect.DeepEqual(usage, want) {
		t.Errorf("usage = %v, want %v", usage, want)
	}
}
