// Package testutil provides fakes shared by service, tool, and command tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// MockStore is a function-field fake of the library.Store interface. Only the
// fields a test sets are consulted; an unset field fails loudly so tests
// can't silently exercise an unintended path. Calls records the method names
// invoked, in order.
type MockStore struct {
	Calls []string

	ItemTemplateFunc         func(ctx context.Context, itemType string) (map[string]interface{}, error)
	AttachmentTemplateFunc   func(ctx context.Context) (map[string]interface{}, error)
	CreateItemsFunc          func(ctx context.Context, ref zotero.LibraryRef, items []map[string]interface{}) (*zotero.WriteResult, error)
	ItemFunc                 func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error)
	PatchItemFunc            func(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error)
	ItemChildrenFunc         func(ctx context.Context, ref zotero.LibraryRef, key string) ([]zotero.Item, error)
	ItemFulltextFunc         func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error)
	TopItemsFunc             func(ctx context.Context, ref zotero.LibraryRef, limit int) ([]zotero.Item, int, error)
	CollectionsFunc          func(ctx context.Context, ref zotero.LibraryRef) ([]zotero.Collection, error)
	CreateCollectionsFunc    func(ctx context.Context, ref zotero.LibraryRef, cols []zotero.NewCollection) (*zotero.WriteResult, error)
	TagsFunc                 func(ctx context.Context, ref zotero.LibraryRef, limit int) ([]zotero.TagCount, error)
	SearchItemsFunc          func(ctx context.Context, ref zotero.LibraryRef, query, qmode string, limit int) ([]zotero.Item, int, error)
	UploadAttachmentFileFunc func(ctx context.Context, ref zotero.LibraryRef, key, filename string, data []byte) error
}

func (m *MockStore) record(name string) { m.Calls = append(m.Calls, name) }

func (m *MockStore) ItemTemplate(ctx context.Context, itemType string) (map[string]interface{}, error) {
	m.record("ItemTemplate")
	if m.ItemTemplateFunc == nil {
		return nil, fmt.Errorf("testutil: ItemTemplateFunc not set")
	}
	return m.ItemTemplateFunc(ctx, itemType)
}

func (m *MockStore) AttachmentTemplate(ctx context.Context) (map[string]interface{}, error) {
	m.record("AttachmentTemplate")
	if m.AttachmentTemplateFunc == nil {
		return nil, fmt.Errorf("testutil: AttachmentTemplateFunc not set")
	}
	return m.AttachmentTemplateFunc(ctx)
}

func (m *MockStore) CreateItems(ctx context.Context, ref zotero.LibraryRef, items []map[string]interface{}) (*zotero.WriteResult, error) {
	m.record("CreateItems")
	if m.CreateItemsFunc == nil {
		return nil, fmt.Errorf("testutil: CreateItemsFunc not set")
	}
	return m.CreateItemsFunc(ctx, ref, items)
}

func (m *MockStore) Item(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
	m.record("Item")
	if m.ItemFunc == nil {
		return nil, fmt.Errorf("testutil: ItemFunc not set")
	}
	return m.ItemFunc(ctx, ref, key)
}

func (m *MockStore) PatchItem(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error) {
	m.record("PatchItem")
	if m.PatchItemFunc == nil {
		return 0, fmt.Errorf("testutil: PatchItemFunc not set")
	}
	return m.PatchItemFunc(ctx, ref, key, version, data)
}

func (m *MockStore) ItemChildren(ctx context.Context, ref zotero.LibraryRef, key string) ([]zotero.Item, error) {
	m.record("ItemChildren")
	if m.ItemChildrenFunc == nil {
		return nil, fmt.Errorf("testutil: ItemChildrenFunc not set")
	}
	return m.ItemChildrenFunc(ctx, ref, key)
}

func (m *MockStore) ItemFulltext(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error) {
	m.record("ItemFulltext")
	if m.ItemFulltextFunc == nil {
		return nil, fmt.Errorf("testutil: ItemFulltextFunc not set")
	}
	return m.ItemFulltextFunc(ctx, ref, key)
}

func (m *MockStore) TopItems(ctx context.Context, ref zotero.LibraryRef, limit int) ([]zotero.Item, int, error) {
	m.record("TopItems")
	if m.TopItemsFunc == nil {
		return nil, 0, fmt.Errorf("testutil: TopItemsFunc not set")
	}
	return m.TopItemsFunc(ctx, ref, limit)
}

func (m *MockStore) Collections(ctx context.Context, ref zotero.LibraryRef) ([]zotero.Collection, error) {
	m.record("Collections")
	if m.CollectionsFunc == nil {
		return nil, fmt.Errorf("testutil: CollectionsFunc not set")
	}
	return m.CollectionsFunc(ctx, ref)
}

func (m *MockStore) CreateCollections(ctx context.Context, ref zotero.LibraryRef, cols []zotero.NewCollection) (*zotero.WriteResult, error) {
	m.record("CreateCollections")
	if m.CreateCollectionsFunc == nil {
		return nil, fmt.Errorf("testutil: CreateCollectionsFunc not set")
	}
	return m.CreateCollectionsFunc(ctx, ref, cols)
}

func (m *MockStore) Tags(ctx context.Context, ref zotero.LibraryRef, limit int) ([]zotero.TagCount, error) {
	m.record("Tags")
	if m.TagsFunc == nil {
		return nil, fmt.Errorf("testutil: TagsFunc not set")
	}
	return m.TagsFunc(ctx, ref, limit)
}

func (m *MockStore) SearchItems(ctx context.Context, ref zotero.LibraryRef, query, qmode string, limit int) ([]zotero.Item, int, error) {
	m.record("SearchItems")
	if m.SearchItemsFunc == nil {
		return nil, 0, fmt.Errorf("testutil: SearchItemsFunc not set")
	}
	return m.SearchItemsFunc(ctx, ref, query, qmode, limit)
}

func (m *MockStore) UploadAttachmentFile(ctx context.Context, ref zotero.LibraryRef, key, filename string, data []byte) error {
	m.record("UploadAttachmentFile")
	if m.UploadAttachmentFileFunc == nil {
		return fmt.Errorf("testutil: UploadAttachmentFileFunc not set")
	}
	return m.UploadAttachmentFileFunc(ctx, ref, key, filename, data)
}
