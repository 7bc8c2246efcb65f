// Package library implements the synchronization engine between caller
// intents (save, update, attach, read) and the versioned remote store. Every
// operation re-reads what it needs immediately before mutating; no local
// replica or cache is kept.
package library

import (
	"context"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// Store is the remote-store surface the engine depends on. *zotero.Client
// satisfies it; tests substitute function-field fakes.
type Store interface {
	ItemTemplate(ctx context.Context, itemType string) (map[string]interface{}, error)
	AttachmentTemplate(ctx context.Context) (map[string]interface{}, error)
	CreateItems(ctx context.Context, ref zotero.LibraryRef, items []map[string]interface{}) (*zotero.WriteResult, error)
	Item(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error)
	PatchItem(ctx context.Context, ref zotero.LibraryRef, key string, version int, data map[string]interface{}) (int, error)
	ItemChildren(ctx context.Context, ref zotero.LibraryRef, key string) ([]zotero.Item, error)
	ItemFulltext(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error)
	TopItems(ctx context.Context, ref zotero.LibraryRef, limit int) ([]zotero.Item, int, error)
	Collections(ctx context.Context, ref zotero.LibraryRef) ([]zotero.Collection, error)
	CreateCollections(ctx context.Context, ref zotero.LibraryRef, cols []zotero.NewCollection) (*zotero.WriteResult, error)
	Tags(ctx context.Context, ref zotero.LibraryRef, limit int) ([]zotero.TagCount, error)
	SearchItems(ctx context.Context, ref zotero.LibraryRef, query, qmode string, limit int) ([]zotero.Item, int, error)
	UploadAttachmentFile(ctx context.Context, ref zotero.LibraryRef, key, filename string, data []byte) error
}

var _ Store = (*zotero.Client)(nil)

// Service orchestrates library operations against a Store.
type Service struct {
	store Store
	fetch *Fetcher
}

// NewService returns a Service using the default source fetcher.
func NewService(store Store) *Service {
	return &Service{store: store, fetch: NewFetcher()}
}
