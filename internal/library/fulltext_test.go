package library_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/testutil"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

func attachment(key, contentType string) zotero.Item {
	return zotero.Item{
		Key:  key,
		Data: zotero.ItemData{ItemType: "attachment", ContentType: contentType},
	}
}

func TestFulltext_DirectAttachment(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			item := attachment("ATTACH01", "application/pdf")
			return &item, nil
		},
		ItemFulltextFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error) {
			return &zotero.Fulltext{Content: "extracted text", IndexedPages: 3, TotalPages: 10}, nil
		},
	}
	svc := library.NewService(store)

	res, err := svc.Fulltext(context.Background(), testRef, "ATTACH01")
	if err != nil {
		t.Fatalf("Fulltext: %v", err)
	}
	if !res.Found || res.Content != "extracted text" {
		t.Errorf("result = %+v, want found with content", res)
	}
	if res.IndexedExtent != 3 || res.TotalExtent != 10 {
		t.Errorf("extents = %d/%d, want 3/10", res.IndexedExtent, res.TotalExtent)
	}
	if res.SourceKey != "ATTACH01" {
		t.Errorf("source = %q", res.SourceKey)
	}
}

func TestFulltext_DirectAttachmentNotIndexed(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			item := attachment("ATTACH01", "application/pdf")
			return &item, nil
		},
		ItemFulltextFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error) {
			return nil, zotero.ErrNotFound
		},
	}
	svc := library.NewService(store)

	res, err := svc.Fulltext(context.Background(), testRef, "ATTACH01")
	if err != nil {
		t.Fatalf("not-indexed must not be an error, got %v", err)
	}
	if res.Found {
		t.Error("found = true for unindexed attachment")
	}
	if !strings.Contains(res.Note, "not been indexed") {
		t.Errorf("note = %q, want an actionable not-indexed note", res.Note)
	}
}

func TestFulltext_DirectAttachmentHardErrorKeepsDetail(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			item := attachment("ATTACH01", "application/pdf")
			return &item, nil
		},
		ItemFulltextFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error) {
			return nil, zotero.ErrForbidden
		},
	}
	svc := library.NewService(store)

	_, err := svc.Fulltext(context.Background(), testRef, "ATTACH01")
	if !errors.Is(err, zotero.ErrForbidden) {
		t.Fatalf("err = %v, want the probe's own failure preserved", err)
	}
}

func TestFulltext_PDFsProbedFirst(t *testing.T) {
	var probed []string
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return &zotero.Item{Key: key, Data: zotero.ItemData{ItemType: "journalArticle"}}, nil
		},
		ItemChildrenFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) ([]zotero.Item, error) {
			return []zotero.Item{
				attachment("HTML0001", "text/html"),
				attachment("PDF00001", "application/pdf"),
				attachment("PDF00002", "application/pdf"),
				{Key: "NOTE0001", Data: zotero.ItemData{ItemType: "note"}},
			}, nil
		},
		ItemFulltextFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error) {
			probed = append(probed, key)
			if key == "PDF00002" {
				return &zotero.Fulltext{Content: "pdf text", IndexedChars: 9, TotalChars: 9}, nil
			}
			return &zotero.Fulltext{}, nil
		},
	}
	svc := library.NewService(store)

	res, err := svc.Fulltext(context.Background(), testRef, "ITEM0001")
	if err != nil {
		t.Fatalf("Fulltext: %v", err)
	}
	// Both PDFs before the HTML attachment; the note is never probed.
	want := []string{"PDF00001", "PDF00002"}
	if !reflect.DeepEqual(probed, want) {
		t.Errorf("probe order = %v, want %v", probed, want)
	}
	if !res.Found || res.SourceKey != "PDF00002" {
		t.Errorf("result = %+v, want content from PDF00002", res)
	}
	if res.IndexedExtent != 9 || res.TotalExtent != 9 {
		t.Errorf("extents = %d/%d, want character extents when no pages", res.IndexedExtent, res.TotalExtent)
	}
}

func TestFulltext_ProbeErrorContinues(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return &zotero.Item{Key: key, Data: zotero.ItemData{ItemType: "book"}}, nil
		},
		ItemChildrenFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) ([]zotero.Item, error) {
			return []zotero.Item{
				attachment("PDF00001", "application/pdf"),
				attachment("HTML0001", "text/html"),
			}, nil
		},
		ItemFulltextFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error) {
			if key == "PDF00001" {
				return nil, zotero.ErrNotFound
			}
			return &zotero.Fulltext{Content: "html text"}, nil
		},
	}
	svc := library.NewService(store)

	res, err := svc.Fulltext(context.Background(), testRef, "ITEM0001")
	if err != nil {
		t.Fatalf("Fulltext: %v", err)
	}
	if !res.Found || res.SourceKey != "HTML0001" {
		t.Errorf("result = %+v, want fallback to the second attachment", res)
	}
}

func TestFulltext_ExhaustedIsSuccessWithNote(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return &zotero.Item{Key: key, Data: zotero.ItemData{ItemType: "book"}}, nil
		},
		ItemChildrenFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) ([]zotero.Item, error) {
			return []zotero.Item{attachment("PDF00001", "application/pdf")}, nil
		},
		ItemFulltextFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Fulltext, error) {
			return nil, zotero.ErrNotFound
		},
	}
	svc := library.NewService(store)

	res, err := svc.Fulltext(context.Background(), testRef, "ITEM0001")
	if err != nil {
		t.Fatalf("exhausted probes must not be an error, got %v", err)
	}
	if res.Found || res.Note == "" {
		t.Errorf("result = %+v, want not-found with note", res)
	}
}

func TestFulltext_NoAttachments(t *testing.T) {
	store := &testutil.MockStore{
		ItemFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) (*zotero.Item, error) {
			return &zotero.Item{Key: key, Data: zotero.ItemData{ItemType: "book"}}, nil
		},
		ItemChildrenFunc: func(ctx context.Context, ref zotero.LibraryRef, key string) ([]zotero.Item, error) {
			return []zotero.Item{{Key: "NOTE0001", Data: zotero.ItemData{ItemType: "note"}}}, nil
		},
	}
	svc := library.NewService(store)

	res, err := svc.Fulltext(context.Background(), testRef, "ITEM0001")
	if err != nil {
		t.Fatalf("Fulltext: %v", err)
	}
	if res.Found {
		t.Error("found = true for item without attachments")
	}
	if !strings.Contains(res.Note, "no attachments") {
		t.Errorf("note = %q", res.Note)
	}
}
