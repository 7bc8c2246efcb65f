package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// AttachmentInput names the source of an attachment payload. PDFURL wins
// when both sources are given.
type AttachmentInput struct {
	PDFURL      string
	SnapshotURL string
	Filename    string
}

// Attach runs the two-phase attachment protocol against an existing parent
// item: register a metadata-only attachment record, then upload the binary.
// Registration failure is terminal — no binary is ever sent for an
// unregistered attachment. An upload failure after registration returns the
// orphaned record's key so the caller can clean up or retry.
func (s *Service) Attach(ctx context.Context, ref zotero.LibraryRef, parentKey string, in AttachmentInput) AttachmentOutcome {
	file, err := s.fetchSource(ctx, in)
	if err != nil {
		return AttachmentOutcome{Status: AttachmentFailed, Err: err}
	}

	key, err := s.registerAttachment(ctx, ref, parentKey, file)
	if err != nil {
		return AttachmentOutcome{
			Status:   AttachmentFailed,
			Filename: file.Filename,
			Err:      fmt.Errorf("register attachment: %w", err),
		}
	}

	if err := s.store.UploadAttachmentFile(ctx, ref, key, file.Filename, file.Data); err != nil {
		return AttachmentOutcome{
			Status:   AttachmentRegistered,
			Key:      key,
			Filename: file.Filename,
			Err:      fmt.Errorf("upload attachment file: %w", err),
		}
	}

	return AttachmentOutcome{Status: AttachmentUploaded, Key: key, Filename: file.Filename}
}

func (s *Service) fetchSource(ctx context.Context, in AttachmentInput) (*FetchedFile, error) {
	switch {
	case in.PDFURL != "":
		return s.fetch.FetchPDF(ctx, in.PDFURL, in.Filename)
	case in.SnapshotURL != "":
		return s.fetch.FetchSnapshot(ctx, in.SnapshotURL)
	default:
		return nil, errors.New("no attachment source given")
	}
}

// registerAttachment creates the metadata-only attachment record (phase one).
func (s *Service) registerAttachment(ctx context.Context, ref zotero.LibraryRef, parentKey string, file *FetchedFile) (string, error) {
	tpl, err := s.store.AttachmentTemplate(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire attachment template: %w", err)
	}

	record := make(map[string]interface{}, len(tpl))
	for k, v := range tpl {
		record[k] = v
	}
	record["parentItem"] = parentKey
	record["title"] = file.Filename
	record["filename"] = file.Filename
	record["contentType"] = file.ContentType
	record["tags"] = []map[string]interface{}{}

	res, err := s.store.CreateItems(ctx, ref, []map[string]interface{}{record})
	if err != nil {
		return "", err
	}
	key, ok := res.FirstKey()
	if !ok {
		if f := res.FirstFailure(); f != nil {
			return "", fmt.Errorf("store rejected attachment record (code %d): %s", f.Code, f.Message)
		}
		return "", errors.New("store returned no attachment key")
	}
	return key, nil
}
