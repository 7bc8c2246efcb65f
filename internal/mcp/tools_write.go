package mcp

import (
	"context"
	"errors"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

// attachmentView is the nested attachment outcome carried in write-tool
// outputs. Status is one of "uploaded", "registered", "failed"; Key is set
// whenever a record exists, including the registered-but-not-uploaded case.
type attachmentView struct {
	Status   string `json:"status"`
	Key      string `json:"key,omitempty"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

func viewOutcome(o *library.AttachmentOutcome) *attachmentView {
	if o == nil {
		return nil
	}
	return &attachmentView{
		Status:   o.Status.String(),
		Key:      o.Key,
		Filename: o.Filename,
		Error:    errorMessage(o.Err),
	}
}

type saveItemInput struct {
	Type        string   `json:"type" jsonschema:"Item type, friendly or canonical (article, book, chapter, webpage, ...)"`
	Title       string   `json:"title" jsonschema:"Item title"`
	Date        string   `json:"date,omitempty" jsonschema:"Publication date"`
	Authors     []string `json:"authors,omitempty" jsonschema:"Author names, 'First Last' or a single organization name"`
	URL         string   `json:"url,omitempty" jsonschema:"Source URL"`
	Abstract    string   `json:"abstract,omitempty" jsonschema:"Abstract text"`
	Extra       string   `json:"extra,omitempty" jsonschema:"Freeform extra field"`
	Publication string   `json:"publication,omitempty" jsonschema:"Journal or venue name"`
	Volume      string   `json:"volume,omitempty" jsonschema:"Volume"`
	Issue       string   `json:"issue,omitempty" jsonschema:"Issue"`
	Pages       string   `json:"pages,omitempty" jsonschema:"Page range"`
	DOI         string   `json:"doi,omitempty" jsonschema:"DOI identifier"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Tags to attach"`
	Collection  string   `json:"collection,omitempty" jsonschema:"Collection key to file the item under"`
	PDFURL      string   `json:"pdf_url,omitempty" jsonschema:"URL of a PDF to fetch and attach"`
	SnapshotURL string   `json:"snapshot_url,omitempty" jsonschema:"URL of a page to snapshot and attach (pdf_url wins if both given)"`
	Filename    string   `json:"filename,omitempty" jsonschema:"Explicit attachment filename"`
}

type saveItemOutput struct {
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
	Key        string          `json:"key,omitempty"`
	ItemType   string          `json:"item_type,omitempty"`
	Attachment *attachmentView `json:"attachment,omitempty"`
}

func (s *Server) handleSaveItemTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input saveItemInput) (*mcpsdk.CallToolResult, saveItemOutput, error) {
	res, err := s.svc.SaveItem(ctx, s.cfg.Library, library.ItemInput{
		Type:        input.Type,
		Title:       input.Title,
		Date:        input.Date,
		Authors:     input.Authors,
		URL:         input.URL,
		Abstract:    input.Abstract,
		Extra:       input.Extra,
		Publication: input.Publication,
		Volume:      input.Volume,
		Issue:       input.Issue,
		Pages:       input.Pages,
		DOI:         input.DOI,
		Tags:        input.Tags,
		Collection:  input.Collection,
		PDFURL:      input.PDFURL,
		SnapshotURL: input.SnapshotURL,
		Filename:    input.Filename,
	})
	if err != nil {
		return nil, saveItemOutput{Success: false, Error: errorMessage(err)}, nil
	}
	return nil, saveItemOutput{
		Success:    true,
		Key:        res.Key,
		ItemType:   res.ItemType,
		Attachment: viewOutcome(res.Attachment),
	}, nil
}

type updateItemInput struct {
	Key               string   `json:"key" jsonschema:"Item key to update"`
	Title             string   `json:"title,omitempty" jsonschema:"New title"`
	Date              string   `json:"date,omitempty" jsonschema:"New date"`
	Abstract          string   `json:"abstract,omitempty" jsonschema:"New abstract"`
	Extra             string   `json:"extra,omitempty" jsonschema:"New extra field"`
	Tags              []string `json:"tags,omitempty" jsonschema:"Full replacement tag list (wins over add/remove)"`
	AddTags           []string `json:"add_tags,omitempty" jsonschema:"Tags to add"`
	RemoveTags        []string `json:"remove_tags,omitempty" jsonschema:"Tags to remove"`
	Collections       []string `json:"collections,omitempty" jsonschema:"Full replacement collection key list (wins over add/remove)"`
	AddCollections    []string `json:"add_collections,omitempty" jsonschema:"Collection keys to add"`
	RemoveCollections []string `json:"remove_collections,omitempty" jsonschema:"Collection keys to remove"`
}

type updateItemOutput struct {
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
	Conflict bool     `json:"conflict,omitempty"`
	Key      string   `json:"key,omitempty"`
	Version  int      `json:"version,omitempty"`
	Changed  []string `json:"changed,omitempty"`
}

func (s *Server) handleUpdateItemTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input updateItemInput) (*mcpsdk.CallToolResult, updateItemOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, updateItemOutput{Success: false, Error: "key is required"}, nil
	}
	res, err := s.svc.UpdateItem(ctx, s.cfg.Library, input.Key, library.UpdateInput{
		Title:             input.Title,
		Date:              input.Date,
		Abstract:          input.Abstract,
		Extra:             input.Extra,
		Tags:              input.Tags,
		AddTags:           input.AddTags,
		RemoveTags:        input.RemoveTags,
		Collections:       input.Collections,
		AddCollections:    input.AddCollections,
		RemoveCollections: input.RemoveCollections,
	})
	if err != nil {
		return nil, updateItemOutput{
			Success:  false,
			Error:    errorMessage(err),
			Conflict: errors.Is(err, zotero.ErrConflict),
		}, nil
	}
	return nil, updateItemOutput{
		Success: true,
		Key:     res.Key,
		Version: res.Version,
		Changed: res.Changed,
	}, nil
}

type attachFileInput struct {
	ItemKey     string `json:"item_key" jsonschema:"Parent item key"`
	PDFURL      string `json:"pdf_url,omitempty" jsonschema:"URL of a PDF to fetch and attach"`
	SnapshotURL string `json:"snapshot_url,omitempty" jsonschema:"URL of a page to snapshot and attach (pdf_url wins if both given)"`
	Filename    string `json:"filename,omitempty" jsonschema:"Explicit attachment filename"`
}

type attachFileOutput struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Status   string `json:"status"`
	Key      string `json:"key,omitempty"`
	Filename string `json:"filename,omitempty"`
}

func (s *Server) handleAttachFileTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input attachFileInput) (*mcpsdk.CallToolResult, attachFileOutput, error) {
	if strings.TrimSpace(input.ItemKey) == "" {
		return nil, attachFileOutput{Success: false, Status: library.AttachmentFailed.String(), Error: "item_key is required"}, nil
	}
	outcome := s.svc.Attach(ctx, s.cfg.Library, input.ItemKey, library.AttachmentInput{
		PDFURL:      input.PDFURL,
		SnapshotURL: input.SnapshotURL,
		Filename:    input.Filename,
	})
	return nil, attachFileOutput{
		Success:  outcome.Status == library.AttachmentUploaded,
		Error:    errorMessage(outcome.Err),
		Status:   outcome.Status.String(),
		Key:      outcome.Key,
		Filename: outcome.Filename,
	}, nil
}

type createCollectionInput struct {
	Name      string `json:"name" jsonschema:"Collection name"`
	ParentKey string `json:"parent_key,omitempty" jsonschema:"Parent collection key for nesting"`
}

type createCollectionOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Key     string `json:"key,omitempty"`
}

func (s *Server) handleCreateCollectionTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input createCollectionInput) (*mcpsdk.CallToolResult, createCollectionOutput, error) {
	key, err := s.svc.CreateCollection(ctx, s.cfg.Library, input.Name, input.ParentKey)
	if err != nil {
		return nil, createCollectionOutput{Success: false, Error: errorMessage(err)}, nil
	}
	return nil, createCollectionOutput{Success: true, Key: key}, nil
}
