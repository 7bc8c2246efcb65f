package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/zotmcp/internal/library"
)

func newSaveCmd() *cobra.Command {
	var (
		in      library.ItemInput
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a new item to the library",
		Long: `Create a library item from bibliographic fields.

With --pdf or --snapshot the file is fetched and attached to the new item.
An attachment failure does not roll back the created item; the partial
outcome is reported instead.`,
		Example: `  zotmcp save --type article --title "Attention Is All You Need" \
      --author "Ashish Vaswani" --tag transformers --pdf https://arxiv.org/pdf/1706.03762
  zotmcp save --type webpage --title "Go Blog: Error Handling" \
      --url https://go.dev/blog/errors --snapshot https://go.dev/blog/errors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := svc.SaveItem(context.Background(), libraryRef(), in)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(map[string]interface{}{
					"success":    true,
					"key":        res.Key,
					"item_type":  res.ItemType,
					"attachment": attachmentJSON(res.Attachment),
				})
			}

			ok("Created %s item %s", res.ItemType, color.CyanString(res.Key))
			reportAttachment(res.Attachment)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Type, "type", "webpage", "Item type (friendly or canonical)")
	cmd.Flags().StringVar(&in.Title, "title", "", "Item title (required)")
	cmd.Flags().StringVar(&in.Date, "date", "", "Publication date")
	cmd.Flags().StringArrayVar(&in.Authors, "author", nil, "Author name (repeatable)")
	cmd.Flags().StringVar(&in.URL, "url", "", "Source URL")
	cmd.Flags().StringVar(&in.Abstract, "abstract", "", "Abstract text")
	cmd.Flags().StringVar(&in.Extra, "extra", "", "Extra field")
	cmd.Flags().StringVar(&in.Publication, "publication", "", "Journal or venue")
	cmd.Flags().StringVar(&in.Volume, "volume", "", "Volume")
	cmd.Flags().StringVar(&in.Issue, "issue", "", "Issue")
	cmd.Flags().StringVar(&in.Pages, "pages", "", "Page range")
	cmd.Flags().StringVar(&in.DOI, "doi", "", "DOI")
	cmd.Flags().StringArrayVar(&in.Tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&in.Collection, "collection", "", "Collection key to file under")
	cmd.Flags().StringVar(&in.PDFURL, "pdf", "", "PDF URL to fetch and attach")
	cmd.Flags().StringVar(&in.SnapshotURL, "snapshot", "", "Page URL to snapshot and attach")
	cmd.Flags().StringVar(&in.Filename, "filename", "", "Explicit attachment filename")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func reportAttachment(o *library.AttachmentOutcome) {
	if o == nil {
		return
	}
	switch o.Status {
	case library.AttachmentUploaded:
		ok("Attached %s (%s)", o.Filename, color.CyanString(o.Key))
	case library.AttachmentRegistered:
		warn("attachment %s registered as %s but its upload failed: %v", o.Filename, o.Key, o.Err)
	default:
		warn("attachment failed: %v", o.Err)
	}
}

func attachmentJSON(o *library.AttachmentOutcome) map[string]interface{} {
	if o == nil {
		return nil
	}
	m := map[string]interface{}{
		"status":   o.Status.String(),
		"key":      o.Key,
		"filename": o.Filename,
	}
	if o.Err != nil {
		m["error"] = fmt.Sprint(o.Err)
	}
	return m
}
