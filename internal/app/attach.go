package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/zotmcp/internal/library"
)

func newAttachCmd() *cobra.Command {
	var (
		in      library.AttachmentInput
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "attach <item-key>",
		Short: "Fetch a file and attach it to an existing item",
		Long: `Fetch a PDF or page snapshot and attach it as a child of the item.

When both --pdf and --snapshot are given the PDF wins. The attachment is
registered first and the payload uploaded second; if the upload step fails
the registered attachment key is still reported so the transfer can be
retried without re-registering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.PDFURL == "" && in.SnapshotURL == "" {
				return fmt.Errorf("one of --pdf or --snapshot is required")
			}
			out := svc.Attach(context.Background(), libraryRef(), args[0], in)

			if jsonOut {
				return printJSON(map[string]interface{}{
					"success":    out.Status == library.AttachmentUploaded,
					"attachment": attachmentJSON(&out),
				})
			}

			reportAttachment(&out)
			if out.Status == library.AttachmentFailed {
				return fmt.Errorf("attachment failed: %w", out.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.PDFURL, "pdf", "", "PDF URL to fetch")
	cmd.Flags().StringVar(&in.SnapshotURL, "snapshot", "", "Page URL to snapshot")
	cmd.Flags().StringVar(&in.Filename, "filename", "", "Explicit attachment filename")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
