package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newFulltextCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "fulltext <item-key>",
		Short: "Print the indexed full text of an item",
		Long: `Resolve the indexed full text for an item.

For a regular item the PDF attachments are probed first, then the
remaining attachments; the first one with indexed text wins. An item
whose attachments are not indexed yet is reported as such rather than
treated as an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := svc.Fulltext(context.Background(), libraryRef(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(map[string]interface{}{
					"found":          res.Found,
					"content":        res.Content,
					"note":           res.Note,
					"source_key":     res.SourceKey,
					"indexed_extent": res.IndexedExtent,
					"total_extent":   res.TotalExtent,
				})
			}

			if !res.Found {
				warn("%s", res.Note)
				return nil
			}
			if res.TotalExtent > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "source %s, indexed %d of %d\n", res.SourceKey, res.IndexedExtent, res.TotalExtent)
			}
			fmt.Println(res.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
