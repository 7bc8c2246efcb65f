package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

func newUpdateCmd() *cobra.Command {
	var (
		in          library.UpdateInput
		replaceTags []string
		replaceCols []string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "update <item-key>",
		Short: "Update fields, tags or collections of an item",
		Long: `Patch an existing item under optimistic concurrency.

Scalar flags overwrite the field when given. --set-tag replaces the full
tag list; --add-tag and --remove-tag adjust it incrementally and are
ignored when --set-tag is present. The same rules apply to collections.
A concurrent edit on the remote side fails the update with a version
conflict; re-run after inspecting the item.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("set-tag") {
				in.Tags = replaceTags
				if in.Tags == nil {
					in.Tags = []string{}
				}
			}
			if cmd.Flags().Changed("set-collection") {
				in.Collections = replaceCols
				if in.Collections == nil {
					in.Collections = []string{}
				}
			}
			res, err := svc.UpdateItem(context.Background(), libraryRef(), args[0], in)
			if err != nil {
				if errors.Is(err, zotero.ErrConflict) {
					return fmt.Errorf("item %s changed on the server since it was read; fetch it again before retrying", args[0])
				}
				return err
			}

			if jsonOut {
				return printJSON(map[string]interface{}{
					"success": true,
					"key":     res.Key,
					"version": res.Version,
					"changed": res.Changed,
				})
			}

			if len(res.Changed) == 0 {
				fmt.Printf("No changes for %s (version %d)\n", res.Key, res.Version)
				return nil
			}
			ok("Updated %s to version %d (%s)", color.CyanString(res.Key), res.Version, strings.Join(res.Changed, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "New title")
	cmd.Flags().StringVar(&in.Date, "date", "", "New date")
	cmd.Flags().StringVar(&in.Abstract, "abstract", "", "New abstract")
	cmd.Flags().StringVar(&in.Extra, "extra", "", "New extra field")
	cmd.Flags().StringArrayVar(&replaceTags, "set-tag", nil, "Replace all tags (repeatable)")
	cmd.Flags().StringArrayVar(&in.AddTags, "add-tag", nil, "Add a tag (repeatable)")
	cmd.Flags().StringArrayVar(&in.RemoveTags, "remove-tag", nil, "Remove a tag (repeatable)")
	cmd.Flags().StringArrayVar(&replaceCols, "set-collection", nil, "Replace all collection memberships (repeatable)")
	cmd.Flags().StringArrayVar(&in.AddCollections, "add-collection", nil, "Add to collection key (repeatable)")
	cmd.Flags().StringArrayVar(&in.RemoveCollections, "remove-collection", nil, "Remove from collection key (repeatable)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
