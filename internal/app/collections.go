package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCollectionsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := svc.ListCollections(context.Background(), libraryRef())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(views)
			}

			if len(views) == 0 {
				fmt.Println("No collections.")
				return nil
			}
			for _, c := range views {
				line := fmt.Sprintf("%s  %s (%d items)", color.CyanString(c.Key), c.Name, c.NumItems)
				if c.ParentKey != "" {
					line += fmt.Sprintf(" parent=%s", c.ParentKey)
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.AddCommand(newCollectionsCreateCmd())
	return cmd
}

func newCollectionsCreateCmd() *cobra.Command {
	var (
		parent  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := svc.CreateCollection(context.Background(), libraryRef(), args[0], parent)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(map[string]interface{}{
					"success": true,
					"key":     key,
					"name":    args[0],
				})
			}

			ok("Created collection %s (%s)", args[0], color.CyanString(key))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent collection key")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
