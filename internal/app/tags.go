package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the most used tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = cfg.Defaults.TopTags
			}
			usage, err := svc.ListTags(context.Background(), libraryRef(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(usage)
			}

			if len(usage) == 0 {
				fmt.Println("No tags.")
				return nil
			}
			for _, t := range usage {
				fmt.Printf("%4d  %s\n", t.Count, t.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum tags to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
