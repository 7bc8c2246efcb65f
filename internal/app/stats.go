package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		topTags int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if topTags <= 0 {
				topTags = cfg.Defaults.TopTags
			}
			st, err := svc.Stats(context.Background(), libraryRef(), topTags)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(st)
			}

			fmt.Printf("Items:       %d\n", st.TotalItems)
			fmt.Printf("Collections: %d\n", st.CollectionCount)
			if st.MostRecent != nil {
				fmt.Printf("Most recent: %s (%s)\n", st.MostRecent.Title, color.CyanString(st.MostRecent.Key))
			}
			if len(st.TopTags) > 0 {
				fmt.Println("Top tags:")
				for _, t := range st.TopTags {
					fmt.Printf("  %s (%d)\n", t.Name, t.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topTags, "top-tags", 0, "Number of top tags to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
