package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

func newSearchCmd() *cobra.Command {
	var (
		everything bool
		limit      int
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the library",
		Long: `Quick-search over titles, creators and years. With --everything the
search also covers indexed full text and notes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qmode := zotero.QModeTitleCreatorYear
			if everything {
				qmode = zotero.QModeEverything
			}
			if limit <= 0 {
				limit = cfg.Defaults.SearchLimit
			}
			views, total, err := svc.Search(context.Background(), libraryRef(), args[0], qmode, limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(map[string]interface{}{
					"total": total,
					"items": views,
				})
			}

			if len(views) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, v := range views {
				line := fmt.Sprintf("%s  %s", color.CyanString(v.Key), v.Title)
				if v.Date != "" {
					line += fmt.Sprintf(" (%s)", v.Date)
				}
				fmt.Println(line)
			}
			if total > len(views) {
				fmt.Printf("Showing %d of %d matches.\n", len(views), total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&everything, "everything", false, "Search full text and notes too")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
