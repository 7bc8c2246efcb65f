package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/zotmcp/internal/config"
	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

var (
	cfg   *config.Config
	store *zotero.Client
	svc   *library.Service

	flagNoColor bool
)

var appVersion = "dev"

// SetVersion sets the version printed by the version command. Called from
// main with the ldflags value.
func SetVersion(v string) { appVersion = v }

var rootCmd = &cobra.Command{
	Use:   "zotmcp",
	Short: "Serve a Zotero library to tool-calling agents",
	Long: `zotmcp exposes a personal Zotero library — items, collections, tags,
attachments and full-text — as MCP tools for agents, and as plain
subcommands for manual use.

Run 'zotmcp setup' first to write a config, then 'zotmcp serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initColor(flagNoColor)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// setup and version run without credentials.
		if cmd.Name() == "setup" || cmd.Name() == "version" {
			return nil
		}

		if cfg.Zotero.Key == "" {
			return fmt.Errorf("no Zotero API key found — set %s or run 'zotmcp setup'",
				cfg.Zotero.KeyEnv)
		}
		if cfg.Zotero.LibraryID == "" {
			return fmt.Errorf("no library id configured — run 'zotmcp setup'")
		}

		store = zotero.New(cfg.Zotero.Key, cfg.Zotero.APIBase)
		svc = library.NewService(store)
		return nil
	}

	rootCmd.AddCommand(
		newSetupCmd(),
		newServeCmd(),
		newSaveCmd(),
		newUpdateCmd(),
		newAttachCmd(),
		newFulltextCmd(),
		newStatsCmd(),
		newSearchCmd(),
		newCollectionsCmd(),
		newTagsCmd(),
		newVersionCmd(),
	)
}

// libraryRef builds the configured library reference.
func libraryRef() zotero.LibraryRef {
	kind := zotero.LibraryUser
	if cfg.Zotero.LibraryType == "group" {
		kind = zotero.LibraryGroup
	}
	return zotero.LibraryRef{ID: cfg.Zotero.LibraryID, Kind: kind}
}

// initColor configures color output based on flags and terminal detection.
func initColor(noColor bool) {
	if noColor || !isTTY() {
		color.NoColor = true
	}
}

// isTTY returns true if stdout is a terminal.
func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}
