package app

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/zotmcp/internal/config"
)

func newSetupCmd() *cobra.Command {
	var (
		libraryID   string
		libraryType string
		host        string
		port        int
		noPrompt    bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write the zotmcp config interactively",
		Long: `Collect Zotero connection settings and write the config file.

The Zotero API key itself is never written to disk — export it in the
environment variable named by zotero.key_env (default ZOTERO_API_KEY).
Create a key at https://www.zotero.org/settings/keys; your numeric user ID
is shown on the same page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if libraryID != "" {
				cfg.Zotero.LibraryID = libraryID
			}
			if libraryType != "" {
				cfg.Zotero.LibraryType = libraryType
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			if port != 0 {
				cfg.Serve.Port = port
			}

			if !noPrompt && isTTY() {
				if err := runSetupForm(cfg); err != nil {
					return err
				}
			}

			if cfg.Zotero.LibraryID == "" {
				return fmt.Errorf("library id is required (--library-id or the prompt)")
			}
			if cfg.Zotero.LibraryType != "user" && cfg.Zotero.LibraryType != "group" {
				return fmt.Errorf("library type must be \"user\" or \"group\", got %q", cfg.Zotero.LibraryType)
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Config written to %s", config.DefaultPath())

			if cfg.Zotero.Key == "" {
				warn("export %s before running zotmcp — the key is not stored in the config", cfg.Zotero.KeyEnv)
			}

			fmt.Println("\nMCP client configuration snippet:")
			fmt.Println(color.HiBlackString(`  {
    "mcpServers": {
      "zotmcp": {
        "type": "http",
        "url": "http://%s:%d%s"
      }
    }
  }`, cfg.Serve.Host, cfg.Serve.Port, cfg.Serve.Path))
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryID, "library-id", "", "Zotero user or group ID")
	cmd.Flags().StringVar(&libraryType, "library-type", "", `Library type: "user" or "group"`)
	cmd.Flags().StringVar(&host, "host", "", "Serve host")
	cmd.Flags().IntVar(&port, "port", 0, "Serve port")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Skip the interactive form (use flags only)")
	return cmd
}

func runSetupForm(cfg *config.Config) error {
	portStr := strconv.Itoa(cfg.Serve.Port)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Zotero library ID").
				Description("Your numeric user ID, or a group ID").
				Value(&cfg.Zotero.LibraryID).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("library ID is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Library type").
				Options(
					huh.NewOption("Personal library", "user"),
					huh.NewOption("Group library", "group"),
				).
				Value(&cfg.Zotero.LibraryType),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Serve host").
				Value(&cfg.Serve.Host),
			huh.NewInput().
				Title("Serve port").
				Value(&portStr).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if p, err := strconv.Atoi(portStr); err == nil {
		cfg.Serve.Port = p
	}
	return nil
}
