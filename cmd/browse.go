package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ctt011/folio/internal/gallery"
	"github.com/ctt011/folio/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [slug]",
	Short: "Browse the project gallery in the terminal",
	Long: `Opens the project gallery as a terminal UI. It behaves like the web gallery:
search, year and tag filters, project details and a highlighted source
viewer. Pass a project slug to open it directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log lines would corrupt the screen; send them to a file when asked.
	if verbose {
		f, err := tea.LogToFile("folio-debug.log", "folio")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	c, err := b.loadCatalog(ctx)
	if err != nil {
		return err
	}

	var fragment string
	if len(args) == 1 {
		fragment = args[0]
	}

	return tui.Run(ctx, c, gallery.NewSourceLoader(b.sources, cfg.MaxConcurrency), tui.Options{
		Title:    cfg.SiteTitle,
		Fragment: fragment,
	})
}
