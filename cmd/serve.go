package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/db"
	"github.com/ctt011/folio/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site and its live gallery",
	Long: `Loads the project catalog and serves the home page, the project gallery,
the site's static files and the JSON API. Each open gallery page runs its
own session over a WebSocket.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the site in a browser once listening")
	serveCmd.Flags().Bool("watch", false, "reload the catalog when it changes on disk (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch, _ = cmd.Flags().GetBool("watch")
	}

	// Graceful shutdown.
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
	source := catalog.NewSource(c)

	if cfg.Watch {
		if file := b.catalogFile(); file == "" {
			fmt.Fprintln(os.Stderr, "Warning: watch is only supported for local site directories")
		} else {
			w, err := catalog.NewWatcher(file, source, b.loadCatalog)
			if err != nil {
				return fmt.Errorf("watching catalog: %w", err)
			}
			if err := w.Start(); err != nil {
				return fmt.Errorf("watching catalog: %w", err)
			}
			defer w.Stop()
		}
	}

	// Open the preference database.
	var database *db.DB
	if dbPath := cfg.DatabasePath(); dbPath != "" {
		database, err = db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
	}

	srv, err := buildServer(cfg, b, source, database)
	if err != nil {
		return err
	}

	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d%s", ln.Addr().(*net.TCPAddr).Port, cfg.BasePath)
	fmt.Fprintf(os.Stderr, "folio %s serving %s\n", Version, url)
	fmt.Fprintf(os.Stderr, "  Site: %s\n", cfg.SiteDir)
	fmt.Fprintf(os.Stderr, "  Projects: %d\n", c.Len())
	if database != nil {
		fmt.Fprintf(os.Stderr, "  Preferences: %s\n", database.Path())
	}
	if cfg.Watch && b.catalogFile() != "" {
		fmt.Fprintf(os.Stderr, "  Watching: %s\n", b.catalogFile())
	}

	if open, _ := cmd.Flags().GetBool("open"); open {
		site.OpenBrowser(url)
	}

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
