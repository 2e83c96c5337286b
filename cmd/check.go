package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/gallery"
	"github.com/ctt011/folio/internal/progress"
	"github.com/ctt011/folio/internal/walker"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalog and every project's files",
	Long: `Loads the catalog, then resolves every project's source files and local
images exactly as the gallery would. Files that would show an error
placeholder are reported and the command exits non-zero.`,
	Run: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	exitOnError(err)

	ctx := cmd.Context()
	b, err := newBackend(cfg)
	exitOnError(err)
	c, err := b.loadCatalog(ctx)
	exitOnError(err)

	fmt.Fprintf(os.Stderr, "Catalog %s: %d projects, years %s, tags %s\n",
		cfg.Catalog, c.Len(), strings.Join(c.Years(), " "), strings.Join(c.Tags(), " "))

	loader := gallery.NewSourceLoader(b.sources, cfg.MaxConcurrency)
	reporter := progress.NewReporter("Checking sources")
	reporter.Start(c.Len())

	var problems []string
	for i, p := range c.Projects() {
		reporter.Update(i+1, p.Slug)
		problems = append(problems, checkImage(cmd, b, p)...)
		for _, a := range loader.Load(ctx, p.SourceFiles) {
			if a.Err != nil {
				problems = append(problems, fmt.Sprintf("%s: %s: %v", p.Slug, a.Filename, a.Err))
			} else if verbose {
				fmt.Fprintf(os.Stderr, "  %s: %s ok\n", p.Slug, a.Filename)
			}
		}
	}
	reporter.Finish()

	reportUnreferenced(b, c)

	if len(problems) > 0 {
		for _, msg := range problems {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
		exitOnError(fmt.Errorf("%d problem(s) found", len(problems)))
	}
	fmt.Fprintf(os.Stderr, "All %d projects OK\n", c.Len())
}

// checkImage verifies a project's image resolves the way the gallery page
// would load it. Remote images are not fetched.
func checkImage(cmd *cobra.Command, b *backend, p catalog.Project) []string {
	if p.Image == "" || strings.Contains(p.Image, "://") || strings.HasPrefix(p.Image, "data:") {
		return nil
	}
	if _, err := b.sources.Fetch(cmd.Context(), p.Image); err != nil {
		return []string{fmt.Sprintf("%s: image %s: %v", p.Slug, p.Image, err)}
	}
	return nil
}

// reportUnreferenced lists source files next to a local catalog that no
// project shows. They are reported but do not fail the check.
func reportUnreferenced(b *backend, c *catalog.Catalog) {
	if b.files == nil {
		return
	}
	dir := b.cfg.CatalogDir()
	fsys := b.files
	if dir != "." {
		sub, err := fs.Sub(b.files, dir)
		if err != nil {
			return
		}
		fsys = sub
	}

	files, err := walker.Walk(fsys, walker.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scanning %s: %v\n", dir, err)
		return
	}
	orphans := walker.Unreferenced(files, c)
	if len(orphans) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d source file(s) not listed by any project:\n", len(orphans))
	for _, f := range orphans {
		fmt.Fprintf(os.Stderr, "  %s (%s)\n", f.RelPath, f.Language)
	}
}
