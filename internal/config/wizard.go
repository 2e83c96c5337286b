package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// siteDirCandidates are checked in order when guessing where the site lives.
var siteDirCandidates = []string{".", "site", "public", "www", "docs"}

// detectSiteDir returns the first candidate directory that already holds a
// catalog, or "." when none does.
func detectSiteDir() string {
	for _, dir := range siteDirCandidates {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(DefaultCatalog))); err == nil {
			return dir
		}
	}
	return "."
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your portfolio.")
	fmt.Println()

	cfg := DefaultConfig()
	cfg.SiteDir = detectSiteDir()
	if cfg.SiteDir != "." {
		fmt.Printf("Found a catalog under %s/\n\n", cfg.SiteDir)
	}

	// 1. Site directory.
	siteDir, err := (&promptui.Prompt{
		Label:   "Site directory or URL",
		Default: cfg.SiteDir,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("site directory: %w", err)
	}
	cfg.SiteDir = siteDir

	// 2. Catalog location.
	catalogPath, err := (&promptui.Prompt{
		Label:   "Catalog path inside the site (.json, .yaml or .toml)",
		Default: cfg.Catalog,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("catalog path: %w", err)
	}
	cfg.Catalog = catalogPath

	// 3. Site title.
	title, err := (&promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.SiteTitle = title

	// 4. Base path.
	basePath, err := (&promptui.Prompt{
		Label:   "Base path the site is served under",
		Default: cfg.BasePath,
		Validate: func(s string) error {
			if !strings.HasPrefix(s, "/") {
				return errors.New("must start with /")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("base path: %w", err)
	}
	cfg.BasePath = basePath

	// 5. Port.
	portStr, err := (&promptui.Prompt{
		Label:    "Port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 6. Extra exclude patterns.
	excludeStr, err := (&promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(append([]string{}, DefaultExcludes...), splitAndTrim(excludeStr)...)
	}

	// 7. Reload on change.
	watchPrompt := promptui.Select{
		Label: "Reload the catalog when it changes on disk?",
		Items: []string{"yes", "no"},
	}
	watchIdx, _, err := watchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("watch selection: %w", err)
	}
	cfg.Watch = watchIdx == 0 && !cfg.IsRemote()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("must be a number")
	}
	if n < 1 || n > 65535 {
		return errors.New("must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
