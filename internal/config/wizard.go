package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// siteDirCandidates are directories commonly holding a static site.
var siteDirCandidates = []string{"site", "docs", "public_html", "www"}

// detectSiteDir returns the first candidate directory that exists.
func detectSiteDir() string {
	for _, dir := range siteDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "site"
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to sitenav! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	sitePrompt := promptui.Prompt{
		Label:   "Site directory",
		Default: detectSiteDir(),
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir

	outputPrompt := promptui.Prompt{
		Label:   "Output directory",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	rootPrompt := promptui.Prompt{
		Label:   "URL path the site is served under",
		Default: cfg.SiteRoot,
		Validate: func(s string) error {
			if !strings.HasPrefix(s, "/") {
				return ErrInvalidSiteRoot
			}
			return nil
		},
	}
	if cfg.SiteRoot, err = rootPrompt.Run(); err != nil {
		return nil, fmt.Errorf("site root: %w", err)
	}

	sourcePrompt := promptui.Select{
		Label: "Where are the navigation partials?",
		Items: []string{
			"in the site directory (" + cfg.SidebarPartial + ")",
			"at a remote URL",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("partials source: %w", err)
	}
	if sourceIdx == 1 {
		urlPrompt := promptui.Prompt{Label: "Base URL of the partials"}
		if cfg.PartialsURL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("partials url: %w", err)
		}
	}

	sidebarPrompt := promptui.Select{
		Label: "Generate the sidebar from the site's pages?",
		Items: []string{"no", "yes"},
	}
	sidebarIdx, _, err := sidebarPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("generate sidebar: %w", err)
	}
	cfg.GenerateSidebar = sidebarIdx == 1

	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
