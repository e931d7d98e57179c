package config

import (
	"path"
	"time"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".sitenav.yml"

// DefaultExcludes are glob patterns excluded from builds by default.
var DefaultExcludes = []string{
	"**/.DS_Store",
	"*.swp",
	".sitenav.yml",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDir:             "site",
		OutputDir:           "public",
		SiteRoot:            "/",
		SidebarPartial:      "includes/nav-sidebar.html",
		MobilePartial:       "includes/nav-mobile.html",
		ProjectName:         "Documentation",
		Include:             []string{"**"},
		Exclude:             append([]string(nil), DefaultExcludes...),
		FetchTimeoutSeconds: 10,
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// FetchTimeout returns the partial fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// PartialDirs returns the site-relative directories holding the partials.
func (c *Config) PartialDirs() []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range []string{c.SidebarPartial, c.MobilePartial} {
		dir := path.Dir(path.Clean("/" + p))
		if dir == "/" || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir[1:])
	}
	return dirs
}
