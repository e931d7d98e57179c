package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SiteDir != "site" {
		t.Errorf("expected default site_dir %q, got %q", "site", cfg.SiteDir)
	}
	if cfg.SiteRoot != "/" {
		t.Errorf("expected default site_root /, got %q", cfg.SiteRoot)
	}
	if cfg.SidebarPartial != "includes/nav-sidebar.html" {
		t.Errorf("unexpected sidebar partial %q", cfg.SidebarPartial)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.FetchTimeout() != 10*time.Second {
		t.Errorf("expected 10s fetch timeout, got %v", cfg.FetchTimeout())
	}
}

func TestDefaultExcludesNotShared(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude[0] = "changed"
	if DefaultExcludes[0] == "changed" {
		t.Error("DefaultConfig should copy DefaultExcludes")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sitenav.yml")

	original := DefaultConfig()
	original.SiteDir = "docs"
	original.OutputDir = "out"
	original.SiteRoot = "/project/"
	original.RewriteMobile = true
	original.Include = []string{"**/*.html", "**/*.md"}
	original.Exclude = []string{"drafts/**"}
	original.Server.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.SiteDir != original.SiteDir {
		t.Errorf("site_dir: got %q, want %q", loaded.SiteDir, original.SiteDir)
	}
	if loaded.SiteRoot != original.SiteRoot {
		t.Errorf("site_root: got %q, want %q", loaded.SiteRoot, original.SiteRoot)
	}
	if !loaded.RewriteMobile {
		t.Error("rewrite_mobile: got false, want true")
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("server.port: got %d, want 9000", loaded.Server.Port)
	}
	if !reflect.DeepEqual(loaded.Include, original.Include) {
		t.Errorf("include: got %v, want %v", loaded.Include, original.Include)
	}
	if !reflect.DeepEqual(loaded.Exclude, original.Exclude) {
		t.Errorf("exclude: got %v, want %v", loaded.Exclude, original.Exclude)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("output_dir: dist\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("output_dir: got %q, want dist", cfg.OutputDir)
	}
	if cfg.SiteDir != "site" || cfg.Server.Port != 8080 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Exclude, DefaultExcludes) {
		t.Errorf("exclude: got %v, want defaults", cfg.Exclude)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected default output_dir, got %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SITENAV_SITE_ROOT", "/docs/")
	t.Setenv("SITENAV_SERVER__PORT", "3000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SiteRoot != "/docs/" {
		t.Errorf("env override failed: got %q", loaded.SiteRoot)
	}
	if loaded.Server.Port != 3000 {
		t.Errorf("nested env override failed: got %d", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"empty site dir", func(c *Config) { c.SiteDir = " " }, ErrEmptySiteDir},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, ErrEmptyOutputDir},
		{"empty partial", func(c *Config) { c.MobilePartial = "" }, ErrEmptyPartial},
		{"relative root", func(c *Config) { c.SiteRoot = "docs/" }, ErrInvalidSiteRoot},
		{"bad partials url", func(c *Config) { c.PartialsURL = "ftp://x/" }, ErrInvalidPartialsURL},
		{"url without host", func(c *Config) { c.PartialsURL = "https:///a" }, ErrInvalidPartialsURL},
		{"good partials url", func(c *Config) { c.PartialsURL = "https://example.com/site/" }, nil},
		{"zero timeout", func(c *Config) { c.FetchTimeoutSeconds = 0 }, ErrInvalidFetchTimeout},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, ErrInvalidPort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPartialDirs(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.PartialDirs(); !reflect.DeepEqual(got, []string{"includes"}) {
		t.Errorf("PartialDirs = %v", got)
	}

	cfg.SidebarPartial = "nav/side.html"
	cfg.MobilePartial = "mobile.html"
	if got := cfg.PartialDirs(); !reflect.DeepEqual(got, []string{"nav"}) {
		t.Errorf("PartialDirs = %v", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		if got := splitAndTrim(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
