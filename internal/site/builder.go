// Package site builds a static site with its navigation partials injected
// into every page, and serves a site with navigation injected on the fly.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/sitenav/internal/config"
	"github.com/ziadkadry99/sitenav/internal/inject"
	"github.com/ziadkadry99/sitenav/internal/navpath"
	"github.com/ziadkadry99/sitenav/internal/partials"
	"github.com/ziadkadry99/sitenav/internal/progress"
	"github.com/ziadkadry99/sitenav/internal/walker"
)

// ErrNoPages is returned when the site directory holds no pages.
var ErrNoPages = errors.New("no pages found")

// Stats summarizes a build.
type Stats struct {
	Pages    int // pages written
	Injected int // pages that received at least one partial
	Skipped  int // pages already carrying navigation
	Fallback int // pages that got the fallback notice
	Assets   int // files copied verbatim
	// GeneratedSidebar is set when the sidebar came from the page tree.
	GeneratedSidebar bool
}

// Builder turns a site directory into an output directory with navigation
// injected into every page.
type Builder struct {
	Config   *config.Config
	Logger   *slog.Logger
	Reporter progress.Reporter
	// Source overrides where partials are loaded from.
	Source partials.Source
}

// NewBuilder creates a Builder for cfg.
func NewBuilder(cfg *config.Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		Config:   cfg,
		Logger:   logger,
		Reporter: progress.Nop{},
	}
}

// Build walks the site, injects navigation into every page and writes the
// result to the output directory.
func (b *Builder) Build(ctx context.Context) (*Stats, error) {
	cfg := b.Config
	siteDir, err := filepath.Abs(cfg.SiteDir)
	if err != nil {
		return nil, fmt.Errorf("resolving site dir: %w", err)
	}
	outDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output dir: %w", err)
	}
	inPlace := siteDir == outDir

	exclude := append([]string(nil), cfg.Exclude...)
	if rel, err := filepath.Rel(siteDir, outDir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		exclude = append(exclude, filepath.ToSlash(rel)+"/**")
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir:     siteDir,
		Include:     cfg.Include,
		Exclude:     exclude,
		PartialDirs: cfg.PartialDirs(),
	})
	if err != nil {
		return nil, err
	}

	pages := walker.Filter(files, walker.KindPage, walker.KindMarkdown)
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, siteDir)
	}

	stats := &Stats{}

	var generated string
	if cfg.GenerateSidebar {
		generated, err = b.generateSidebar(pages)
		if err != nil {
			return nil, err
		}
	}

	frags, usedGenerated, loadErr := b.loadFragments(ctx, siteDir, generated)
	if loadErr != nil {
		if cfg.Strict {
			return nil, fmt.Errorf("loading navigation: %w", loadErr)
		}
		b.Logger.Warn("navigation failed to load, pages get the fallback", "error", loadErr)
	}
	stats.GeneratedSidebar = usedGenerated

	md, err := newMarkdownRenderer(cfg.ProjectName)
	if err != nil {
		return nil, err
	}

	resolver := navpath.Resolver{Root: cfg.SiteRoot}
	var injector *inject.Injector
	if frags != nil {
		injector = &inject.Injector{
			Fragments:     frags,
			Resolver:      resolver,
			RewriteMobile: cfg.RewriteMobile,
		}
	}

	hasMarkdown := false
	b.Reporter.Start(len(pages))
	for i, f := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outRel := f.RelPath
		var content []byte
		if f.Kind == walker.KindMarkdown {
			hasMarkdown = true
			outRel = mdPathToHTML(f.RelPath)
			src, err := os.ReadFile(f.Path)
			if err != nil {
				return nil, err
			}
			content, err = md.Render(src, f.RelPath, resolver.BasePath(urlPathFor(cfg.SiteRoot, outRel)))
			if err != nil {
				return nil, fmt.Errorf("rendering %s: %w", f.RelPath, err)
			}
		} else {
			content, err = os.ReadFile(f.Path)
			if err != nil {
				return nil, err
			}
		}

		urlPath := urlPathFor(cfg.SiteRoot, outRel)
		if injector != nil {
			out, res, err := injector.Inject(urlPath, content)
			if err != nil {
				return nil, err
			}
			content = out
			switch {
			case res.Skipped:
				stats.Skipped++
			case res.Sidebar || res.Mobile:
				stats.Injected++
			}
			b.Logger.Debug("page built", "page", urlPath, "base", res.BasePath, "anchors", len(res.Anchors), "skipped", res.Skipped)
		} else {
			content, err = inject.Fallback(content)
			if err != nil {
				return nil, err
			}
			stats.Fallback++
		}

		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(outRel)), content); err != nil {
			return nil, err
		}
		stats.Pages++
		b.Reporter.Update(i+1, outRel)
	}
	b.Reporter.Finish()

	if !inPlace {
		for _, f := range walker.Filter(files, walker.KindAsset, walker.KindPartial) {
			if err := copyFile(f.Path, filepath.Join(outDir, filepath.FromSlash(f.RelPath))); err != nil {
				return nil, err
			}
			stats.Assets++
		}
	}

	if hasMarkdown {
		if err := writeFile(filepath.Join(outDir, stylesheetName), []byte(cssContent)); err != nil {
			return nil, err
		}
	}
	if usedGenerated {
		// Keep the generated sidebar next to the mobile partial for pages that
		// load navigation client-side.
		target := filepath.Join(outDir, filepath.FromSlash(cfg.SidebarPartial))
		if err := writeFile(target, []byte(generated)); err != nil {
			return nil, err
		}
	}

	b.Logger.Info("site built",
		"pages", stats.Pages,
		"injected", stats.Injected,
		"skipped", stats.Skipped,
		"fallback", stats.Fallback,
		"assets", stats.Assets,
	)
	return stats, nil
}

// source picks where partials come from: the explicit override, a remote
// base URL, or the site directory.
func (b *Builder) source(siteDir string) partials.Source {
	switch {
	case b.Source != nil:
		return b.Source
	case b.Config.PartialsURL != "":
		return partials.NewHTTPSource(b.Config.PartialsURL, b.Config.FetchTimeout())
	default:
		return partials.DirSource{FS: os.DirFS(siteDir)}
	}
}

// loadFragments loads both partials once for the whole build. When generated
// is non-empty it stands in for a sidebar partial that cannot be fetched.
func (b *Builder) loadFragments(ctx context.Context, siteDir, generated string) (*partials.Fragments, bool, error) {
	src := b.source(siteDir)
	var overlay *generatedSource
	if generated != "" {
		overlay = &generatedSource{Source: src, Name: b.Config.SidebarPartial, Data: generated}
		src = overlay
	}

	if timeout := b.Config.FetchTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	loader := &partials.Loader{
		Source:  src,
		Sidebar: b.Config.SidebarPartial,
		Mobile:  b.Config.MobilePartial,
		Logger:  b.Logger,
	}
	frags, err := loader.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	return frags, overlay != nil && overlay.used, nil
}

// generateSidebar builds a sidebar partial from the site's pages.
func (b *Builder) generateSidebar(pages []walker.File) (string, error) {
	titles := make(map[string]string, len(pages))
	paths := make([]string, 0, len(pages))
	for _, f := range pages {
		outRel := f.RelPath
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return "", err
		}
		if f.Kind == walker.KindMarkdown {
			outRel = mdPathToHTML(f.RelPath)
			titles[outRel] = extractTitle(string(data), f.RelPath)
		} else if title := htmlTitle(data); title != "" {
			titles[outRel] = title
		}
		paths = append(paths, outRel)
	}
	return partials.BuildTree(paths, titles).SidebarHTML(b.Config.ProjectName), nil
}

// generatedSource serves Data for Name when the wrapped Source cannot
// deliver it.
type generatedSource struct {
	partials.Source
	Name string
	Data string
	used bool
}

func (g *generatedSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := g.Source.Fetch(ctx, name)
	if err != nil && name == g.Name {
		g.used = true
		return []byte(g.Data), nil
	}
	return data, err
}

// htmlTitle returns the display title of an HTML page, or "".
func htmlTitle(page []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}
	return inject.PageTitle(doc)
}

// urlPathFor returns the URL pathname a page is served at.
func urlPathFor(siteRoot, relPath string) string {
	return path.Join("/", navpath.NormalizeRoot(siteRoot), relPath)
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
