// Package partials loads the shared navigation partials that get injected
// into every page, and can generate a sidebar partial from the site's pages.
package partials

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Default partial locations, relative to the site root.
const (
	DefaultSidebar = "includes/nav-sidebar.html"
	DefaultMobile  = "includes/nav-mobile.html"
)

// Fragments holds the raw HTML of both navigation partials.
type Fragments struct {
	Sidebar string
	Mobile  string
}

// Loader fetches the sidebar and mobile partials from a Source.
type Loader struct {
	Source  Source
	Sidebar string
	Mobile  string
	Logger  *slog.Logger
}

// NewLoader returns a Loader for the default partial locations.
func NewLoader(src Source) *Loader {
	return &Loader{
		Source:  src,
		Sidebar: DefaultSidebar,
		Mobile:  DefaultMobile,
	}
}

// Load fetches both partials concurrently. Either failure fails the load.
func (l *Loader) Load(ctx context.Context) (*Fragments, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sidebarName := orDefault(l.Sidebar, DefaultSidebar)
	mobileName := orDefault(l.Mobile, DefaultMobile)

	logger.Debug("loading navigation", "sidebar", sidebarName, "mobile", mobileName)

	var sidebar, mobile []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.Source.Fetch(gctx, sidebarName)
		if err != nil {
			return fmt.Errorf("failed to load sidebar: %w", err)
		}
		sidebar = data
		return nil
	})
	g.Go(func() error {
		data, err := l.Source.Fetch(gctx, mobileName)
		if err != nil {
			return fmt.Errorf("failed to load mobile nav: %w", err)
		}
		mobile = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Fragments{Sidebar: string(sidebar), Mobile: string(mobile)}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
