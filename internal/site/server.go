package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/sitenav/internal/config"
	"github.com/ziadkadry99/sitenav/internal/inject"
	"github.com/ziadkadry99/sitenav/internal/navpath"
	"github.com/ziadkadry99/sitenav/internal/partials"
)

// Server serves a site directory and injects navigation into HTML pages as
// they are requested. Partials are re-read on every request so edits show
// up without a rebuild.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	site       fs.FS
	source     partials.Source
	markdown   *markdownRenderer
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a Server for cfg.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	md, err := newMarkdownRenderer(cfg.ProjectName)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		site:     os.DirFS(cfg.SiteDir),
		markdown: md,
	}
	b := &Builder{Config: cfg}
	s.source = b.source(cfg.SiteDir)
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.Server.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/*", s.handleSite)
	r.Head("/*", s.handleSite)

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// handleSite serves one file of the site. HTML pages, and markdown sources
// requested by their .html name, get navigation injected.
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	// The mount root without its trailing slash would resolve relative links
	// against the parent of the mount.
	if root := navpath.NormalizeRoot(s.cfg.SiteRoot); root != "" && path.Clean("/"+r.URL.Path) == "/"+root && !strings.HasSuffix(r.URL.Path, "/") {
		http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
		return
	}

	rel, ok := s.sitePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}
	if info, err := fs.Stat(s.site, rel); err == nil && info.IsDir() {
		http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
		return
	}

	if s.isPartial(rel) || !isPageName(rel) {
		http.ServeFileFS(w, r, s.site, rel)
		return
	}

	page, err := s.loadPage(rel, r.URL.Path)
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("loading page", "page", rel, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out, err := s.injectPage(r.Context(), r.URL.Path, page)
	if err != nil {
		s.logger.Error("injecting navigation", "page", rel, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if r.Method == http.MethodHead {
		return
	}
	w.Write(out)
}

// loadPage reads an HTML page, or renders the markdown source it was built from.
func (s *Server) loadPage(rel, urlPath string) ([]byte, error) {
	page, err := fs.ReadFile(s.site, rel)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return page, err
	}
	base := strings.TrimSuffix(rel, path.Ext(rel))
	for _, ext := range []string{".md", ".markdown"} {
		src, err := fs.ReadFile(s.site, base+ext)
		if err != nil {
			continue
		}
		resolver := navpath.Resolver{Root: s.cfg.SiteRoot}
		return s.markdown.Render(src, base+ext, resolver.BasePath(urlPath))
	}
	return nil, err
}

// injectPage loads the partials for this request and injects them, or
// applies the fallback when they cannot be loaded.
func (s *Server) injectPage(ctx context.Context, urlPath string, page []byte) ([]byte, error) {
	if timeout := s.cfg.FetchTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	loader := &partials.Loader{
		Source:  s.source,
		Sidebar: s.cfg.SidebarPartial,
		Mobile:  s.cfg.MobilePartial,
		Logger:  s.logger,
	}
	frags, err := loader.Load(ctx)
	if err != nil {
		s.logger.Warn("navigation failed to load", "page", urlPath, "error", err)
		return inject.Fallback(page)
	}
	injector := &inject.Injector{
		Fragments:     frags,
		Resolver:      navpath.Resolver{Root: s.cfg.SiteRoot},
		RewriteMobile: s.cfg.RewriteMobile,
	}
	out, res, err := injector.Inject(urlPath, page)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("navigation injected", "page", urlPath, "base", res.BasePath, "anchors", len(res.Anchors))
	return out, nil
}

// sitePath maps a request path to a slash-separated path inside the site
// directory. Requests outside the mount root are rejected.
func (s *Server) sitePath(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") && clean != "/" {
		clean += "/"
	}
	root := navpath.NormalizeRoot(s.cfg.SiteRoot)
	if root != "" {
		mount := "/" + root
		switch {
		case clean == mount:
			clean = "/"
		case strings.HasPrefix(clean, mount+"/"):
			clean = clean[len(mount):]
		default:
			return "", false
		}
	}
	return strings.TrimPrefix(clean, "/"), true
}

func (s *Server) isPartial(rel string) bool {
	for _, dir := range s.cfg.PartialDirs() {
		if strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

func isPageName(rel string) bool {
	switch strings.ToLower(path.Ext(rel)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("sitenav server listening", "addr", addr, "site", s.cfg.SiteDir, "root", s.cfg.SiteRoot)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
