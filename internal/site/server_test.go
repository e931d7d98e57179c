package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ziadkadry99/sitenav/internal/config"
	"github.com/ziadkadry99/sitenav/internal/logging"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	s, err := NewServer(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Healthz(t *testing.T) {
	ts := newTestServer(t, testConfig(t))

	code, body := get(t, ts, "/healthz")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body != `{"status":"ok"}` {
		t.Errorf("body = %q", body)
	}
}

func TestServer_InjectsPages(t *testing.T) {
	ts := newTestServer(t, testConfig(t))

	tests := []struct {
		path string
		want string
	}{
		{"/", `<a href="./about.html">About</a>`},
		{"/index.html", `<a href="./guide/setup.html">Setup</a>`},
		{"/guide/setup.html", `<a href="../about.html">About</a>`},
		{"/guide/advanced/tuning.html", `<a href="../../index.html">Home</a>`},
		{"/about.html", `data-page-title="">About</span>`},
	}
	for _, tt := range tests {
		code, body := get(t, ts, tt.path)
		if code != http.StatusOK {
			t.Errorf("GET %s: status = %d", tt.path, code)
			continue
		}
		if !strings.Contains(body, tt.want) {
			t.Errorf("GET %s: body missing %q", tt.path, tt.want)
		}
	}
}

func TestServer_PassesThroughAssetsAndPartials(t *testing.T) {
	ts := newTestServer(t, testConfig(t))

	code, body := get(t, ts, "/includes/nav-sidebar.html")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, `<a href="index.html">Home</a>`) || strings.Contains(body, "data-nav-injected") {
		t.Errorf("partial should be served untouched:\n%s", body)
	}

	code, _ = get(t, ts, "/assets/style.css")
	if code != http.StatusOK {
		t.Errorf("asset status = %d", code)
	}
}

func TestServer_NotFound(t *testing.T) {
	ts := newTestServer(t, testConfig(t))

	if code, _ := get(t, ts, "/missing.html"); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestServer_FallbackWhenPartialMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.SidebarPartial = "includes/missing.html"
	ts := newTestServer(t, cfg)

	code, body := get(t, ts, "/guide/setup.html")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, "Navigation failed to load") {
		t.Errorf("fallback notice missing:\n%s", body)
	}
}

func TestServer_MountedRoot(t *testing.T) {
	cfg := testConfig(t)
	cfg.SiteRoot = "/docs/"
	ts := newTestServer(t, cfg)

	if code, _ := get(t, ts, "/guide/setup.html"); code != http.StatusNotFound {
		t.Errorf("request outside the mount: status = %d, want 404", code)
	}

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(ts.URL + "/docs")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMovedPermanently {
		t.Errorf("GET /docs: status = %d, want 301", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/docs/" {
		t.Errorf("GET /docs: Location = %q, want /docs/", loc)
	}

	code, body := get(t, ts, "/docs/")
	if code != http.StatusOK {
		t.Fatalf("GET /docs/: status = %d", code)
	}
	if !strings.Contains(body, `<a href="./about.html">About</a>`) {
		t.Errorf("mount index not rebased:\n%s", body)
	}

	code, body = get(t, ts, "/docs/guide/setup.html")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, `<a href="../about.html">About</a>`) {
		t.Errorf("mounted page not rebased:\n%s", body)
	}
}

func TestServer_DirectoryRedirect(t *testing.T) {
	ts := newTestServer(t, testConfig(t))
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	resp, err := client.Get(ts.URL + "/guide")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMovedPermanently {
		t.Errorf("status = %d, want 301", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/guide/" {
		t.Errorf("Location = %q", loc)
	}
}
