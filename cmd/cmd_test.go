package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := run(t, "", "resolve", "--root=", "/", "/guide/setup.html", "/a/b/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := "/\t./\n/guide/setup.html\t../\n/a/b/\t../../\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestResolveCommandMounted(t *testing.T) {
	out, err := run(t, "", "resolve", "--root=/docs/", "/docs/page.html", "/docs/guide/page.html")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := "/docs/page.html\t./\n/docs/guide/page.html\t../\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRewriteCommandStdin(t *testing.T) {
	fragment := `<a href="index.html">Home</a><a href="https://example.com">Ext</a>`
	out, err := run(t, fragment, "rewrite", "--base=../", "--path=", "--explain=false")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !strings.Contains(out, `<a href="../index.html">Home</a>`) {
		t.Errorf("relative link not rewritten: %q", out)
	}
	if !strings.Contains(out, `<a href="https://example.com">Ext</a>`) {
		t.Errorf("external link changed: %q", out)
	}
}

func TestRewriteCommandFromPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nav.html")
	if err := os.WriteFile(file, []byte(`<nav><a href="guide/setup.html">Setup</a></nav>`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "rewrite", "--base=", "--path=/a/b/page.html", "--root=", "--explain=false", file)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !strings.Contains(out, `<a href="../../guide/setup.html">Setup</a>`) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRewriteCommandExplain(t *testing.T) {
	fragment := `<a href="a.html">A</a><a href="mailto:x@example.com">M</a>`
	out, err := run(t, fragment, "rewrite", "--base=../", "--path=", "--explain")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	for _, want := range []string{"KIND", "a.html", "../a.html", "mailto:x@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("explain output missing %q:\n%s", want, out)
		}
	}
}

func TestRewriteCommandNeedsBase(t *testing.T) {
	if _, err := run(t, "<a href=\"x.html\">x</a>", "rewrite", "--base=", "--path="); err == nil {
		t.Error("expected error without --base or --path")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "sitenav "+Version+"\n" {
		t.Errorf("output = %q", out)
	}
}
