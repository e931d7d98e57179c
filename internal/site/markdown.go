package site

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/sitenav/internal/navlinks"
	"github.com/ziadkadry99/sitenav/internal/navpath"
)

// pageData holds the data passed to the page template.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	BasePath    navpath.Prefix
	Stylesheet  string
}

// markdownRenderer converts markdown sources into full HTML pages.
type markdownRenderer struct {
	md          goldmark.Markdown
	tmpl        *template.Template
	projectName string
}

func newMarkdownRenderer(projectName string) (*markdownRenderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &markdownRenderer{md: md, tmpl: tmpl, projectName: projectName}, nil
}

// Render converts a markdown source into a page carrying both navigation
// placeholders. base is the page's relative prefix to the site root.
func (r *markdownRenderer) Render(src []byte, relPath string, base navpath.Prefix) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	content, err := rewriteMDLinks(body.String())
	if err != nil {
		return nil, err
	}

	data := pageData{
		Title:       extractTitle(string(src), relPath),
		ProjectName: r.projectName,
		Content:     template.HTML(content),
		BasePath:    base,
		Stylesheet:  stylesheetName,
	}

	var out bytes.Buffer
	if err := r.tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return out.Bytes(), nil
}

// extractTitle pulls the first # heading from markdown content, or falls
// back to the file name.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
}

// rewriteMDLinks points site-relative links to markdown sources at their
// rendered HTML pages. Only a[href] values change; text and code are kept.
func rewriteMDLinks(content string) (string, error) {
	nodes, err := navlinks.ParseFragment(content)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		sel := goquery.NewDocumentFromNode(n).Selection
		sel.Find("a[href]").AddSelection(sel.Filter("a[href]")).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if navlinks.ClassifyHref(href).Rebased() {
				a.SetAttr("href", mdHrefToHTML(href))
			}
		})
	}
	return navlinks.RenderNodes(nodes)
}

// mdHrefToHTML swaps a trailing .md for .html, keeping any #fragment.
func mdHrefToHTML(href string) string {
	target, frag, hasFrag := strings.Cut(href, "#")
	if !strings.HasSuffix(target, ".md") {
		return href
	}
	target = strings.TrimSuffix(target, ".md") + ".html"
	if hasFrag {
		return target + "#" + frag
	}
	return target
}

// mdPathToHTML converts a markdown path to the path of its rendered page.
func mdPathToHTML(p string) string {
	for _, ext := range []string{".md", ".markdown"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext) + ".html"
		}
	}
	return p
}
