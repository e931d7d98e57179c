// Package inject replaces the navigation placeholders of an HTML page with the
// shared navigation partials.
//
// A page marks where navigation goes with placeholder elements:
//
//	<div data-nav-placeholder="sidebar"></div>
//	<div data-nav-placeholder="mobile"></div>
//
// Each placeholder is replaced as a whole by the corresponding partial. The
// sidebar partial has its links rebased for the page's directory depth first.
// After injection the element marked data-page-title receives the page title,
// and <body> is marked so a second pass over the same page is a no-op.
package inject

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/sitenav/internal/navlinks"
	"github.com/ziadkadry99/sitenav/internal/navpath"
	"github.com/ziadkadry99/sitenav/internal/partials"
)

// Placeholder attribute values and markers.
const (
	PlaceholderAttr = "data-nav-placeholder"
	SidebarSlot     = "sidebar"
	MobileSlot      = "mobile"
	PageTitleAttr   = "data-page-title"
	InjectedAttr    = "data-nav-injected"

	// FallbackHTML is shown inside every placeholder when the partials could
	// not be loaded.
	FallbackHTML = `<p style="color: #666; padding: 1rem;">Navigation failed to load</p>`
)

// titleSeparator splits "Page - Site" page titles.
const titleSeparator = " - "

// Injector injects a fixed pair of fragments into pages.
type Injector struct {
	Fragments *partials.Fragments
	Resolver  navpath.Resolver
	// RewriteMobile also rebases the links of the mobile partial. Off by
	// default: the mobile partial usually carries no relative links.
	RewriteMobile bool
}

// Result reports what Inject did to a page.
type Result struct {
	BasePath     navpath.Prefix
	Sidebar      bool
	Mobile       bool
	TitleUpdated bool
	Skipped      bool
	Anchors      []navlinks.AnchorRecord
}

// Inject returns page with its placeholders replaced. urlPath is the page's
// URL pathname and determines the base path applied to the sidebar links.
// Missing placeholders are left alone.
func (in *Injector) Inject(urlPath string, page []byte) ([]byte, *Result, error) {
	if in.Fragments == nil {
		return nil, nil, fmt.Errorf("injecting %s: no fragments loaded", urlPath)
	}

	doc, err := parseDocument(page)
	if err != nil {
		return nil, nil, err
	}

	res := &Result{BasePath: in.Resolver.BasePath(urlPath)}

	body := doc.Find("body").First()
	if _, done := body.Attr(InjectedAttr); done {
		res.Skipped = true
		return page, res, nil
	}

	slot := doc.Find(slotSelector(SidebarSlot)).First()
	if slot.Length() > 0 {
		nodes, err := navlinks.ParseFragment(in.Fragments.Sidebar)
		if err != nil {
			return nil, nil, fmt.Errorf("injecting sidebar into %s: %w", urlPath, err)
		}
		res.Anchors = append(res.Anchors, navlinks.RewriteNodes(nodes, res.BasePath)...)
		slot.ReplaceWithNodes(nodes...)
		res.Sidebar = true
	}

	slot = doc.Find(slotSelector(MobileSlot)).First()
	if slot.Length() > 0 {
		nodes, err := navlinks.ParseFragment(in.Fragments.Mobile)
		if err != nil {
			return nil, nil, fmt.Errorf("injecting mobile nav into %s: %w", urlPath, err)
		}
		if in.RewriteMobile {
			res.Anchors = append(res.Anchors, navlinks.RewriteNodes(nodes, res.BasePath)...)
		}
		slot.ReplaceWithNodes(nodes...)
		res.Mobile = true
	}

	res.TitleUpdated = updatePageTitle(doc)

	if res.Sidebar || res.Mobile {
		body.SetAttr(InjectedAttr, "true")
	}

	out, err := render(doc)
	if err != nil {
		return nil, nil, err
	}
	return out, res, nil
}

// Fallback makes every placeholder visible with a short notice. It is used
// when the partials could not be loaded.
func Fallback(page []byte) ([]byte, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}
	doc.Find("[" + PlaceholderAttr + "]").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("style", "display: block")
		s.SetHtml(FallbackHTML)
	})
	return render(doc)
}

// PageTitle returns the part of the document title before the first " - ".
func PageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if i := strings.Index(title, titleSeparator); i >= 0 {
		title = title[:i]
	}
	return title
}

// updatePageTitle copies the page title into the data-page-title element.
// Pages without a title keep whatever the element holds.
func updatePageTitle(doc *goquery.Document) bool {
	target := doc.Find("[" + PageTitleAttr + "]").First()
	if target.Length() == 0 {
		return false
	}
	title := PageTitle(doc)
	if title == "" {
		return false
	}
	target.SetText(title)
	return true
}

func slotSelector(slot string) string {
	return fmt.Sprintf(`[%s="%s"]`, PlaceholderAttr, slot)
}

func parseDocument(page []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

func render(doc *goquery.Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("rendering page: %w", err)
		}
	}
	return buf.Bytes(), nil
}
