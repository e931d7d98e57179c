// Package navlinks rewrites the anchors of an HTML navigation fragment so the
// fragment stays valid when it is included into a page at any directory depth.
package navlinks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/sitenav/internal/navpath"
)

// Kind classifies an anchor href.
type Kind int

const (
	// KindRelative is a plain relative path such as "includes/x.html".
	KindRelative Kind = iota
	// KindParentRelative starts with "../".
	KindParentRelative
	// KindExternal starts with "http".
	KindExternal
	// KindMailto starts with "mailto:".
	KindMailto
	// KindFragment starts with "#".
	KindFragment
	// KindAbsolute starts with "/".
	KindAbsolute
)

var kindNames = map[Kind]string{
	KindRelative:       "relative",
	KindParentRelative: "parent-relative",
	KindExternal:       "external",
	KindMailto:         "mailto",
	KindFragment:       "fragment",
	KindAbsolute:       "absolute",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rebased reports whether hrefs of this kind are rewritten.
func (k Kind) Rebased() bool {
	return k == KindRelative || k == KindParentRelative
}

// AnchorRecord describes one anchor seen during a rewrite.
type AnchorRecord struct {
	Original  string
	Kind      Kind
	Rewritten string
}

// Changed reports whether the href was modified.
func (a AnchorRecord) Changed() bool {
	return a.Original != a.Rewritten
}

// ClassifyHref decides how an href is treated. Anything starting with "http",
// in any letter case, counts as external.
func ClassifyHref(href string) Kind {
	switch {
	case len(href) >= 4 && strings.EqualFold(href[:4], "http"):
		return KindExternal
	case strings.HasPrefix(href, "mailto:"):
		return KindMailto
	case strings.HasPrefix(href, "#"):
		return KindFragment
	case strings.HasPrefix(href, "../"):
		return KindParentRelative
	case strings.HasPrefix(href, "/"):
		return KindAbsolute
	default:
		return KindRelative
	}
}

// RewriteHref returns href as seen from a page whose base path is base.
//
// A "../" href loses exactly one leading "../" before base is prepended, so
// with base "./" the link "../a.html" becomes "./a.html".
func RewriteHref(href string, base navpath.Prefix) string {
	switch ClassifyHref(href) {
	case KindParentRelative:
		return string(base) + strings.TrimPrefix(href, "../")
	case KindRelative:
		return string(base) + href
	default:
		return href
	}
}

// RewriteLinks rewrites every a[href] in fragment relative to base and
// returns the serialized fragment.
func RewriteLinks(fragment string, base navpath.Prefix) (string, error) {
	out, _, err := Rewrite(fragment, base)
	return out, err
}

// Rewrite is RewriteLinks that also reports one record per anchor, in
// document order.
func Rewrite(fragment string, base navpath.Prefix) (string, []AnchorRecord, error) {
	nodes, err := ParseFragment(fragment)
	if err != nil {
		return "", nil, err
	}
	records := RewriteNodes(nodes, base)
	out, err := RenderNodes(nodes)
	if err != nil {
		return "", nil, err
	}
	return out, records, nil
}

// RewriteNodes rewrites the anchors found in nodes and their descendants in
// place.
func RewriteNodes(nodes []*html.Node, base navpath.Prefix) []AnchorRecord {
	var records []AnchorRecord
	for _, n := range nodes {
		sel := goquery.NewDocumentFromNode(n).Selection
		anchors := sel.Find("a[href]")
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if _, ok := sel.Attr("href"); ok {
				anchors = sel.AddSelection(anchors)
			}
		}
		anchors.Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			rec := AnchorRecord{
				Original:  href,
				Kind:      ClassifyHref(href),
				Rewritten: RewriteHref(href, base),
			}
			if rec.Changed() {
				a.SetAttr("href", rec.Rewritten)
			}
			records = append(records, rec)
		})
	}
	return records
}

// ParseFragment parses an HTML fragment as it would appear inside <body>.
func ParseFragment(fragment string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return nodes, nil
}

// RenderNodes serializes nodes back to HTML.
func RenderNodes(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering fragment: %w", err)
		}
	}
	return buf.String(), nil
}
