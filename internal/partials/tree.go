package partials

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
)

// Tree is a node in the page tree used to generate a sidebar partial.
type Tree struct {
	Name     string
	Title    string // display name; page <title> or a formatted directory name
	Path     string // site-relative path of the page or directory
	IsDir    bool
	Children []*Tree
}

// BuildTree constructs a Tree from site-relative page paths such as
// "guide/setup.html". titles optionally maps a page path to its display name.
func BuildTree(pages []string, titles map[string]string) *Tree {
	root := &Tree{Name: "", IsDir: true}

	for _, p := range pages {
		p = strings.TrimPrefix(path.Clean("/"+p), "/")
		if p == "" {
			continue
		}
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			child := current.child(part, !isLast)
			if child == nil {
				child = &Tree{Name: part, IsDir: !isLast}
				if isLast {
					child.Path = p
					child.Title = titles[p]
				} else {
					child.Path = strings.Join(parts[:i+1], "/")
					child.Title = formatDirName(part)
				}
				current.Children = append(current.Children, child)
			}
			current = child
		}
	}

	root.sort()
	return root
}

func (t *Tree) child(name string, isDir bool) *Tree {
	for _, c := range t.Children {
		if c.Name == name && c.IsDir == isDir {
			return c
		}
	}
	return nil
}

// sort orders children directories first, then alphabetically.
func (t *Tree) sort() {
	sort.Slice(t.Children, func(i, j int) bool {
		if t.Children[i].IsDir != t.Children[j].IsDir {
			return t.Children[i].IsDir
		}
		return t.Children[i].Name < t.Children[j].Name
	})
	for _, c := range t.Children {
		if c.IsDir {
			c.sort()
		}
	}
}

// SidebarHTML renders the tree as a sidebar partial. Links are relative to
// the site root and are rebased per page when the partial is injected.
func (t *Tree) SidebarHTML(projectName string) string {
	var b strings.Builder
	b.WriteString(`<nav class="sidebar">` + "\n")
	if projectName != "" {
		fmt.Fprintf(&b, `<div class="sidebar-title">%s</div>`+"\n", html.EscapeString(projectName))
	}
	b.WriteString(`<ul><li class="file home-link"><a href="index.html">Home</a></li></ul>` + "\n")
	t.renderChildren(&b)
	b.WriteString("</nav>\n")
	return b.String()
}

func (t *Tree) renderChildren(b *strings.Builder) {
	if len(t.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, c := range t.Children {
		if c.IsDir {
			fmt.Fprintf(b, `<li class="dir"><span class="dir-toggle">%s</span>`+"\n", html.EscapeString(c.label()))
			c.renderChildren(b)
			b.WriteString("</li>\n")
			continue
		}
		if c.Path == "index.html" {
			continue
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s">%s</a></li>`+"\n",
			html.EscapeString(c.Path), html.EscapeString(c.label()))
	}
	b.WriteString("</ul>\n")
}

func (t *Tree) label() string {
	if t.Title != "" {
		return t.Title
	}
	return strings.TrimSuffix(t.Name, path.Ext(t.Name))
}

// formatDirName title-cases a directory slug: "getting-started" -> "Getting Started".
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
