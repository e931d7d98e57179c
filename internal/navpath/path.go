// Package navpath computes the relative prefix that leads from a page back to
// the root of a static site.
package navpath

import "strings"

// Prefix is a relative path prefix such as "./" or "../../".
type Prefix string

// Current is the prefix for pages that sit in the site root directory.
const Current Prefix = "./"

// parent is the unit repeated once per directory level.
const parent = "../"

// URLPath is a URL pathname split into its non-empty segments.
type URLPath struct {
	Segments []string
	// LooksLikeFile reports whether the final segment contains a ".".
	LooksLikeFile bool
}

// Parse splits a pathname into segments, dropping empty ones.
func Parse(pathname string) URLPath {
	trimmed := strings.Trim(pathname, "/")
	var segments []string
	for _, s := range strings.Split(trimmed, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	p := URLPath{Segments: segments}
	if n := len(segments); n > 0 {
		p.LooksLikeFile = strings.Contains(segments[n-1], ".")
	}
	return p
}

// Depth is the number of directory levels between the site root and the
// directory that holds the page.
func (p URLPath) Depth() int {
	depth := len(p.Segments)
	if p.LooksLikeFile {
		depth--
	}
	return depth
}

// String rebuilds the pathname with a leading slash. A trailing slash is kept
// for directory paths.
func (p URLPath) String() string {
	if len(p.Segments) == 0 {
		return "/"
	}
	s := "/" + strings.Join(p.Segments, "/")
	if !p.LooksLikeFile {
		s += "/"
	}
	return s
}

// PrefixForDepth returns "../" repeated depth times, or "./" for depth zero
// and below.
func PrefixForDepth(depth int) Prefix {
	if depth <= 0 {
		return Current
	}
	return Prefix(strings.Repeat(parent, depth))
}

// ComputeBasePath returns the prefix that leads from the page at pathname to
// the site root, assuming the site is served from "/". Every segment counts,
// so "/docs/page.html" yields "../". Use a Resolver with Root "/docs/" for a
// site mounted under a prefix.
func ComputeBasePath(pathname string) Prefix {
	return Resolver{}.BasePath(pathname)
}

// Resolver computes base paths for a site mounted under Root, e.g. a project
// site served from "/docs/". The zero value resolves against "/".
type Resolver struct {
	Root string
}

// BasePath returns the prefix that leads from the page at pathname back to the
// site root. Pathnames outside Root are resolved as if Root were "/".
func (r Resolver) BasePath(pathname string) Prefix {
	if pathname == "/" || pathname == "/index.html" {
		return Current
	}
	p := Parse(r.relative(pathname))
	if len(p.Segments) == 0 {
		return Current
	}
	return PrefixForDepth(p.Depth())
}

// relative strips the mount root from pathname when pathname lies inside it.
func (r Resolver) relative(pathname string) string {
	root := NormalizeRoot(r.Root)
	if root == "" {
		return pathname
	}
	mount := "/" + root
	trimmed := "/" + strings.TrimLeft(pathname, "/")
	if trimmed == mount {
		return "/"
	}
	if strings.HasPrefix(trimmed, mount+"/") {
		return trimmed[len(mount):]
	}
	return pathname
}

// NormalizeRoot trims whitespace and surrounding slashes from a mount root.
// "", "/" and "  /  " all normalize to "".
func NormalizeRoot(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "/")
}

// Join applies the prefix to a root-relative target such as "includes/x.html".
func (p Prefix) Join(target string) string {
	return string(p) + strings.TrimLeft(target, "/")
}
