package walker

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Kind tells the builder what to do with a file.
type Kind int

const (
	// KindAsset is copied verbatim.
	KindAsset Kind = iota
	// KindPage is an HTML page that receives navigation.
	KindPage
	// KindMarkdown is rendered to an HTML page first.
	KindMarkdown
	// KindPartial is a navigation partial; copied verbatim, never injected.
	KindPartial
)

// File is a single file discovered during traversal.
type File struct {
	Path    string // Path on disk.
	RelPath string // Slash-separated path relative to the site root.
	Size    int64
	Kind    Kind
}

// WalkerConfig controls the behaviour of Walk.
type WalkerConfig struct {
	RootDir string
	Include []string // Glob patterns; only matching files are walked.
	Exclude []string // Glob patterns; matching files are skipped.
	// PartialDirs are site-relative directories that hold partials.
	PartialDirs []string
}

// Walk traverses the site rooted at config.RootDir and returns every file
// that passes filtering, sorted by RelPath.
func Walk(config WalkerConfig) ([]File, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	var files []File
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if p != root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if !MatchesInclude(relPath, config.Include) || MatchesExclude(relPath, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		files = append(files, File{
			Path:    p,
			RelPath: relPath,
			Size:    info.Size(),
			Kind:    classify(relPath, config.PartialDirs),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func classify(relPath string, partialDirs []string) Kind {
	for _, dir := range partialDirs {
		dir = strings.Trim(path.Clean("/"+dir), "/")
		if dir != "" && strings.HasPrefix(relPath, dir+"/") {
			return KindPartial
		}
	}
	switch strings.ToLower(path.Ext(relPath)) {
	case ".html", ".htm":
		return KindPage
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return KindAsset
	}
}

// Filter returns the files of the given kinds.
func Filter(files []File, kinds ...Kind) []File {
	var out []File
	for _, f := range files {
		for _, k := range kinds {
			if f.Kind == k {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
