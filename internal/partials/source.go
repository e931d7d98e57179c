package partials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// ErrFetch is wrapped by every error a Source returns for a partial it could
// not deliver.
var ErrFetch = errors.New("fetching partial")

// maxPartialSize bounds the body read from a remote partial.
const maxPartialSize = 1 << 20

// Source delivers the raw bytes of a partial by its site-relative name, e.g.
// "includes/nav-sidebar.html".
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads partials from a file system rooted at the site directory.
type DirSource struct {
	FS fs.FS
}

// Fetch implements Source.
func (s DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(s.FS, clean)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, name, err)
	}
	return data, nil
}

// HTTPSource performs a GET against BaseURL joined with the partial name.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource returns an HTTPSource with its own client and timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target, err := s.resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, name, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %s: status %d", ErrFetch, name, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPartialSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w %s: reading body: %w", ErrFetch, name, err)
	}
	if len(data) > maxPartialSize {
		return nil, fmt.Errorf("%w %s: partial exceeds %d bytes", ErrFetch, name, maxPartialSize)
	}
	return data, nil
}

func (s *HTTPSource) resolve(name string) (string, error) {
	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimPrefix(name, "/"))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
