// Package preview maps resource identifiers to preview-fetch URLs and
// recognizes host view URLs that must be rerouted to those previews.
package preview

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heiftools/heicbridge/format"
)

// DefaultPath is the preview endpoint path on the host server.
const DefaultPath = "/heic_preview"

// DefaultViewPath is the host's native view endpoint; any URL containing
// this path with a matching filename parameter is a rewrite candidate.
const DefaultViewPath = "/api/view"

// Resolver builds cache-busted preview-fetch URLs for annotated resource
// identifiers. String construction only; it never verifies the resource
// exists.
type Resolver struct {
	path string
	now  func() time.Time
}

// NewResolver creates a resolver for the given preview endpoint path.
// An empty path selects DefaultPath.
func NewResolver(path string) *Resolver {
	if path == "" {
		path = DefaultPath
	}
	return &Resolver{path: path, now: time.Now}
}

// WithClock returns a resolver using the given clock. Tests use this to pin
// the cache-busting token.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	return &Resolver{path: r.path, now: now}
}

// URL returns the preview-fetch URL for an annotated identifier:
// <path>?filename=<urlencoded id>&t=<unix ms>. The time token exists because
// browsers and the host key image caches on URL: a fresh upload reusing a
// prior filename must not serve a stale cached preview.
func (r *Resolver) URL(id string) string {
	q := url.Values{}
	q.Set("filename", id)
	q.Set("t", strconv.FormatInt(r.now().UnixMilli(), 10))
	return r.path + "?" + q.Encode()
}

// Rewriter recognizes host view URLs addressing unsupported-format resources
// and rewrites them to the preview endpoint. It is the single home for the
// match rule shared by the fetch interceptor, the image-source interceptor,
// and the sidecar proxy transport.
type Rewriter struct {
	viewPath   string
	classifier *format.Classifier
	resolver   *Resolver
}

// NewRewriter creates a rewriter. An empty viewPath selects DefaultViewPath.
func NewRewriter(viewPath string, c *format.Classifier, r *Resolver) *Rewriter {
	if viewPath == "" {
		viewPath = DefaultViewPath
	}
	if c == nil {
		c = format.Default()
	}
	if r == nil {
		r = NewResolver("")
	}
	return &Rewriter{viewPath: viewPath, classifier: c, resolver: r}
}

// Resolver returns the rewriter's underlying resolver.
func (w *Rewriter) Resolver() *Resolver { return w.resolver }

// ViewPath returns the view path the rewriter matches against.
func (w *Rewriter) ViewPath() string { return w.viewPath }

// PreviewPath returns the preview endpoint path rewrites resolve to.
func (w *Rewriter) PreviewPath() string { return w.resolver.path }

// Rewrite returns the preview URL for raw and true when raw addresses the
// view path with an unsupported-format filename parameter. Unparsable URLs
// and non-matching URLs return ("", false): interception must never break a
// request that does not match the pattern.
//
// When the view URL carries a non-empty subfolder parameter, it is folded
// into the annotated identifier, matching how the host server resolves
// annotated filepaths.
func (w *Rewriter) Rewrite(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if !strings.Contains(u.Path, w.viewPath) {
		return "", false
	}

	q := u.Query()
	filename := q.Get("filename")
	if filename == "" || !w.classifier.IsUnsupported(filename) {
		return "", false
	}

	id := filename
	if sub := q.Get("subfolder"); sub != "" {
		id = sub + "/" + filename
	}
	return w.resolver.URL(id), true
}

// Matches reports whether raw would be rewritten, without building the URL.
func (w *Rewriter) Matches(raw string) bool {
	_, ok := w.Rewrite(raw)
	return ok
}
