// Package format classifies filenames and MIME types against the set of
// image formats the host's native rendering path cannot decode.
package format

import (
	"sort"
	"strings"
)

// DefaultExtensions are the extensions the host cannot render natively.
var DefaultExtensions = []string{".heic", ".heif"}

// DefaultMIMETypes are the MIME types browsers report for those formats.
// Dragged files frequently carry an empty type instead; callers that inspect
// drag items must treat empty as potentially matching (see droprouter).
var DefaultMIMETypes = []string{
	"image/heic",
	"image/heif",
	"image/heic-sequence",
	"image/heif-sequence",
}

// Classifier decides whether a filename or MIME type belongs to the
// unsupported-format set. Pure and total: no side effects, no failure mode.
type Classifier struct {
	exts  []string
	mimes map[string]struct{}
}

// New builds a classifier from extension and MIME sets. Nil slices select
// the defaults. Extensions are stored lowercased; matching is
// case-insensitive on the filename side as well.
func New(exts, mimes []string) *Classifier {
	if exts == nil {
		exts = DefaultExtensions
	}
	if mimes == nil {
		mimes = DefaultMIMETypes
	}

	c := &Classifier{
		exts:  make([]string, 0, len(exts)),
		mimes: make(map[string]struct{}, len(mimes)),
	}
	for _, e := range exts {
		c.exts = append(c.exts, strings.ToLower(e))
	}
	for _, m := range mimes {
		c.mimes[strings.ToLower(m)] = struct{}{}
	}
	return c
}

// Default returns a classifier for the default HEIC/HEIF set.
func Default() *Classifier { return New(nil, nil) }

// IsUnsupported reports whether name ends with one of the configured
// extensions, ignoring case. Stray whitespace is not trimmed: a name ending
// in ".heic " is not a match, matching how the host server resolves names.
func (c *Classifier) IsUnsupported(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range c.exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// MatchesMIME reports whether mime is one of the configured MIME types.
func (c *Classifier) MatchesMIME(mime string) bool {
	_, ok := c.mimes[strings.ToLower(mime)]
	return ok
}

// Extensions returns the configured extension set (lowercased).
func (c *Classifier) Extensions() []string {
	out := make([]string, len(c.exts))
	copy(out, c.exts)
	return out
}

// MIMETypes returns the configured MIME set, sorted.
func (c *Classifier) MIMETypes() []string {
	out := make([]string, 0, len(c.mimes))
	for m := range c.mimes {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
