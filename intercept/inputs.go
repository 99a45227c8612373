package intercept

import (
	"strings"

	"github.com/heiftools/heicbridge/format"
	"github.com/heiftools/heicbridge/host"
	"github.com/heiftools/heicbridge/log"
	"github.com/heiftools/heicbridge/metrics"
)

// AcceptPatcher widens the accepted-type filter of file-selection controls
// so the host's pickers offer the unsupported formats. Widening appends the
// missing extensions and MIME types to the existing filter, never replaces
// it: destructive replacement would drop formats the host already supports.
//
// The patcher runs on the host UI thread only; its patched-element marks
// need no locking.
type AcceptPatcher struct {
	classifier *format.Classifier
	logger     *log.Logger
	metrics    *metrics.Collector

	// marked records controls already widened so repeated observer firings
	// are a no-op instead of re-concatenating. Host FileInput values must be
	// pointer-backed (comparable), which every known host binding satisfies.
	marked map[host.FileInput]struct{}
}

// NewAcceptPatcher creates a patcher for the classifier's format set.
func NewAcceptPatcher(c *format.Classifier, logger *log.Logger, m *metrics.Collector) *AcceptPatcher {
	if c == nil {
		c = format.Default()
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &AcceptPatcher{
		classifier: c,
		logger:     logger,
		metrics:    m,
		marked:     make(map[host.FileInput]struct{}),
	}
}

// Apply widens every currently present eligible control and returns how many
// were changed by this call.
func (p *AcceptPatcher) Apply(doc host.Document) int {
	patched := 0
	for _, in := range doc.FileInputs() {
		if p.patchOne(in) {
			patched++
		}
	}
	return patched
}

// Install applies the patcher to the document and registers a mutation
// observer re-applying it to controls created later, once per registry
// lifetime. The returned stop function ends the observation; ok is false
// when the environment has no document or the patch is already installed.
func (p *AcceptPatcher) Install(env *host.Env, reg *Registry) (stop func(), ok bool) {
	if env == nil || env.Doc == nil {
		return nil, false
	}
	if !reg.Install(PatchInputs) {
		return nil, false
	}
	doc := env.Doc
	p.Apply(doc)
	return doc.ObserveMutations(func() { p.Apply(doc) }), true
}

// patchOne widens one control. Eligible controls have a readable filter that
// already mentions a generic image type and does not yet mention the
// unsupported format. Controls whose filter cannot be read are skipped, not
// failed.
func (p *AcceptPatcher) patchOne(in host.FileInput) bool {
	if _, done := p.marked[in]; done {
		return false
	}

	accept, readable := in.Accept()
	if !readable {
		return false
	}
	lower := strings.ToLower(accept)
	if !strings.Contains(lower, "image") {
		return false
	}
	if p.mentionsFormat(lower) {
		// Host already offers the format; mark so the observer stops
		// re-inspecting this control.
		p.marked[in] = struct{}{}
		return false
	}

	in.SetAccept(accept + p.additions(lower))
	p.marked[in] = struct{}{}
	p.metrics.IncInputsPatched()
	p.logger.Debug("file input accept widened", map[string]any{"accept": accept})
	return true
}

func (p *AcceptPatcher) mentionsFormat(lowerAccept string) bool {
	for _, ext := range p.classifier.Extensions() {
		if strings.Contains(lowerAccept, ext) {
			return true
		}
	}
	for _, mime := range p.classifier.MIMETypes() {
		if strings.Contains(lowerAccept, mime) {
			return true
		}
	}
	return false
}

// additions returns the ",token" suffix for every extension and MIME type
// the filter is missing.
func (p *AcceptPatcher) additions(lowerAccept string) string {
	var b strings.Builder
	for _, ext := range p.classifier.Extensions() {
		if !strings.Contains(lowerAccept, ext) {
			b.WriteString(",")
			b.WriteString(ext)
		}
	}
	for _, mime := range p.classifier.MIMETypes() {
		if !strings.Contains(lowerAccept, mime) {
			b.WriteString(",")
			b.WriteString(mime)
		}
	}
	return b.String()
}
