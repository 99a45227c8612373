// Package widgetsync keeps a host node's selector widget, its displayed
// image handle, and the remote preview in agreement.
//
// The synchronizer cannot assume it is the only writer of a widget's value:
// host-internal code and user interaction with the native combo control
// write it too. Watch therefore decorates the widget so every write
// schedules a preview refresh on the host loop, after the host's own
// handling of the write has finished.
package widgetsync

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/heiftools/heicbridge/format"
	"github.com/heiftools/heicbridge/host"
	"github.com/heiftools/heicbridge/log"
	"github.com/heiftools/heicbridge/metrics"
	"github.com/heiftools/heicbridge/preview"
	"github.com/heiftools/heicbridge/types"
	"github.com/heiftools/heicbridge/upload"
)

// DefaultNodeType is the registered type of the extension's load-image node.
const DefaultNodeType = "LoadImagePlusHEIC"

// DefaultWidgetName is the selector widget's name on that node.
const DefaultWidgetName = "image"

// Config configures the synchronizer.
type Config struct {
	// NodeType is the node type whose widgets are synchronized.
	NodeType string
	// WidgetName is the selector widget name.
	WidgetName string
}

func (c *Config) fillDefaults() {
	if c.NodeType == "" {
		c.NodeType = DefaultNodeType
	}
	if c.WidgetName == "" {
		c.WidgetName = DefaultWidgetName
	}
}

// Synchronizer drives selector widgets, preview loads, and candidate lists
// for one host environment.
type Synchronizer struct {
	env        *host.Env
	cfg        Config
	classifier *format.Classifier
	resolver   *preview.Resolver
	uploads    *upload.Client
	logger     *log.Logger
	metrics    *metrics.Collector

	// seq issues one monotonically increasing preview request id per node.
	// A completion whose id is no longer current is stale and dropped, so
	// the most recently requested preview always wins regardless of load
	// completion order.
	mu  sync.Mutex
	seq map[host.Node]uint64
}

// New creates a synchronizer. uploads may be nil, which disables the upload
// override and candidate refresh; a nil logger discards.
func New(env *host.Env, cfg Config, c *format.Classifier, r *preview.Resolver, uploads *upload.Client, logger *log.Logger, m *metrics.Collector) *Synchronizer {
	cfg.fillDefaults()
	if c == nil {
		c = format.Default()
	}
	if r == nil {
		r = preview.NewResolver("")
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Synchronizer{
		env:        env,
		cfg:        cfg,
		classifier: c,
		resolver:   r,
		uploads:    uploads,
		logger:     logger,
		metrics:    m,
		seq:        make(map[host.Node]uint64),
	}
}

// Config returns the effective configuration.
func (s *Synchronizer) Config() Config { return s.cfg }

// SetWidgetValue assigns value to the widget, first inserting it at the
// front of the candidate list when missing. Front insertion is intentional:
// the just-uploaded file becomes the immediately visible default choice, and
// the membership invariant holds at the moment of assignment so renderers
// cannot reject the value. Any host value-change callback is invoked with
// panics swallowed, then a preview refresh is scheduled.
func (s *Synchronizer) SetWidgetValue(node host.Node, w host.Widget, value string) {
	ensureMember(w, value)
	w.SetValue(value)

	if cb, ok := w.(host.Callbacker); ok {
		if fn := cb.Callback(); fn != nil {
			s.invokeCallback(fn, value)
		}
	}

	// A watched widget already scheduled the refresh from its own SetValue.
	if _, watched := w.(*watchedWidget); !watched {
		s.schedulePreview(node, w)
	}
}

func ensureMember(w host.Widget, value string) {
	for _, v := range w.Values() {
		if v == value {
			return
		}
	}
	w.SetValues(append([]string{value}, w.Values()...))
}

// invokeCallback runs a host callback, discarding panics so a faulty host
// callback cannot abort the synchronization chain.
func (s *Synchronizer) invokeCallback(fn func(string), value string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("widget callback panicked", map[string]any{"panic": fmt.Sprint(r)})
		}
	}()
	fn(value)
}

// schedulePreview queues an ApplyPreview on the host loop so it runs after
// the host's own handling of the current write settles.
func (s *Synchronizer) schedulePreview(node host.Node, w host.Widget) {
	s.env.Post(func() {
		s.ApplyPreview(node, w, w.Value())
	})
}

// ApplyPreview loads the preview for value into a fresh image handle and, on
// success, installs it as the node's primary displayed image and requests a
// redraw. Values the host can render natively are a no-op. Load failures are
// logged only: a failed preview corrupts no other state, so the prior
// displayed image stays in place and nothing retries.
func (s *Synchronizer) ApplyPreview(node host.Node, w host.Widget, value string) {
	if !s.classifier.IsUnsupported(value) {
		return
	}
	if s.env.Images == nil {
		return
	}

	token := s.nextToken(node)
	url := s.resolver.URL(value)

	img := s.env.Images.New()
	img.OnLoad(func() {
		s.env.Post(func() { s.installPreview(node, w, img, url, token) })
	})
	img.OnError(func(err error) {
		s.metrics.IncPreviewFailed()
		s.logger.Warn("preview load failed", map[string]any{"url": url, "error": err.Error()})
	})
	img.SetSource(url)
}

func (s *Synchronizer) nextToken(node host.Node) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[node]++
	return s.seq[node]
}

func (s *Synchronizer) currentToken(node host.Node) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[node]
}

func (s *Synchronizer) installPreview(node host.Node, w host.Widget, img host.DisplayImage, url string, token uint64) {
	if token != s.currentToken(node) {
		s.metrics.IncPreviewStale()
		s.logger.Debug("stale preview dropped", map[string]any{"url": url})
		return
	}

	if holder, ok := node.(host.ImageHolder); ok {
		imgs := holder.Images()
		if len(imgs) == 0 {
			holder.SetImages([]host.DisplayImage{img})
		} else {
			imgs[0] = img
			holder.SetImages(imgs)
		}
	}

	// Some host UI variants read a direct image-source field instead of the
	// image list; push the URL into whichever of node and widget has one.
	if sf, ok := node.(host.SourceFielder); ok {
		sf.SetImageSource(url)
	}
	if sf, ok := w.(host.SourceFielder); ok {
		sf.SetImageSource(url)
	}

	if s.env.Graph != nil {
		s.env.Graph.RequestRedraw()
	}
	s.metrics.IncPreviewApplied()
}

// AdoptUpload makes an uploaded resource the widget's selection: refreshes
// the candidate list from the host's metadata endpoint when an upload client
// is wired, then runs SetWidgetValue with the canonical annotated
// identifier.
func (s *Synchronizer) AdoptUpload(ctx context.Context, node host.Node, w host.Widget, ref types.ResourceReference) {
	s.RefreshCandidates(ctx, w)
	s.SetWidgetValue(node, w, ref.Annotated())
}

// RefreshCandidates replaces the widget's candidate list with the host's
// current metadata for the configured node type. A missing client, a failed
// request, or an absent candidate list leaves the widget untouched.
func (s *Synchronizer) RefreshCandidates(ctx context.Context, w host.Widget) {
	if s.uploads == nil {
		return
	}
	info, err := s.uploads.ObjectInfo(ctx)
	if err != nil {
		s.logger.Warn("candidate refresh failed", map[string]any{"error": err.Error()})
		return
	}
	if values := info.ImageCandidates(s.cfg.NodeType); values != nil {
		w.SetValues(values)
	}
}

// WrapUpload diverts the widget's host-native upload routine: unsupported-
// format files go through the upload bridge, candidate refresh, and
// SetWidgetValue; every other file falls through to the original routine
// unchanged. No-op when the widget exposes no routine or no upload client is
// wired.
func (s *Synchronizer) WrapUpload(node host.Node, w host.Widget) bool {
	if s.uploads == nil {
		return false
	}
	ur, ok := w.(host.UploadRoutiner)
	if !ok {
		return false
	}
	orig := ur.UploadRoutine()
	if orig == nil {
		return false
	}

	ur.SetUploadRoutine(func(ctx context.Context, filename string, r io.Reader) error {
		if !s.classifier.IsUnsupported(filename) {
			return orig(ctx, filename, r)
		}

		s.metrics.IncUploadStarted()
		ref, err := s.uploads.Upload(ctx, filename, r)
		if err != nil {
			s.metrics.IncUploadFailed()
			s.notifyError(fmt.Sprintf("upload of %s failed: %v", filename, err))
			return err
		}
		s.metrics.IncUploadSucceeded()
		s.AdoptUpload(ctx, node, w, ref)
		return nil
	})
	return true
}

func (s *Synchronizer) notifyError(msg string) {
	s.logger.Error(msg, nil)
	if s.env.Notify != nil {
		s.env.Notify.Notify("error", msg)
	}
}
