// Package droprouter diverts native drag-and-drop of unsupported-format
// files away from the host's default handling.
//
// The host interprets dropped files as workflow-description documents; fed a
// binary image that interpretation fails confusingly. The router listens at
// the document level in the capture phase, ahead of the host's handlers, and
// fully suppresses matching drops before running the upload path. Everything
// else is left untouched for the host.
package droprouter

import (
	"context"
	"fmt"

	"github.com/heiftools/heicbridge/format"
	"github.com/heiftools/heicbridge/host"
	"github.com/heiftools/heicbridge/locator"
	"github.com/heiftools/heicbridge/log"
	"github.com/heiftools/heicbridge/metrics"
	"github.com/heiftools/heicbridge/upload"
	"github.com/heiftools/heicbridge/widgetsync"
)

// Router handles document-level drag-over and drop.
type Router struct {
	env        *host.Env
	classifier *format.Classifier
	uploads    *upload.Client
	sync       *widgetsync.Synchronizer
	logger     *log.Logger
	metrics    *metrics.Collector
}

// New creates a drop router. A nil logger discards.
func New(env *host.Env, c *format.Classifier, uploads *upload.Client, sync *widgetsync.Synchronizer, logger *log.Logger, m *metrics.Collector) *Router {
	if c == nil {
		c = format.Default()
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Router{
		env:        env,
		classifier: c,
		uploads:    uploads,
		sync:       sync,
		logger:     logger,
		metrics:    m,
	}
}

// Install registers the capture-phase listeners on the host document.
// Returns false when the environment exposes no document.
func (r *Router) Install() bool {
	if r.env == nil || r.env.Doc == nil {
		return false
	}
	r.env.Doc.OnDragOver(true, r.HandleDragOver)
	r.env.Doc.OnDrop(true, r.HandleDrop)
	return true
}

// HandleDragOver marks the drop acceptable when any dragged item is a file
// whose declared type is empty or in the unsupported set. The browser does
// not expose a dragged file's name before drop, only its MIME type, and
// that type is frequently empty for exotic formats, so empty must count as
// potentially ours.
func (r *Router) HandleDragOver(e *host.DragEvent) {
	for _, item := range e.Items {
		if item.Kind != host.DragItemKindFile {
			continue
		}
		if item.MIME == "" || r.classifier.MatchesMIME(item.MIME) {
			e.PreventDefault()
			e.SetDropEffect("copy")
			return
		}
	}
}

// HandleDrop fully suppresses drops of unsupported-format files and routes
// them through upload, target location, and widget synchronization. A drop
// with no matching file is left for the host's native handling. Failures
// notify and log but never propagate: one broken drop must not break the
// next one.
func (r *Router) HandleDrop(e *host.DropEvent) {
	file := r.matchingFile(e)
	if file == nil {
		return
	}

	e.PreventDefault()
	e.StopPropagation()
	e.StopImmediatePropagation()
	r.metrics.IncDropRouted()

	r.routeFile(file)
}

func (r *Router) matchingFile(e *host.DropEvent) *host.DroppedFile {
	for i := range e.Files {
		if r.classifier.IsUnsupported(e.Files[i].Name) {
			return &e.Files[i]
		}
	}
	return nil
}

func (r *Router) routeFile(file *host.DroppedFile) {
	ctx := context.Background()

	r.metrics.IncUploadStarted()
	ref, err := r.uploads.Upload(ctx, file.Name, file.Reader())
	if err != nil {
		r.metrics.IncUploadFailed()
		msg := fmt.Sprintf("upload of %s failed: %v", file.Name, err)
		r.logger.Error(msg, nil)
		if r.env.Notify != nil {
			r.env.Notify.Notify("error", msg)
		}
		return
	}
	r.metrics.IncUploadSucceeded()

	node := locator.Locate(r.env.Graph, r.sync.Config().NodeType)
	if node == nil {
		// Nothing to update; the file is stored and selectable later.
		r.logger.Info("upload stored with no target node", map[string]any{"id": ref.Annotated()})
		return
	}
	w, ok := node.Widget(r.sync.Config().WidgetName)
	if !ok {
		r.logger.Warn("target node has no selector widget", map[string]any{"type": node.Type()})
		return
	}
	r.sync.AdoptUpload(ctx, node, w, ref)
}
