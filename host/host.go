// Package host defines the capability surface the bridge needs from the
// image-processing host it extends.
//
// The host's object model is externally defined and version-fragile, so the
// bridge never sees it whole: every integration point is either a narrow
// interface in this package or an optional capability probed with a type
// assertion. Absence of a capability is a defined no-op for every access
// path, never a thrown error.
//
// Global host primitives (the network-fetch function, the image-display
// factory) are decorated rather than mutated: package intercept wraps them
// and installs the wrapped form back into the Env, guarded by an
// install-once registry.
package host

import (
	"context"
	"io"
	"net/http"
)

// FetchFunc is the host environment's network-fetch primitive. Each call
// carries the full request so a decorator can reroute the URL while
// preserving every remaining option.
type FetchFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

// Loop posts work onto the host's single UI thread. Post runs fn after the
// current synchronous handling completes, replacing the fixed-delay ordering
// the bridge would otherwise need to sequence after the host's own handlers.
type Loop interface {
	Post(fn func())
}

// Notifier surfaces advisory user-facing messages. Optional on Env: a nil
// notifier degrades to log-only.
type Notifier interface {
	Notify(level, message string)
}

// Env is the set of host primitives the bridge reads and patches. Fields the
// embedding host does not provide stay nil and the features needing them
// silently degrade.
type Env struct {
	Fetch  FetchFunc
	Images ImageFactory
	Doc    Document
	Graph  Graph
	Loop   Loop
	Notify Notifier
}

// Post schedules fn on the host loop, or runs it inline when no loop is
// provided.
func (e *Env) Post(fn func()) {
	if e.Loop != nil {
		e.Loop.Post(fn)
		return
	}
	fn()
}

// ImageFactory creates display images, the host's image-load primitive.
type ImageFactory interface {
	New() DisplayImage
}

// DisplayImage is one image handle. SetSource begins an asynchronous load;
// the registered OnLoad or OnError callback fires on completion.
type DisplayImage interface {
	Source() string
	SetSource(url string)
	OnLoad(fn func())
	OnError(fn func(err error))
}

// Document is the host's document surface: file-selection controls, a
// mutation observer, and document-level drag-and-drop listeners.
type Document interface {
	// FileInputs returns the currently present file-selection controls.
	FileInputs() []FileInput
	// ObserveMutations registers fn to run after every document mutation
	// batch, including inserted subtrees. The returned function stops the
	// observation.
	ObserveMutations(fn func()) (stop func())
	// OnDragOver registers a drag-over listener; capture-phase listeners run
	// before the host's own handlers.
	OnDragOver(capture bool, fn func(*DragEvent))
	// OnDrop registers a drop listener, capture-phase semantics as above.
	OnDrop(capture bool, fn func(*DropEvent))
}

// FileInput is a file-selection control with an accepted-type filter.
type FileInput interface {
	// Accept returns the accepted-type filter. ok is false when the filter
	// cannot be read, in which case the control is skipped, not failed.
	Accept() (filter string, ok bool)
	SetAccept(filter string)
}

// Graph is the host's node graph.
type Graph interface {
	// Nodes returns all nodes in creation order, oldest first.
	Nodes() []Node
	// Selected returns the currently selected nodes.
	Selected() []Node
	// RequestRedraw asks the host to repaint its canvas.
	RequestRedraw()
}

// Node is one host UI node.
type Node interface {
	// Type is the registered node type name.
	Type() string
	// Widget looks up a named widget owned by this node.
	Widget(name string) (Widget, bool)
}

// Widget is a per-node selector widget: a value, an ordered candidate list
// (uniqueness required, order is presentation order), and possibly more
// capabilities probed via the optional interfaces below.
type Widget interface {
	Name() string
	Value() string
	SetValue(value string)
	Values() []string
	SetValues(values []string)
}

// Optional capabilities. Probe with a type assertion; a failed assertion
// means the host variant lacks the capability and the caller no-ops.

// Callbacker exposes a widget's value-change callback. The returned func may
// be nil even when the interface is present.
type Callbacker interface {
	Callback() func(value string)
}

// WidgetReplacer lets the bridge reinstall a decorated widget under its
// name. Returns false when the node refuses or does not know the widget.
type WidgetReplacer interface {
	ReplaceWidget(w Widget) bool
}

// ImageHolder exposes a node's displayed-image list. Index 0 is the primary
// displayed image.
type ImageHolder interface {
	Images() []DisplayImage
	SetImages(imgs []DisplayImage)
}

// SourceFielder is implemented by nodes or widgets holding a direct
// image-source field some host UI variants read instead of the image list.
type SourceFielder interface {
	SetImageSource(url string)
}

// UploadFunc is a host-native upload routine attached to a widget.
type UploadFunc func(ctx context.Context, filename string, r io.Reader) error

// UploadRoutiner exposes a widget's host-native upload routine for wrapping.
type UploadRoutiner interface {
	UploadRoutine() UploadFunc
	SetUploadRoutine(fn UploadFunc)
}
