package host

import (
	"sync"
)

// Shape-correct stub implementations of the host surface for development and
// testing. They model just enough of the host's event and widget behavior to
// exercise the bridge; replace with a real host binding when embedding.

// ImmediateLoop runs posted work inline.
type ImmediateLoop struct{}

// Post runs fn immediately.
func (ImmediateLoop) Post(fn func()) { fn() }

// ManualLoop queues posted work until Drain is called, letting tests control
// the ordering between the host's synchronous handling and deferred bridge
// work.
type ManualLoop struct {
	mu    sync.Mutex
	queue []func()
}

// Post queues fn.
func (l *ManualLoop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, fn)
}

// Drain runs all queued work, including work queued while draining, and
// returns the number of functions run.
func (l *ManualLoop) Drain() int {
	n := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return n
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()
		fn()
		n++
	}
}

// Notice is one recorded notification.
type Notice struct {
	Level   string
	Message string
}

// StubNotifier records notifications.
type StubNotifier struct {
	Notices []Notice
}

// Notify records the notification.
func (n *StubNotifier) Notify(level, message string) {
	n.Notices = append(n.Notices, Notice{Level: level, Message: message})
}

// StubImage is a display image whose load completion is driven by the test.
type StubImage struct {
	src     string
	onLoad  func()
	onError func(error)
}

// Source returns the current source URL.
func (i *StubImage) Source() string { return i.src }

// SetSource records the source URL. The load stays pending until
// CompleteLoad or FailLoad is called.
func (i *StubImage) SetSource(url string) { i.src = url }

// OnLoad registers the load-completion callback.
func (i *StubImage) OnLoad(fn func()) { i.onLoad = fn }

// OnError registers the load-failure callback.
func (i *StubImage) OnError(fn func(err error)) { i.onError = fn }

// CompleteLoad fires the load-completion callback.
func (i *StubImage) CompleteLoad() {
	if i.onLoad != nil {
		i.onLoad()
	}
}

// FailLoad fires the load-failure callback.
func (i *StubImage) FailLoad(err error) {
	if i.onError != nil {
		i.onError(err)
	}
}

// StubImageFactory creates StubImages and remembers them in creation order.
type StubImageFactory struct {
	Created []*StubImage
}

// New creates a stub image.
func (f *StubImageFactory) New() DisplayImage {
	img := &StubImage{}
	f.Created = append(f.Created, img)
	return img
}

// StubWidget is a selector widget with optional callback, upload routine,
// and image-source field.
type StubWidget struct {
	WidgetName string
	value      string
	values     []string

	CallbackFn func(value string)
	UploadFn   UploadFunc
	SourceURL  string
}

// Name returns the widget name.
func (w *StubWidget) Name() string { return w.WidgetName }

// Value returns the current value.
func (w *StubWidget) Value() string { return w.value }

// SetValue assigns the value.
func (w *StubWidget) SetValue(value string) { w.value = value }

// Values returns the candidate list.
func (w *StubWidget) Values() []string { return w.values }

// SetValues replaces the candidate list.
func (w *StubWidget) SetValues(values []string) { w.values = values }

// Callback returns the value-change callback, possibly nil.
func (w *StubWidget) Callback() func(value string) { return w.CallbackFn }

// UploadRoutine returns the host-native upload routine, possibly nil.
func (w *StubWidget) UploadRoutine() UploadFunc { return w.UploadFn }

// SetUploadRoutine replaces the upload routine.
func (w *StubWidget) SetUploadRoutine(fn UploadFunc) { w.UploadFn = fn }

// SetImageSource records a direct image-source assignment.
func (w *StubWidget) SetImageSource(url string) { w.SourceURL = url }

// StubNode is a host node owning named widgets and a displayed-image list.
type StubNode struct {
	TypeName string
	widgets  map[string]Widget
	images   []DisplayImage

	SourceURL string
}

// NewStubNode creates a node of the given type.
func NewStubNode(typeName string) *StubNode {
	return &StubNode{TypeName: typeName, widgets: make(map[string]Widget)}
}

// Type returns the node type name.
func (n *StubNode) Type() string { return n.TypeName }

// Widget looks up a widget by name.
func (n *StubNode) Widget(name string) (Widget, bool) {
	w, ok := n.widgets[name]
	return w, ok
}

// AddWidget installs a widget under its name.
func (n *StubNode) AddWidget(w Widget) { n.widgets[w.Name()] = w }

// ReplaceWidget swaps in a decorated widget under its name.
func (n *StubNode) ReplaceWidget(w Widget) bool {
	if _, ok := n.widgets[w.Name()]; !ok {
		return false
	}
	n.widgets[w.Name()] = w
	return true
}

// Images returns the displayed-image list.
func (n *StubNode) Images() []DisplayImage { return n.images }

// SetImages replaces the displayed-image list.
func (n *StubNode) SetImages(imgs []DisplayImage) { n.images = imgs }

// SetImageSource records a direct image-source assignment.
func (n *StubNode) SetImageSource(url string) { n.SourceURL = url }

// StubGraph is a node graph recording redraw requests.
type StubGraph struct {
	nodes    []Node
	selected []Node
	Redraws  int
}

// Add appends a node; creation order is append order.
func (g *StubGraph) Add(n Node) { g.nodes = append(g.nodes, n) }

// Select replaces the selection.
func (g *StubGraph) Select(nodes ...Node) { g.selected = nodes }

// Nodes returns nodes in creation order.
func (g *StubGraph) Nodes() []Node { return g.nodes }

// Selected returns the current selection.
func (g *StubGraph) Selected() []Node { return g.selected }

// RequestRedraw counts redraw requests.
func (g *StubGraph) RequestRedraw() { g.Redraws++ }

// StubFileInput is a file-selection control.
type StubFileInput struct {
	accept string
	// Unreadable simulates a control whose filter cannot be read.
	Unreadable bool
}

// NewStubFileInput creates a control with the given accept filter.
func NewStubFileInput(accept string) *StubFileInput {
	return &StubFileInput{accept: accept}
}

// Accept returns the filter, or ok=false when Unreadable.
func (f *StubFileInput) Accept() (string, bool) {
	if f.Unreadable {
		return "", false
	}
	return f.accept, true
}

// SetAccept replaces the filter.
func (f *StubFileInput) SetAccept(filter string) { f.accept = filter }

type dropListener struct {
	capture bool
	fn      func(*DropEvent)
}

type dragListener struct {
	capture bool
	fn      func(*DragEvent)
}

// StubDocument models the document surface: a mutable file-input list with
// mutation observation and drag/drop dispatch with capture-phase ordering.
type StubDocument struct {
	inputs    []FileInput
	observers []func()
	drags     []dragListener
	drops     []dropListener
}

// FileInputs returns the present controls.
func (d *StubDocument) FileInputs() []FileInput { return d.inputs }

// AddInput inserts a control and fires mutation observers, modeling a
// dynamically created element.
func (d *StubDocument) AddInput(f FileInput) {
	d.inputs = append(d.inputs, f)
	for _, fn := range d.observers {
		fn()
	}
}

// ObserveMutations registers a mutation observer.
func (d *StubDocument) ObserveMutations(fn func()) (stop func()) {
	d.observers = append(d.observers, fn)
	idx := len(d.observers) - 1
	return func() { d.observers[idx] = func() {} }
}

// OnDragOver registers a drag-over listener.
func (d *StubDocument) OnDragOver(capture bool, fn func(*DragEvent)) {
	d.drags = append(d.drags, dragListener{capture: capture, fn: fn})
}

// OnDrop registers a drop listener.
func (d *StubDocument) OnDrop(capture bool, fn func(*DropEvent)) {
	d.drops = append(d.drops, dropListener{capture: capture, fn: fn})
}

// DispatchDragOver delivers a drag-over event, capture listeners first.
func (d *StubDocument) DispatchDragOver(e *DragEvent) {
	for _, phase := range []bool{true, false} {
		for _, l := range d.drags {
			if l.capture == phase {
				l.fn(e)
			}
		}
	}
}

// DispatchDrop delivers a drop event, capture listeners first. Stopping
// immediate propagation halts all later listeners; stopping propagation
// halts the bubble phase where the host's own handlers live.
func (d *StubDocument) DispatchDrop(e *DropEvent) {
	for _, phase := range []bool{true, false} {
		if !phase && e.PropagationStopped() {
			return
		}
		for _, l := range d.drops {
			if l.capture != phase {
				continue
			}
			l.fn(e)
			if e.ImmediatePropagationStopped() {
				return
			}
		}
	}
}
