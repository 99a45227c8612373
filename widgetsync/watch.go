package widgetsync

import (
	"github.com/heiftools/heicbridge/host"
)

// Watch decorates the widget so every value write, no matter the writer,
// schedules a preview refresh, and reinstalls the decorated widget on the
// node. Returns the decorated widget and whether reinstallation succeeded;
// on a node without the replace capability the original widget is returned
// and only writes made through this package refresh previews.
func (s *Synchronizer) Watch(node host.Node, w host.Widget) (host.Widget, bool) {
	if _, already := w.(*watchedWidget); already {
		return w, true
	}

	watched := &watchedWidget{base: w, sync: s, node: node}
	replacer, ok := node.(host.WidgetReplacer)
	if !ok || !replacer.ReplaceWidget(watched) {
		return w, false
	}
	return watched, true
}

// Attach wires a node end to end: watches its selector widget and wraps its
// host-native upload routine. Returns false when the node has no widget of
// the configured name.
func (s *Synchronizer) Attach(node host.Node) bool {
	w, ok := node.Widget(s.cfg.WidgetName)
	if !ok {
		return false
	}
	watched, _ := s.Watch(node, w)
	s.WrapUpload(node, watched)
	return true
}

// watchedWidget replaces the host's own value accessor pair: reads pass
// through, writes delegate and then schedule a deferred preview refresh.
// Optional capabilities of the underlying widget are forwarded by probing,
// so decoration does not strip them.
type watchedWidget struct {
	base host.Widget
	sync *Synchronizer
	node host.Node
}

func (w *watchedWidget) Name() string  { return w.base.Name() }
func (w *watchedWidget) Value() string { return w.base.Value() }

func (w *watchedWidget) SetValue(value string) {
	w.base.SetValue(value)
	w.sync.schedulePreview(w.node, w.base)
}

func (w *watchedWidget) Values() []string          { return w.base.Values() }
func (w *watchedWidget) SetValues(values []string) { w.base.SetValues(values) }

// Callback forwards the underlying widget's callback capability.
func (w *watchedWidget) Callback() func(value string) {
	if cb, ok := w.base.(host.Callbacker); ok {
		return cb.Callback()
	}
	return nil
}

// UploadRoutine forwards the underlying widget's upload capability.
func (w *watchedWidget) UploadRoutine() host.UploadFunc {
	if ur, ok := w.base.(host.UploadRoutiner); ok {
		return ur.UploadRoutine()
	}
	return nil
}

// SetUploadRoutine forwards to the underlying widget when it has the
// capability; otherwise the write is dropped.
func (w *watchedWidget) SetUploadRoutine(fn host.UploadFunc) {
	if ur, ok := w.base.(host.UploadRoutiner); ok {
		ur.SetUploadRoutine(fn)
	}
}

// SetImageSource forwards to the underlying widget when it has the
// capability.
func (w *watchedWidget) SetImageSource(url string) {
	if sf, ok := w.base.(host.SourceFielder); ok {
		sf.SetImageSource(url)
	}
}
