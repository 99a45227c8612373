package host

import "bytes"

// DragItemKindFile marks a dragged item backed by a file. Before drop the
// browser exposes only the item's MIME type, never its name, and the type is
// frequently empty for exotic formats.
const DragItemKindFile = "file"

// DragItem is one item in a drag-over event.
type DragItem struct {
	Kind string
	MIME string
}

// DragEvent is a document-level drag-over event.
type DragEvent struct {
	Items []DragItem

	defaultPrevented bool
	dropEffect       string
}

// PreventDefault suppresses the host's default drag handling.
func (e *DragEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether default handling was suppressed.
func (e *DragEvent) DefaultPrevented() bool { return e.defaultPrevented }

// SetDropEffect sets the advertised drop effect (for example "copy").
func (e *DragEvent) SetDropEffect(effect string) { e.dropEffect = effect }

// DropEffect returns the advertised drop effect.
func (e *DragEvent) DropEffect() string { return e.dropEffect }

// DroppedFile is one file delivered by a drop event.
type DroppedFile struct {
	Name string
	MIME string
	Data []byte
}

// Reader returns a reader over the file bytes.
func (f *DroppedFile) Reader() *bytes.Reader { return bytes.NewReader(f.Data) }

// DropEvent is a document-level drop event. The three suppression flags
// mirror the environment's event model: default handling, later listeners on
// other targets, and later listeners on the same target.
type DropEvent struct {
	Files []DroppedFile

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

// PreventDefault suppresses the host's default drop handling.
func (e *DropEvent) PreventDefault() { e.defaultPrevented = true }

// StopPropagation stops the event from reaching later targets.
func (e *DropEvent) StopPropagation() { e.propagationStopped = true }

// StopImmediatePropagation additionally stops later listeners on this
// target.
func (e *DropEvent) StopImmediatePropagation() { e.immediateStopped = true }

// DefaultPrevented reports whether default handling was suppressed.
func (e *DropEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether propagation was stopped.
func (e *DropEvent) PropagationStopped() bool { return e.propagationStopped }

// ImmediatePropagationStopped reports whether immediate propagation was
// stopped.
func (e *DropEvent) ImmediatePropagationStopped() bool { return e.immediateStopped }

// FullySuppressed reports whether all three suppression flags are set, the
// condition that pre-empts the host's own drop handling entirely.
func (e *DropEvent) FullySuppressed() bool {
	return e.defaultPrevented && e.propagationStopped && e.immediateStopped
}
