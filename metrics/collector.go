// Package metrics provides process-wide counters for bridge activity.
//
// The Collector accumulates counters for the interception and upload
// surfaces. It is a leaf package with no internal dependencies. All
// increment methods are nil-receiver safe so call sites never need a guard
// when metrics are not wired.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Fetch interception
	FetchIntercepted int64
	FetchPassthrough int64

	// Image-source interception
	ImageSourceRewritten int64

	// Input-capability patching
	InputsPatched int64

	// Uploads
	UploadsStarted   int64
	UploadsSucceeded int64
	UploadsFailed    int64

	// Previews
	PreviewsApplied int64
	PreviewsFailed  int64
	PreviewsStale   int64

	// Drop routing
	DropsRouted int64
}

// Collector accumulates bridge counters.
// Thread-safe via sync.Mutex.
type Collector struct {
	mu sync.Mutex
	s  Snapshot
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// IncFetchIntercepted records a fetch call rerouted to the preview endpoint.
func (c *Collector) IncFetchIntercepted() { c.inc(func(s *Snapshot) { s.FetchIntercepted++ }) }

// IncFetchPassthrough records a fetch call passed through unmodified.
func (c *Collector) IncFetchPassthrough() { c.inc(func(s *Snapshot) { s.FetchPassthrough++ }) }

// IncImageSourceRewritten records an image-source assignment rewrite.
func (c *Collector) IncImageSourceRewritten() { c.inc(func(s *Snapshot) { s.ImageSourceRewritten++ }) }

// IncInputsPatched records a file input whose accept filter was widened.
func (c *Collector) IncInputsPatched() { c.inc(func(s *Snapshot) { s.InputsPatched++ }) }

// IncUploadStarted records an upload submission.
func (c *Collector) IncUploadStarted() { c.inc(func(s *Snapshot) { s.UploadsStarted++ }) }

// IncUploadSucceeded records a successful upload.
func (c *Collector) IncUploadSucceeded() { c.inc(func(s *Snapshot) { s.UploadsSucceeded++ }) }

// IncUploadFailed records a failed upload.
func (c *Collector) IncUploadFailed() { c.inc(func(s *Snapshot) { s.UploadsFailed++ }) }

// IncPreviewApplied records a preview installed as a node's primary image.
func (c *Collector) IncPreviewApplied() { c.inc(func(s *Snapshot) { s.PreviewsApplied++ }) }

// IncPreviewFailed records a preview load failure.
func (c *Collector) IncPreviewFailed() { c.inc(func(s *Snapshot) { s.PreviewsFailed++ }) }

// IncPreviewStale records a preview completion dropped as superseded.
func (c *Collector) IncPreviewStale() { c.inc(func(s *Snapshot) { s.PreviewsStale++ }) }

// IncDropRouted records a drop diverted away from the host's handling.
func (c *Collector) IncDropRouted() { c.inc(func(s *Snapshot) { s.DropsRouted++ }) }

// Snapshot returns a point-in-time copy of all counters.
// Nil-receiver safe: returns the zero Snapshot.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

func (c *Collector) inc(fn func(*Snapshot)) {
	if c == nil {
		return
	}
	c.mu.Lock()
	fn(&c.s)
	c.mu.Unlock()
}
