package metrics

import (
	"sync"
	"testing"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector()
	c.IncFetchIntercepted()
	c.IncFetchIntercepted()
	c.IncFetchPassthrough()
	c.IncUploadStarted()
	c.IncUploadFailed()
	c.IncPreviewStale()

	s := c.Snapshot()
	if s.FetchIntercepted != 2 {
		t.Errorf("FetchIntercepted = %d, want 2", s.FetchIntercepted)
	}
	if s.FetchPassthrough != 1 {
		t.Errorf("FetchPassthrough = %d, want 1", s.FetchPassthrough)
	}
	if s.UploadsStarted != 1 || s.UploadsFailed != 1 || s.PreviewsStale != 1 {
		t.Errorf("unexpected snapshot: %+v", s)
	}
}

func TestCollector_NilReceiverSafe(t *testing.T) {
	var c *Collector
	c.IncFetchIntercepted()
	c.IncUploadSucceeded()
	if s := c.Snapshot(); s != (Snapshot{}) {
		t.Errorf("nil collector snapshot = %+v, want zero", s)
	}
}

func TestCollector_ConcurrentIncrements(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncDropRouted()
		}()
	}
	wg.Wait()
	if s := c.Snapshot(); s.DropsRouted != 50 {
		t.Errorf("DropsRouted = %d, want 50", s.DropsRouted)
	}
}
