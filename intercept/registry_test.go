package intercept

import (
	"sync"
	"testing"
)

func TestRegistry_InstallOnce(t *testing.T) {
	r := NewRegistry()
	if !r.Install(PatchFetch) {
		t.Fatal("first install should succeed")
	}
	if r.Install(PatchFetch) {
		t.Fatal("second install must be refused")
	}
	if !r.Installed(PatchFetch) {
		t.Error("patch should report installed")
	}
	if r.Installed(PatchImages) {
		t.Error("uninstalled patch should not report installed")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Install(PatchInputs)
	r.Install(PatchFetch)
	names := r.Names()
	if len(names) != 2 || names[0] != PatchFetch || names[1] != PatchInputs {
		t.Errorf("names = %v, want sorted [fetch inputs]", names)
	}
}

func TestRegistry_ConcurrentInstall(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	wins := make(chan struct{}, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Install(PatchImages) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)
	n := 0
	for range wins {
		n++
	}
	if n != 1 {
		t.Errorf("%d installers won, want exactly 1", n)
	}
}
