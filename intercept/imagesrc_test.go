package intercept

import (
	"strings"
	"testing"

	"github.com/heiftools/heicbridge/host"
	"github.com/heiftools/heicbridge/metrics"
)

func TestImageInterceptor_RewritesMatchingAssignment(t *testing.T) {
	base := &host.StubImageFactory{}
	m := metrics.NewCollector()
	ii := NewImageInterceptor(testRewriter(), nil, m)

	img := ii.Wrap(base).New()
	img.SetSource("/api/view?filename=img.heic")

	if got := img.Source(); !strings.HasPrefix(got, "/heic_preview?") {
		t.Errorf("source = %q, want preview URL", got)
	}
	if m.Snapshot().ImageSourceRewritten != 1 {
		t.Error("expected one rewrite recorded")
	}
}

func TestImageInterceptor_ReadsUnchanged(t *testing.T) {
	base := &host.StubImageFactory{}
	ii := NewImageInterceptor(testRewriter(), nil, nil)

	img := ii.Wrap(base).New()
	img.SetSource("/api/view?filename=img.png")
	if got := img.Source(); got != "/api/view?filename=img.png" {
		t.Errorf("non-matching assignment rewritten: %q", got)
	}
}

func TestImageInterceptor_CallbacksDelegate(t *testing.T) {
	base := &host.StubImageFactory{}
	ii := NewImageInterceptor(testRewriter(), nil, nil)

	img := ii.Wrap(base).New()
	loaded := false
	img.OnLoad(func() { loaded = true })
	base.Created[0].CompleteLoad()
	if !loaded {
		t.Error("OnLoad must delegate to the underlying image")
	}
}

func TestImageInterceptor_InstallOnce(t *testing.T) {
	env := &host.Env{Images: &host.StubImageFactory{}}
	reg := NewRegistry()
	ii := NewImageInterceptor(testRewriter(), nil, nil)

	if !ii.Install(env, reg) {
		t.Fatal("first install should succeed")
	}
	if ii.Install(env, reg) {
		t.Fatal("second install must be refused")
	}

	// A single layer of rewriting only.
	img := env.Images.New()
	img.SetSource("/api/view?filename=a.heic")
	src := img.Source()
	if !strings.HasPrefix(src, "/heic_preview?") || strings.Count(src, "heic_preview") != 1 {
		t.Errorf("source = %q, want exactly one rewrite", src)
	}
}

func TestImageInterceptor_InstallWithoutFactory(t *testing.T) {
	ii := NewImageInterceptor(testRewriter(), nil, nil)
	if ii.Install(&host.Env{}, NewRegistry()) {
		t.Fatal("install must refuse an environment without an image factory")
	}
}
