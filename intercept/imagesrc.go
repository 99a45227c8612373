package intercept

import (
	"github.com/heiftools/heicbridge/host"
	"github.com/heiftools/heicbridge/log"
	"github.com/heiftools/heicbridge/metrics"
	"github.com/heiftools/heicbridge/preview"
)

// ImageInterceptor covers the second display path: host code that assigns an
// image source directly instead of going through fetch. Reading a source
// returns the underlying value unchanged; writing a matching view URL is
// transposed to the preview URL before the load begins.
type ImageInterceptor struct {
	rewriter *preview.Rewriter
	logger   *log.Logger
	metrics  *metrics.Collector
}

// NewImageInterceptor creates an image-source interceptor. A nil logger
// discards.
func NewImageInterceptor(rw *preview.Rewriter, logger *log.Logger, m *metrics.Collector) *ImageInterceptor {
	if logger == nil {
		logger = log.Nop()
	}
	return &ImageInterceptor{rewriter: rw, logger: logger, metrics: m}
}

// Wrap decorates an image factory so every image it creates rewrites
// matching source assignments. Unparsable and non-matching URLs delegate to
// the original setter unmodified.
func (ii *ImageInterceptor) Wrap(factory host.ImageFactory) host.ImageFactory {
	return &interceptedFactory{base: factory, ii: ii}
}

// Install wraps env.Images in place, once per registry lifetime.
func (ii *ImageInterceptor) Install(env *host.Env, reg *Registry) bool {
	if env == nil || env.Images == nil {
		return false
	}
	if !reg.Install(PatchImages) {
		return false
	}
	env.Images = ii.Wrap(env.Images)
	return true
}

type interceptedFactory struct {
	base host.ImageFactory
	ii   *ImageInterceptor
}

func (f *interceptedFactory) New() host.DisplayImage {
	return &interceptedImage{base: f.base.New(), ii: f.ii}
}

type interceptedImage struct {
	base host.DisplayImage
	ii   *ImageInterceptor
}

func (img *interceptedImage) Source() string { return img.base.Source() }

func (img *interceptedImage) SetSource(url string) {
	if target, ok := img.ii.rewriter.Rewrite(url); ok {
		img.ii.metrics.IncImageSourceRewritten()
		img.ii.logger.Debug("image source rewritten to preview", map[string]any{
			"from": url,
			"to":   target,
		})
		img.base.SetSource(target)
		return
	}
	img.base.SetSource(url)
}

func (img *interceptedImage) OnLoad(fn func())         { img.base.OnLoad(fn) }
func (img *interceptedImage) OnError(fn func(err error)) { img.base.OnError(fn) }
