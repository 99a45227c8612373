package intercept

import (
	"context"
	"net/http"
	"net/url"

	"github.com/heiftools/heicbridge/host"
	"github.com/heiftools/heicbridge/log"
	"github.com/heiftools/heicbridge/metrics"
	"github.com/heiftools/heicbridge/preview"
)

// FetchInterceptor reroutes network-fetch calls addressing the host's view
// endpoint for unsupported-format filenames to the preview endpoint. All
// other calls, including calls whose URL cannot be parsed, reach the
// original primitive unmodified: interception must never break a request
// that does not match the pattern.
type FetchInterceptor struct {
	rewriter *preview.Rewriter
	logger   *log.Logger
	metrics  *metrics.Collector
}

// NewFetchInterceptor creates a fetch interceptor. A nil logger discards.
func NewFetchInterceptor(rw *preview.Rewriter, logger *log.Logger, m *metrics.Collector) *FetchInterceptor {
	if logger == nil {
		logger = log.Nop()
	}
	return &FetchInterceptor{rewriter: rw, logger: logger, metrics: m}
}

// Wrap returns a FetchFunc delegating to next, with matching view URLs
// transposed to the preview endpoint. The remaining request options
// (method, headers, body) are preserved.
func (fi *FetchInterceptor) Wrap(next host.FetchFunc) host.FetchFunc {
	return func(ctx context.Context, req *http.Request) (*http.Response, error) {
		if target, ok := fi.rewriter.Rewrite(req.URL.String()); ok {
			if redirected, ok := redirect(ctx, req, target); ok {
				fi.metrics.IncFetchIntercepted()
				fi.logger.Debug("fetch rerouted to preview", map[string]any{
					"from": req.URL.String(),
					"to":   redirected.URL.String(),
				})
				return next(ctx, redirected)
			}
		}
		fi.metrics.IncFetchPassthrough()
		return next(ctx, req)
	}
}

// Install wraps env.Fetch in place, once per registry lifetime. Returns
// false when the environment exposes no fetch primitive or the patch is
// already installed.
func (fi *FetchInterceptor) Install(env *host.Env, reg *Registry) bool {
	if env == nil || env.Fetch == nil {
		return false
	}
	if !reg.Install(PatchFetch) {
		return false
	}
	env.Fetch = fi.Wrap(env.Fetch)
	return true
}

// redirect clones req with its URL replaced by target, resolved against the
// original URL so relative preview paths keep the original scheme and host.
func redirect(ctx context.Context, req *http.Request, target string) (*http.Request, bool) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, false
	}
	out := req.Clone(ctx)
	out.URL = req.URL.ResolveReference(u)
	out.Host = ""
	return out, true
}

// Transport is the http.RoundTripper form of the fetch interceptor, used by
// the sidecar proxy to apply the same rerouting rule to real HTTP traffic.
type Transport struct {
	// Base is the underlying round tripper; nil selects http.DefaultTransport.
	Base http.RoundTripper
	// Rewriter recognizes and rewrites view URLs (required).
	Rewriter *preview.Rewriter
	// Metrics is optional.
	Metrics *metrics.Collector
}

// RoundTrip reroutes matching requests and passes everything else through.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if target, ok := t.Rewriter.Rewrite(req.URL.String()); ok {
		if redirected, ok := redirect(req.Context(), req, target); ok {
			t.Metrics.IncFetchIntercepted()
			return base.RoundTrip(redirected)
		}
	}
	t.Metrics.IncFetchPassthrough()
	return base.RoundTrip(req)
}
