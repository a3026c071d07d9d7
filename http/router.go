package http

import (
	"context"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/reader"
	"github.com/fwojciec/readable/static"
)

// AssetCacheControl is sent with every embedded asset. Asset URLs do not
// change between releases, so clients revalidate with the ETag once a day.
const AssetCacheControl = "public, max-age=86400"

// Pages renders reading views for request paths. reader.Service implements
// it.
type Pages interface {
	Handle(ctx context.Context, path string) (int, string)
	HandleMarkdown(ctx context.Context, path string) (int, string)
}

// Ensure reader.Service satisfies Pages.
var _ Pages = (*reader.Service)(nil)

// Router dispatches requests to the embedded assets by exact path and sends
// every other path to Pages.
//
// Router never cleans or redirects paths: "/https://example.com" must reach
// Pages with its double slash intact, which rules out http.ServeMux.
type Router struct {
	pages  Pages
	assets map[string]static.Asset
}

// NewRouter returns a Router serving assets and falling back to pages.
func NewRouter(pages Pages, assets []static.Asset) *Router {
	r := &Router{
		pages:  pages,
		assets: make(map[string]static.Asset, len(assets)),
	}
	for _, a := range assets {
		r.assets[a.Path] = a
	}
	return r
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("method not allowed\n"))
		return
	}

	if a, ok := r.assets[req.URL.Path]; ok {
		r.serveAsset(w, req, a)
		return
	}
	r.servePage(w, req)
}

func (r *Router) serveAsset(w http.ResponseWriter, req *http.Request, a static.Asset) {
	if len(a.Data) == 0 || a.ContentType == "" {
		status, body := reader.ErrorPage(readable.Errorf(readable.EINTERNAL, "asset %s is not available", a.Path))
		writePage(w, status, body)
		return
	}

	h := w.Header()
	h.Set("ETag", a.ETag)
	h.Set("Cache-Control", AssetCacheControl)
	if matchETag(req.Header.Get("If-None-Match"), a.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Type", a.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}

func (r *Router) servePage(w http.ResponseWriter, req *http.Request) {
	// EscapedPath keeps percent-encoding of the target URL as sent.
	path := req.URL.EscapedPath()
	if req.URL.RawQuery != "" {
		path += "?" + req.URL.RawQuery
	}

	w.Header().Set("Vary", "Accept")
	if prefersMarkdown(req.Header.Get("Accept")) {
		status, body := r.pages.HandleMarkdown(req.Context(), path)
		writeBody(w, status, "text/markdown; charset=utf-8", body)
		return
	}
	status, body := r.pages.Handle(req.Context(), path)
	writePage(w, status, body)
}

func writePage(w http.ResponseWriter, status int, body string) {
	writeBody(w, status, "text/html; charset=utf-8", body)
}

func writeBody(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// matchETag reports whether an If-None-Match header matches etag.
func matchETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// prefersMarkdown reports whether an Accept header ranks text/markdown above
// HTML. Each type takes its quality from the most specific range that
// matches it. At equal quality the type matched more specifically wins,
// then the one listed first.
func prefersMarkdown(accept string) bool {
	if accept == "" {
		return false
	}

	md := acceptMatch{specificity: -1}
	page := acceptMatch{specificity: -1}
	for i, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				q = f
			}
		}

		switch mediaType {
		case "text/markdown", "text/x-markdown":
			md.offer(q, 2, i)
		case "text/html", "application/xhtml+xml":
			page.offer(q, 2, i)
		case "text/*":
			md.offer(q, 1, i)
			page.offer(q, 1, i)
		case "*/*":
			md.offer(q, 0, i)
			page.offer(q, 0, i)
		}
	}

	if md.specificity < 0 || md.q <= 0 {
		return false
	}
	if page.specificity < 0 {
		return true
	}
	if md.q != page.q {
		return md.q > page.q
	}
	if md.specificity != page.specificity {
		return md.specificity > page.specificity
	}
	return md.pos < page.pos
}

// acceptMatch is the Accept range that decides one media type's quality.
type acceptMatch struct {
	q           float64
	specificity int // 2 exact, 1 type/*, 0 */*
	pos         int
}

// offer records a matching range if it is more specific than the current
// one, or as specific with a higher quality.
func (m *acceptMatch) offer(q float64, specificity, pos int) {
	if specificity < m.specificity {
		return
	}
	if specificity == m.specificity && q <= m.q {
		return
	}
	*m = acceptMatch{q: q, specificity: specificity, pos: pos}
}
