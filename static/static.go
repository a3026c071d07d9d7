// Package static holds the page template and the assets embedded in the
// binary. Everything here is built once at process start and never mutated,
// so it is safe to share between concurrent requests.
package static

import (
	"embed"
	"fmt"
	"html"
	"strings"

	"github.com/cespare/xxhash/v2"
)

//go:embed template.html style.css favicon.svg robots.txt
var files embed.FS

// Template placeholders replaced by Render.
const (
	PlaceholderTitle     = "{{title}}"
	PlaceholderHeader    = "{{header}}"
	PlaceholderContent   = "{{content}}"
	PlaceholderCanonical = "{{canonical}}"
)

var template = string(mustRead("template.html"))

// Asset is a file served verbatim at a fixed path.
type Asset struct {
	Path        string
	ContentType string
	Data        []byte

	// ETag is a strong validator derived from Data.
	ETag string
}

var assets = []Asset{
	newAsset("/static/style.css", "style.css", "text/css; charset=utf-8"),
	newAsset("/static/favicon.svg", "favicon.svg", "image/svg+xml"),
	newAsset("/robots.txt", "robots.txt", "text/plain; charset=utf-8"),
}

// Assets returns the embedded assets in route order.
// The Data slices are shared and must not be modified.
func Assets() []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}

// Render substitutes the four placeholders of the page template.
//
// Substitution is literal: title, header and content are inserted as-is and
// must already be safe HTML. All placeholders are replaced in a single pass,
// so placeholder text inside an argument is left alone. An empty canonical
// URL removes the canonical placeholder.
func Render(title, header, content, canonical string) string {
	var link string
	if canonical != "" {
		link = fmt.Sprintf(`<link rel="canonical" href="%s" />`, html.EscapeString(canonical))
	}

	r := strings.NewReplacer(
		PlaceholderTitle, title,
		PlaceholderHeader, header,
		PlaceholderContent, content,
		PlaceholderCanonical, link,
	)
	return r.Replace(template)
}

func newAsset(path, name, contentType string) Asset {
	data := mustRead(name)
	return Asset{
		Path:        path,
		ContentType: contentType,
		Data:        data,
		ETag:        fmt.Sprintf(`"%016x"`, xxhash.Sum64(data)),
	}
}

func mustRead(name string) []byte {
	b, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("static: missing embedded file %q: %v", name, err))
	}
	return b
}
