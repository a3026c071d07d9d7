// Package goquery implements readable.Sanitizer on top of goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readable"
)

// Ensure Sanitizer implements readable.Sanitizer at compile time.
var _ readable.Sanitizer = (*Sanitizer)(nil)

// removedElements never render usefully in a reading view and can run code
// or load third-party content. SVG animation elements can rewrite an href
// to a script URL after sanitizing. Keys are lower case.
var removedElements = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"iframe": true, "frame": true, "frameset": true,
	"object": true, "embed": true, "applet": true,
	"form": true, "base": true, "meta": true, "link": true,
	"animate": true, "set": true, "animatemotion": true, "animatetransform": true,
	"handler": true, "listener": true,
}

// animationAttributes hold values an animation may assign to another
// attribute.
var animationAttributes = map[string]bool{
	"values": true,
	"to":     true,
	"from":   true,
	"by":     true,
}

// urlAttributes hold a single URL that must be resolved and checked.
var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"poster":     true,
	"cite":       true,
	"background": true,
}

// Sanitizer strips active content from extracted article HTML.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize removes scripting elements, event handler attributes and
// script URLs from an HTML fragment, and resolves relative URLs against
// baseURL. Links open without a referrer.
func (s *Sanitizer) Sanitize(fragment string, baseURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", readable.Errorf(readable.EEXTRACT, "failed to parse article content: %v", err)
	}

	body := doc.Find("body")
	// SVG tag names keep their case (animateMotion), so match on the
	// lowered name instead of a CSS selector.
	body.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return removedElements[strings.ToLower(goquery.NodeName(sel))]
	}).Remove()

	body.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		attrs := node.Attr[:0]
		for _, attr := range node.Attr {
			key := strings.ToLower(attr.Key)
			switch {
			case strings.HasPrefix(key, "on"), key == "style", key == "srcdoc", key == "formaction":
				continue
			case animationAttributes[key] && isScriptURL(attr.Val):
				continue
			case key == "srcset":
				val, ok := resolveSrcset(baseURL, attr.Val)
				if !ok {
					continue
				}
				attr.Val = val
			case urlAttributes[key]:
				val, ok := resolveURL(baseURL, attr.Val, key == "src")
				if !ok {
					continue
				}
				attr.Val = val
			}
			attrs = append(attrs, attr)
		}
		node.Attr = attrs
	})

	body.Find("a[href]").SetAttr("rel", "noopener noreferrer")

	out, err := body.Html()
	if err != nil {
		return "", readable.Errorf(readable.EEXTRACT, "failed to render article content: %v", err)
	}
	return strings.TrimSpace(out), nil
}

// resolveURL makes href absolute against base. It reports false for
// references that must be dropped: script URLs, unparsable URLs and data
// URLs that are not images. Fragment-only references are kept as-is so
// in-article anchors keep working.
func resolveURL(base *url.URL, href string, allowDataImage bool) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return href, true
	}

	scheme := strings.ToLower(stripControl(href))
	switch {
	case strings.HasPrefix(scheme, "javascript:"), strings.HasPrefix(scheme, "vbscript:"):
		return "", false
	case strings.HasPrefix(scheme, "data:"):
		return href, allowDataImage && strings.HasPrefix(scheme, "data:image/")
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if base == nil {
		return ref.String(), true
	}
	return base.ResolveReference(ref).String(), true
}

// isScriptURL reports whether v, or any ";"-separated value of an
// animation list, is a javascript: or vbscript: URL.
func isScriptURL(v string) bool {
	for _, part := range strings.Split(v, ";") {
		p := strings.ToLower(stripControl(part))
		if strings.HasPrefix(p, "javascript:") || strings.HasPrefix(p, "vbscript:") {
			return true
		}
	}
	return false
}

// resolveSrcset resolves each image candidate of a srcset attribute.
func resolveSrcset(base *url.URL, srcset string) (string, bool) {
	var out []string
	for _, candidate := range strings.Split(srcset, ",") {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		u, ok := resolveURL(base, fields[0], true)
		if !ok {
			continue
		}
		fields[0] = u
		out = append(out, strings.Join(fields, " "))
	}
	if len(out) == 0 {
		return "", false
	}
	return strings.Join(out, ", "), true
}

// stripControl removes whitespace and control characters, which browsers
// ignore inside URL schemes.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
