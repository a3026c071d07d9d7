package readable

import "net/url"

// Article holds the readable content extracted from an HTML page.
type Article struct {
	// Title is the article title extracted from metadata or headings.
	Title string

	// Content is the main content as an HTML fragment.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	Content string

	// Byline is the author line, if one was found.
	Byline string

	// SiteName is the name of the publishing site, if one was found.
	SiteName string
}

// Extractor extracts the main article from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the article.
	// Relative links and images in the content are resolved against baseURL.
	// Returns EEXTRACT if no article content can be identified.
	Extract(html string, baseURL *url.URL) (*Article, error)
}

// Sanitizer makes extracted HTML safe to embed in a page served from our origin.
type Sanitizer interface {
	// Sanitize removes active content from an HTML fragment and resolves
	// remaining relative references against baseURL.
	Sanitize(html string, baseURL *url.URL) (string, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}
