package trafilatura

// Internal helpers exposed to the external test package.
var (
	Options           = options
	ArticleFromResult = articleFromResult
)
