package readable

import "context"

// Fetcher retrieves the HTML of a page as UTF-8 text.
type Fetcher interface {
	// Fetch requests the URL and returns the decoded response body.
	// Returns EFETCH if the request fails and EDECODE if the body cannot
	// be read as text. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
