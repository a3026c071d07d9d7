package reader

import (
	"html"
	"net/http"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/static"
)

const couldNotRender = "Couldn't render article. (It is an article, right?)"

// failure describes how one error code is presented to the reader.
type failure struct {
	status int
	title  string
	header string

	// prefix is prepended to the error message in the page body.
	prefix string
}

var failures = map[string]failure{
	readable.EINVALID: {
		status: http.StatusBadRequest,
		title:  "Invalid URL",
		header: "Check if the path represents a valid URL",
	},
	readable.EFETCH: {
		status: http.StatusBadRequest,
		title:  "Yikes!",
		header: couldNotRender,
		prefix: "Can't fetch URL: ",
	},
	readable.EDECODE: {
		status: http.StatusBadRequest,
		title:  "Yikes!",
		header: couldNotRender,
		prefix: "Can't fetch response body text: ",
	},
	readable.EEXTRACT: {
		status: http.StatusBadRequest,
		title:  "Ouch",
		header: "Couldn't extract content from the article. (It is an article, right?)",
	},
	readable.EINTERNAL: {
		status: http.StatusInternalServerError,
		title:  "Internal error",
		header: "Something went wrong on our side. Please try again later.",
	},
}

func lookupFailure(err error) failure {
	if f, ok := failures[readable.ErrorCode(err)]; ok {
		return f
	}
	return failures[readable.EINTERNAL]
}

// ErrorPage renders err as a styled error page and returns it with the
// status code for its failure kind. The error message is escaped and shown
// in the page body. Error pages have no canonical link.
func ErrorPage(err error) (int, string) {
	f := lookupFailure(err)
	body := "<p>" + html.EscapeString(f.prefix+readable.ErrorMessage(err)) + "</p>"
	return f.status, static.Render(html.EscapeString(f.title), html.EscapeString(f.header), body, "")
}

// IndexPage renders the home page.
func IndexPage() string {
	return static.Render(indexTitle, indexHeader, indexContent, "")
}

const indexTitle = "Readable."

const indexHeader = `A simple web service to extract the main content from an article<br /> and format it for <i>reading</i>.`

const indexContent = `<p>Append any URL to the address bar to get started.</p>
<h2>Examples</h2>
<ul>
	<li><a href="/https://en.wikipedia.org/wiki/Alan_Turing">Wikipedia &raquo; Alan Turing</a></li>
	<li><a href="/https://go.dev/blog/slog">The Go Blog &raquo; Structured Logging with slog</a></li>
	<li><a href="/https://www.paulgraham.com/greatwork.html">Paul Graham &raquo; How to Do Great Work</a></li>
</ul>
<h2>Use-Cases</h2>
<ul>
	<li>Revive your old ebook reader</li>
	<li>Distraction-free reading</li>
	<li>Zero ads and tracking</li>
	<li>Faster browsing on low-bandwidth connections</li>
	<li>Read articles in your terminal (e.g. with lynx, or <code>curl -H 'Accept: text/markdown'</code>)</li>
</ul>`
