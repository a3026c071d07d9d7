// Package htmltomarkdown implements readable.Converter for clients that ask
// for the article as Markdown (terminal readers, note-taking tools).
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/readable"
)

// Ensure Converter implements readable.Converter at compile time.
var _ readable.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. It is safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with CommonMark, GFM tables and
// strikethrough enabled.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms article HTML into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", readable.Errorf(readable.EINTERNAL, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", readable.Errorf(readable.EINTERNAL, "converting to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
