package process

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var nonFilename = regexp.MustCompile(`[^a-z0-9]+`)

// RenderHTML converts a Markdown blog post to a complete HTML document.
func RenderHTML(title, post string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.CompletePage,
		Title: title,
	})

	return markdown.ToHTML([]byte(post), p, r)
}

// Export returns the body, content type and file name for a download.
func Export(title, post string, format Format) ([]byte, string, string, error) {
	switch format {
	case FormatMarkdown, "":
		return []byte(post), "text/markdown; charset=utf-8", Filename(title, "md"), nil
	case FormatHTML:
		return RenderHTML(title, post), "text/html; charset=utf-8", Filename(title, "html"), nil
	default:
		return nil, "", "", fmt.Errorf("unknown export format %q", format)
	}
}

// Filename lower cases the title and replaces everything but letters and
// digits with a dash.
func Filename(title, ext string) string {
	name := strings.Trim(nonFilename.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if name == "" {
		name = "blog-post"
	}

	return fmt.Sprintf("%s.%s", name, ext)
}

// PublishURL is the address a published post would get.
func PublishURL(title string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	return fmt.Sprintf("https://example.com/blog/%s", url.QueryEscape(slug))
}
