package views

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	g "github.com/maragudk/gomponents"
)

// Markdown renders a post body. Raw HTML in the source is dropped and links
// with script-capable schemes are rendered as plain text.
func Markdown(source string) g.Node {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(source))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank | html.SkipHTML |
		html.Safelink | html.NofollowLinks | html.NoreferrerLinks
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return g.Raw(string(markdown.Render(doc, renderer)))
}
