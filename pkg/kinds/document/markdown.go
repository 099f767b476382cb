package document

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
)

// md renders CommonMark as XHTML, which the SVG canvas embeds in a
// foreignObject. Raw HTML in the source is omitted.
var md = goldmark.New(goldmark.WithRendererOptions(html.WithXHTML()))

// Markdown converts generated board content into HTML.
func Markdown(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "<pre>" + frag.Esc(src) + "</pre>"
	}
	return buf.String()
}
