package buildindex

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"go.abhg.dev/goldmark/wikilink"
)

// NotesFile is the optional per-build markdown file rendered into the info
// region when a page is first generated.
const NotesFile = "NOTES.md"

// buildLinkResolver resolves [[00042]] wikilinks in build notes to the
// sibling build's page. Non-ID targets fall back to plain .html links.
type buildLinkResolver struct{}

func (buildLinkResolver) ResolveWikilink(n *wikilink.Node) ([]byte, error) {
	if buildIDPattern.Match(n.Target) {
		return []byte(fmt.Sprintf("../%s/index.html", n.Target)), nil
	}
	return append(append([]byte(nil), n.Target...), ".html"...), nil
}

var notesMD = goldmark.New(
	goldmark.WithExtensions(
		&wikilink.Extender{Resolver: buildLinkResolver{}},
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(chromahtml.WithLineNumbers(false)),
		),
	),
)

// RenderNotes converts build-notes markdown to HTML.
func RenderNotes(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := notesMD.Convert(markdown, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
