package tools

import (
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/Comcast/spamscan/core"

	md "github.com/russross/blackfriday/v2"
)

// RenderGraphHTML writes an HTML table of the Graph's States and
// their Transitions.  Docs are rendered as Markdown.
func RenderGraphHTML(g *core.Graph, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="graphDoc doc">%s</div>`, md.Run([]byte(g.Doc)))

	f(`<div class="states"><table>`)
	for i, s := range g.States {
		if s == nil {
			continue
		}
		id := html.EscapeString(s.Name)
		class := "state"
		if core.Handle(i) == g.Start {
			class += " start"
		}
		f(`<tr class="%s"><td><span id="%s" class="stateName">%s</span></td><td>`, class, id, id)

		if s.Doc != "" {
			f(`<div class="stateDoc doc">%s</div>`, md.Run([]byte(s.Doc)))
		}
		f(`<div class="transitions">`)
		f(`<table>`)
		for j, t := range s.Transitions {
			to := html.EscapeString(g.NameOf(t.To))
			f(`<tr><td><div class="transitionNum">%d</div></td>`, j)
			f(`<td><code>%s</code></td>`, html.EscapeString(t.When.String()))
			f(`<td><a href="#%s"><code>%s</code></a></td>`, to, to)
			if t.Do != core.NoAction {
				f(`<td><span class="action">%s</span></td>`, t.Do)
			} else {
				f(`<td></td>`)
			}
			f(`</tr>`)
		}
		f(`</table>`)
		f(`</div>`)
		f(`</td></tr>`)
	}
	f(`</table></div>`)

	return nil
}

// RenderGraphPage writes a complete HTML page for the Graph.  The
// page embeds the Graph's JSON as thisGraph for scripts.
func RenderGraphPage(g *core.Graph, out io.Writer, cssFiles []string) error {

	if cssFiles == nil {
		cssFiles = []string{"/static/graph-html.css"}
	}

	js, err := json.Marshal(g)
	if err != nil {
		return err
	}

	title := html.EscapeString(g.Name)

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
  <script>
  var thisGraph = %s;
  </script>
`, title, js)

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, title)

	if err = RenderGraphHTML(g, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}
