package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"html"
	"io"
	"os"
	"os/exec"
	"strings"

	. "github.com/Comcast/spamscan/core"

	"gopkg.in/yaml.v2"
)

// edgeLabel is what an edge in a diagram says about its Transition.
type edgeLabel struct {
	When Comparator `yaml:"when"`
	Do   Action     `yaml:"do,omitempty"`
}

// Dot makes a Graphviz dot file for the given Graph.
//
// The optional from and to can be Handles of States during a
// Transition.  If not NoMatch, then the from State will be black and
// the to State will be red.
func Dot(g *Graph, w io.Writer, from, to Handle) error {

	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=LR,nodesep=0.3,ranksep=0.6]
  node [shape="record" style="rounded,filled"]
  edge [fontsize = "10"]
`)

	for i, s := range g.States {
		if s == nil {
			continue
		}
		h := Handle(i)

		label := html.EscapeString(s.Name)
		if s.Doc != "" {
			doc := s.Doc
			if 40 < len(doc) {
				period := strings.Index(doc, ". ")
				if 0 < period {
					doc = doc[0 : period+1]
				}
			}
			label += "<BR/><FONT POINT-SIZE='8'>" + html.EscapeString(doc) + "</FONT>"
		}
		fillcolor := "#99ddc8"
		if strings.HasPrefix(s.Name, "kw[") {
			fillcolor = "#52aa5e"
		}
		color := "black"
		style := "filled"
		if to == h {
			color = "red"
			fillcolor = "#f98b8b"
		}
		if h == g.Start {
			style += ",bold"
		}
		if !s.CatchAll() {
			style += ",dashed"
		}
		fmt.Fprintf(w, "  \"%s\" [style=\"%s\", color=\"%s\", fillcolor=\"%s\", label=<%s> ]\n",
			escape(s.Name), style, color, fillcolor, label)
	}

	for i, s := range g.States {
		if s == nil {
			continue
		}
		h := Handle(i)
		for j, t := range s.Transitions {
			bs, err := yaml.Marshal(edgeLabel{t.When, t.Do})
			if err != nil {
				return err
			}
			label := html.EscapeString(strings.TrimSpace(string(bs)))
			label = strings.Replace(label, "\n", `<BR ALIGN="LEFT"/>`, -1)
			label = fmt.Sprintf("%d/%d %s", j+1, len(s.Transitions), label)

			color := "black"
			if from == h && to == t.To {
				color = "red"
			}
			fmt.Fprintf(w, "  \"%s\" -> \"%s\" [ color=\"%s\" label = <<FONT POINT-SIZE=\"8\">%s</FONT>> ]\n",
				escape(s.Name), escape(g.NameOf(t.To)), color, label)
		}
	}

	fmt.Fprintf(w, "}\n")
	return nil
}

// PNG generates a PNG image based on output from Dot.
//
// This function with write two files: basename.dot and basename.png,
// where the basename is the given string.  Requires Graphviz's dot.
func PNG(g *Graph, basename string, from, to Handle) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(g, dotfile, from, to); err != nil {
		dotfile.Close()
		return pngname, err
	}
	if err := dotfile.Close(); err != nil {
		return pngname, err
	}
	if err := exec.Command("dot", "-Tpng", "-Gstart=1", "-o", pngname, dotname).Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}

func escape(s string) string {
	s = strings.Replace(s, `\`, `\\`, -1)
	return strings.Replace(s, `"`, `\"`, -1)
}
