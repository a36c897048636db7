/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"fmt"
	"io"
	"strings"

	. "github.com/Comcast/spamscan/core"
)

type MermaidOpts struct {
	// ShowComparators will result in an edge label that's the
	// Transition's Comparator and Action (if any).
	ShowComparators bool `json:"showComparators"`

	// SpamFill is the fill color of States that Flag leads to.
	// Does not apply if SpamClass is set.
	SpamFill string `json:"spamFill,omitempty"`

	// SpamClass will be the CSS class for States that Flag leads
	// to.
	SpamClass string `json:"spamClass,omitempty"`

	// HideCatchAlls omits edges for catch-all Transitions.  They
	// dominate diagrams of keyword regions.
	HideCatchAlls bool `json:"hideCatchAlls,omitempty"`
}

// DefaultMermaidOpts are used when Mermaid is given nil options.
var DefaultMermaidOpts = MermaidOpts{
	ShowComparators: true,
	SpamFill:        "#f98b8b",
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given Graph.
func Mermaid(g *Graph, w io.Writer, opts *MermaidOpts) error {

	if opts == nil {
		opts = &DefaultMermaidOpts
	}

	flagged := make(map[Handle]bool)
	for _, s := range g.States {
		if s == nil {
			continue
		}
		for _, t := range s.Transitions {
			if t.Do == Flag {
				flagged[t.To] = true
			}
		}
	}

	fmt.Fprintf(w, "graph LR\n")

	nid := func(h Handle) string {
		return fmt.Sprintf("n%d", h)
	}

	for i, s := range g.States {
		if s == nil {
			continue
		}
		h := Handle(i)
		name := mermaidEscape(s.Name)
		if h == g.Start {
			fmt.Fprintf(w, "  %s([\"%s\"])\n", nid(h), name)
		} else {
			fmt.Fprintf(w, "  %s(\"%s\")\n", nid(h), name)
		}
		if flagged[h] {
			switch {
			case opts.SpamClass != "":
				fmt.Fprintf(w, "  class %s %s\n", nid(h), opts.SpamClass)
			case opts.SpamFill != "":
				fmt.Fprintf(w, "  style %s fill:%s\n", nid(h), opts.SpamFill)
			}
		}
	}

	for i, s := range g.States {
		if s == nil {
			continue
		}
		for _, t := range s.Transitions {
			if opts.HideCatchAlls && t.When.Kind == Everything {
				continue
			}
			label := ""
			if opts.ShowComparators {
				text := t.When.String()
				if t.Do != NoAction {
					text += " / " + t.Do.String()
				}
				label = fmt.Sprintf(`-- "%s"`, mermaidEscape(text))
			}
			fmt.Fprintf(w, "  %s %s --> %s\n", nid(Handle(i)), label, nid(t.To))
		}
	}

	fmt.Fprintf(w, "\n")

	return nil
}

func mermaidEscape(s string) string {
	s = strings.Replace(s, `"`, "#quot;", -1)
	s = strings.Replace(s, "<", "#lt;", -1)
	s = strings.Replace(s, ">", "#gt;", -1)
	return s
}
