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

// Package tools has utilities for looking at Graphs: some analysis
// and renderings as Graphviz, Mermaid, and HTML.
package tools

import (
	"fmt"
	"sort"

	"github.com/Comcast/spamscan/core"
)

// GraphAnalysis reports some properties of a Graph.
type GraphAnalysis struct {
	graph *core.Graph

	Errors      []string       `json:"errors,omitempty"`
	StateCount  int            `json:"states"`
	Transitions int            `json:"transitions"`
	Actions     map[string]int `json:"actions,omitempty"`

	// TerminalStates have no Transitions at all.
	TerminalStates []string `json:"terminal,omitempty"`

	// Partial are States without a catch-all Transition, so a
	// Walk can fail there.
	Partial []string `json:"partial,omitempty"`

	// Orphans are States that no Transition targets (other than
	// the Start State).
	Orphans []string `json:"orphans,omitempty"`

	// Unreachable are States that can't be reached from Start.
	Unreachable []string `json:"unreachable,omitempty"`

	// Shadowed are Transitions that follow a catch-all and so can
	// never be taken.  Example: "start[2]".
	Shadowed []string `json:"shadowed,omitempty"`
}

// Total reports whether every State has a catch-all Transition.
func (a *GraphAnalysis) Total() bool {
	return len(a.Partial) == 0
}

// Analyze looks for problems in the Graph.
func Analyze(g *core.Graph) (*GraphAnalysis, error) {
	a := GraphAnalysis{
		graph:      g,
		StateCount: g.Len(),
		Errors:     make([]string, 0, 8),
		Actions:    make(map[string]int),
	}

	targeted := make(map[core.Handle]bool)

	for i, s := range g.States {
		h := core.Handle(i)
		if s == nil {
			a.Errors = append(a.Errors, fmt.Sprintf("state %d is nil", i))
			continue
		}

		if s.Terminal() {
			a.TerminalStates = append(a.TerminalStates, s.Name)
		}
		if !s.CatchAll() {
			a.Partial = append(a.Partial, s.Name)
		}

		caught := false
		for j, t := range s.Transitions {
			a.Transitions++
			if t.Do != core.NoAction {
				a.Actions[t.Do.String()]++
			}
			if caught {
				a.Shadowed = append(a.Shadowed, fmt.Sprintf("%s[%d]", s.Name, j))
			}
			if t.When.Kind == core.Everything {
				caught = true
			}
			if _, have := g.State(t.To); !have {
				a.Errors = append(a.Errors, fmt.Sprintf("%s[%d] goes to unknown state %d", s.Name, j, t.To))
				continue
			}
			if t.To != h {
				targeted[t.To] = true
			}
		}
	}

	for i, s := range g.States {
		h := core.Handle(i)
		if s == nil || h == g.Start {
			continue
		}
		if !targeted[h] {
			a.Orphans = append(a.Orphans, s.Name)
		}
	}

	reached := Reachable(g)
	for i, s := range g.States {
		if s != nil && !reached[core.Handle(i)] {
			a.Unreachable = append(a.Unreachable, s.Name)
		}
	}

	sort.Strings(a.TerminalStates)
	sort.Strings(a.Partial)
	sort.Strings(a.Orphans)
	sort.Strings(a.Unreachable)

	return &a, nil
}

// Reachable returns the set of States that can be reached from the
// Graph's Start.
func Reachable(g *core.Graph) map[core.Handle]bool {
	reached := make(map[core.Handle]bool, g.Len())
	if _, have := g.State(g.Start); !have {
		return reached
	}

	pending := []core.Handle{g.Start}
	reached[g.Start] = true
	for 0 < len(pending) {
		h := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		s, have := g.State(h)
		if !have {
			continue
		}
		for _, t := range s.Transitions {
			if _, have := g.State(t.To); !have || reached[t.To] {
				continue
			}
			reached[t.To] = true
			pending = append(pending, t.To)
		}
	}
	return reached
}
