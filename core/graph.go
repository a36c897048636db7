package core

import (
	"strconv"
)

// Handle identifies a State within a Graph.
//
// Transitions hold Handles rather than pointers, so a Graph can be
// cyclic (and usually is) without any question of ownership.
type Handle int

// NoMatch is returned by State.Step when no Transition matched.  It
// is never a valid Handle, so it can't be confused with a Graph's
// Start.
const NoMatch Handle = -1

// Transition is a possible move to a next State.
type Transition struct {
	// When decides whether this Transition applies to a symbol.
	When Comparator `json:"when" yaml:"when"`

	// To is the destination State.
	To Handle `json:"to" yaml:"to"`

	// Do is an optional Action performed when this Transition is
	// taken.
	Do Action `json:"do,omitempty" yaml:"do,omitempty"`
}

// State is a node in a Graph.
type State struct {
	// Name is for humans (traces, diagrams, diagnostics).
	Name string `json:"name" yaml:"name"`

	// Doc optionally says what this State is for.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Transitions is the ordered list of outgoing edges.  Order
	// matters: the first Transition that matches wins.
	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Resolve returns the index of the Transition that the given symbol
// would take, or -1.  Resolve does not execute any Action.
func (s *State) Resolve(sym byte) int {
	for i, t := range s.Transitions {
		if t.When.Matches(sym) {
			return i
		}
	}
	return -1
}

// take finds the first matching Transition and executes its Action
// (if any).  If no Transition matches, the returned Transition goes
// to NoMatch.
func (s *State) take(sym byte, acc *Accumulators) Transition {
	i := s.Resolve(sym)
	if i < 0 {
		return Transition{To: NoMatch}
	}
	t := s.Transitions[i]
	if t.Do != NoAction {
		t.Do.Exec(acc, sym)
	}
	return t
}

// Step consumes one symbol.  The first matching Transition's Action
// (if any) is executed against acc, and the Transition's destination
// is returned.  If no Transition matches, Step returns NoMatch.
//
// acc may be nil only if no Transition of this State has an Action.
func (s *State) Step(sym byte, acc *Accumulators) Handle {
	return s.take(sym, acc).To
}

// Terminal determines if a State has no Transitions.
func (s *State) Terminal() bool {
	return len(s.Transitions) == 0
}

// CatchAll determines if some Transition of this State matches every
// symbol.
func (s *State) CatchAll() bool {
	for _, t := range s.Transitions {
		if t.When.Kind == Everything {
			return true
		}
	}
	return false
}

// Graph is an arena of States.
//
// A Graph is built with AddState and AddTransition and then
// Compile()ed, after which it's read-only.
type Graph struct {
	// Name is the generic name for this automaton.
	Name string `json:"name,omitempty" yaml:",omitempty"`

	// Doc is general documentation (Markdown) about the automaton.
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	// Start is the State where every Walk begins.  Defaults to
	// the first State added.
	Start Handle `json:"start" yaml:"start"`

	// States is indexed by Handle.
	States []*State `json:"states" yaml:"states"`

	names    map[string]Handle
	compiled bool
}

// NewGraph makes an empty Graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:   name,
		States: make([]*State, 0, 64),
		names:  make(map[string]Handle, 64),
	}
}

func (g *Graph) index() {
	if g.names != nil {
		return
	}
	g.names = make(map[string]Handle, len(g.States))
	for i, s := range g.States {
		if s != nil {
			g.names[s.Name] = Handle(i)
		}
	}
}

// AddState adds a new State with the given (unique) name.
func (g *Graph) AddState(name string) (Handle, error) {
	if g.compiled {
		return NoMatch, &GraphCompiled{g}
	}
	g.index()
	if _, have := g.names[name]; have {
		return NoMatch, &DuplicateState{g, name}
	}
	h := Handle(len(g.States))
	g.States = append(g.States, &State{Name: name})
	g.names[name] = h
	return h, nil
}

// AddTransition appends a Transition to the given State.
//
// Earlier Transitions take precedence and catch whatever symbols they
// match, removing those symbols from consideration by later
// Transitions.
func (g *Graph) AddTransition(from Handle, when Comparator, to Handle, do Action) error {
	if g.compiled {
		return &GraphCompiled{g}
	}
	s, have := g.State(from)
	if !have {
		return &UnknownState{g, from}
	}
	if !g.valid(to) {
		return &UnknownState{g, to}
	}
	s.Transitions = append(s.Transitions, Transition{
		When: when,
		To:   to,
		Do:   do,
	})
	return nil
}

func (g *Graph) valid(h Handle) bool {
	return 0 <= h && int(h) < len(g.States) && g.States[h] != nil
}

// State returns the State for the given Handle.
func (g *Graph) State(h Handle) (*State, bool) {
	if !g.valid(h) {
		return nil, false
	}
	return g.States[h], true
}

// Lookup finds a State by name.
func (g *Graph) Lookup(name string) (Handle, bool) {
	g.index()
	h, have := g.names[name]
	return h, have
}

// NameOf returns the name of the State for the given Handle.
func (g *Graph) NameOf(h Handle) string {
	if s, have := g.State(h); have {
		return s.Name
	}
	if h == NoMatch {
		return "<none>"
	}
	return "<" + strconv.Itoa(int(h)) + ">"
}

// Len returns the number of States.
func (g *Graph) Len() int {
	return len(g.States)
}

// Compile checks that Start and every Transition destination refer to
// States in this Graph and then freezes the Graph.
//
// Compile doesn't check Transition order or the presence of catch-all
// Transitions.  See tools.Analyze for that.
func (g *Graph) Compile() error {
	if g.compiled {
		return nil
	}
	if !g.valid(g.Start) {
		return &UnknownState{g, g.Start}
	}
	g.names = nil
	g.index()
	for _, s := range g.States {
		if s == nil {
			continue
		}
		for _, t := range s.Transitions {
			if !g.valid(t.To) {
				return &UnknownState{g, t.To}
			}
		}
	}
	g.compiled = true
	return nil
}

// Compiled reports whether Compile() has succeeded.
func (g *Graph) Compiled() bool {
	return g.compiled
}

// Copy makes an uncompiled deep copy of the Graph.
func (g *Graph) Copy() *Graph {
	ss := make([]*State, len(g.States))
	for i, s := range g.States {
		if s == nil {
			continue
		}
		ts := make([]Transition, len(s.Transitions))
		copy(ts, s.Transitions)
		ss[i] = &State{
			Name:        s.Name,
			Doc:         s.Doc,
			Transitions: ts,
		}
	}
	return &Graph{
		Name:   g.Name,
		Doc:    g.Doc,
		Start:  g.Start,
		States: ss,
	}
}

// Step consumes one symbol from the State with the given Handle.
//
// A NoMatch result is not an error here.  Whoever is driving decides
// what NoMatch means.
func (g *Graph) Step(h Handle, sym byte, acc *Accumulators) (Handle, error) {
	if !g.compiled {
		return NoMatch, &GraphNotCompiled{g}
	}
	s, have := g.State(h)
	if !have {
		return NoMatch, &UnknownState{g, h}
	}
	return s.Step(sym, acc), nil
}
