package core

// These errors are construction errors (a Graph was built or used
// wrongly) except for UnhandledSymbol, which is what a Walk returns
// when the current State has no Transition for a symbol.

import (
	"strconv"
)

func graphName(g *Graph) string {
	if g == nil {
		return ""
	}
	return g.Name
}

// GraphNotCompiled occurs when a Graph is used (say via Step()) before
// it has been Compile()ed.
type GraphNotCompiled struct {
	Graph *Graph
}

func (e *GraphNotCompiled) Error() string {
	return `graph "` + graphName(e.Graph) + `" not compiled`
}

// GraphCompiled occurs when somebody tries to add a State or a
// Transition to a Graph that has already been compiled.
type GraphCompiled struct {
	Graph *Graph
}

func (e *GraphCompiled) Error() string {
	return `graph "` + graphName(e.Graph) + `" is compiled and can't be changed`
}

// UnknownState occurs when a Handle doesn't refer to a State in the
// Graph.
type UnknownState struct {
	Graph  *Graph
	Handle Handle
}

func (e *UnknownState) Error() string {
	return `state ` + strconv.Itoa(int(e.Handle)) + ` not found in graph "` + graphName(e.Graph) + `"`
}

// DuplicateState occurs when a State name is used twice.
type DuplicateState struct {
	Graph *Graph
	Name  string
}

func (e *DuplicateState) Error() string {
	return `state "` + e.Name + `" already exists in graph "` + graphName(e.Graph) + `"`
}

// UnhandledSymbol occurs when no Transition of the current State
// matches the symbol being consumed.
//
// For a Graph where every State has a catch-all Transition this can't
// happen, so an UnhandledSymbol really points to an incomplete Graph.
type UnhandledSymbol struct {
	Graph  *Graph
	State  Handle
	Symbol byte
	Offset int64
}

func (e *UnhandledSymbol) Error() string {
	return "unhandled symbol " + Quote(e.Symbol) +
		" at offset " + strconv.FormatInt(e.Offset, 10) +
		` in state "` + e.Graph.NameOf(e.State) + `"`
}
