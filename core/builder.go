package core

// Builder wraps a Graph with a sticky error so that long runs of
// AddState and AddTransition calls don't need an error check each.
//
// After the first error, Builder methods do nothing and State returns
// NoMatch.  Check Err when done.
type Builder struct {
	G   *Graph
	Err error
}

// NewBuilder makes a Builder for a new Graph with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{G: NewGraph(name)}
}

// State adds a State.
func (b *Builder) State(name string) Handle {
	if b.Err != nil {
		return NoMatch
	}
	h, err := b.G.AddState(name)
	if err != nil {
		b.Err = err
	}
	return h
}

// Edge adds a Transition.
func (b *Builder) Edge(from Handle, when Comparator, to Handle, do Action) {
	if b.Err != nil {
		return
	}
	b.Err = b.G.AddTransition(from, when, to, do)
}

// Go adds a Transition without an Action.
func (b *Builder) Go(from Handle, when Comparator, to Handle) {
	b.Edge(from, when, to, NoAction)
}

// Edges adds copies of the given Transitions to a State.
func (b *Builder) Edges(from Handle, ts []Transition) {
	for _, t := range ts {
		b.Edge(from, t.When, t.To, t.Do)
	}
}

// Compile compiles the Graph unless there was an error.
func (b *Builder) Compile() (*Graph, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	if err := b.G.Compile(); err != nil {
		return nil, err
	}
	return b.G, nil
}
