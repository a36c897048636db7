package keywords

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Comcast/spamscan/core"
)

// Targets are the States outside of a Trie's region that the
// compiled region connects to.
type Targets struct {
	// Boundary is the State for "at the start of a word", which
	// is where keyword matching begins.  It becomes the root of
	// the compiled Trie, so Compile adds all of its Transitions.
	Boundary core.Handle

	// Word is the State for "inside a word that can't be a
	// keyword".  Compile adds all of its Transitions too.
	Word core.Handle

	// Flagged is where a completed keyword followed by a
	// delimiter goes.  That Transition also does core.Flag.
	Flagged core.Handle

	// Interrupts are tried by every State in the region after the
	// keyword Transitions and before the fallbacks.  For example,
	// a '<' that starts a closing tag.  No keyword can contain a
	// byte that an Interrupt matches.
	Interrupts []core.Transition
}

// StateName returns the name of the State for a keyword prefix.
//
// A State that tracks more than one prefix at once (as in "free s"
// and "s" after reading "free s") gets all of them, longest first:
// "kw[free s|s]".
func StateName(prefixes ...string) string {
	return "kw[" + strings.Join(prefixes, "|") + "]"
}

// active is a set of Trie nodes that could all be in the middle of a
// match.  After a delimiter, the root is active too, and every other
// node in the set was entered on that delimiter.
type active struct {
	nodes    []NodeIndex // Sorted.  Never includes root.
	boundary bool
}

func (a active) key() string {
	var sb strings.Builder
	if a.boundary {
		sb.WriteByte('^')
	}
	for _, n := range a.nodes {
		sb.WriteString(strconv.Itoa(int(n)))
		sb.WriteByte(',')
	}
	return sb.String()
}

func (t *Trie) name(a active) string {
	prefixes := make([]string, len(a.nodes))
	for i, n := range a.nodes {
		prefixes[i] = t.nodes[n].prefix
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return StateName(prefixes...)
}

func (t *Trie) ends(a active) bool {
	for _, n := range a.nodes {
		if t.nodes[n].isEnd {
			return true
		}
	}
	return false
}

// next returns the bytes that continue some active node, in byte
// order.
func (t *Trie) next(a active) []byte {
	seen := make(map[byte]bool)
	add := func(idx NodeIndex) {
		for c := range t.nodes[idx].children {
			seen[c] = true
		}
	}
	if a.boundary {
		add(root)
	}
	for _, n := range a.nodes {
		add(n)
	}
	bs := make([]byte, 0, len(seen))
	for c := range seen {
		bs = append(bs, c)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	return bs
}

func (t *Trie) step(a active, c byte) active {
	to := active{boundary: core.IsDelimiter(c)}
	seen := make(map[NodeIndex]bool)
	add := func(idx NodeIndex) {
		if child, have := t.nodes[idx].children[c]; have && !seen[child] {
			seen[child] = true
			to.nodes = append(to.nodes, child)
		}
	}
	if a.boundary {
		add(root)
	}
	for _, n := range a.nodes {
		add(n)
	}
	sort.Slice(to.nodes, func(i, j int) bool { return to.nodes[i] < to.nodes[j] })
	return to
}

// Compile adds a shared-prefix region for the Trie's keywords to the
// given Graph.
//
// Each State in the region stands for the set of keyword prefixes
// that the input could be in the middle of.  Usually that's one
// prefix.  After a delimiter inside a phrase (as in "free " on the
// way to "free stuff"), a new keyword can start too, so reading
// "free s" tracks both "free s" and "s".  Only the sets that the
// input can actually reach get States.
//
// Every State in the region gets Transitions in this order:
//
//   1. core.Delim() to Flagged with core.Flag, if some prefix in the
//      State is a keyword.
//   2. One core.Char() per byte that continues some prefix, in byte
//      order.
//   3. Targets.Interrupts.
//   4. core.Delim() to Boundary.
//   5. core.Any() to Word.
//
// So a keyword is only recognized when it's followed by a delimiter,
// and a longer match is always preferred to starting over.
//
// Returns a *BadKeyword if a keyword has a byte that one of the
// Interrupts matches.
func (t *Trie) Compile(g *core.Graph, tg Targets) error {
	for _, w := range t.words {
		for i := 0; i < len(w); i++ {
			for _, it := range tg.Interrupts {
				if it.When.Matches(w[i]) {
					return &BadKeyword{w, "has " + core.Quote(w[i]) + ", which interrupts keywords"}
				}
			}
		}
	}

	b := &core.Builder{G: g}

	var (
		start   = active{boundary: true}
		handles = map[string]core.Handle{
			start.key():    tg.Boundary,
			active{}.key(): tg.Word,
		}
		pending = []active{start}
	)

	handle := func(a active) core.Handle {
		k := a.key()
		if h, have := handles[k]; have {
			return h
		}
		h := b.State(t.name(a))
		handles[k] = h
		pending = append(pending, a)
		return h
	}

	fallbacks := func(from core.Handle) {
		b.Edges(from, tg.Interrupts)
		b.Go(from, core.Delim(), tg.Boundary)
		b.Go(from, core.Any(), tg.Word)
	}

	for 0 < len(pending) && b.Err == nil {
		a := pending[0]
		pending = pending[1:]
		from := handles[a.key()]

		end := t.ends(a)
		if end {
			b.Edge(from, core.Delim(), tg.Flagged, core.Flag)
		}
		for _, c := range t.next(a) {
			if end && core.IsDelimiter(c) {
				continue
			}
			b.Go(from, core.Char(c), handle(t.step(a, c)))
		}
		fallbacks(from)
	}
	fallbacks(tg.Word)

	return b.Err
}
