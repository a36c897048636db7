// Package keywords compiles sets of keywords into shared-prefix
// regions of a core.Graph.
//
// Keywords are first inserted into a Trie.  The Trie is an arena:
// nodes live in one slice and refer to each other by index.
// Trie.Compile then makes one core.State per distinct prefix, so
// "win", "winners", and "winnings" share the states for "w", "wi",
// "win", and "winn" and only branch at the first differing byte.
package keywords

import (
	"sort"
	"strings"

	"github.com/Comcast/spamscan/core"
)

// NodeIndex represents the index of a trie node.
type NodeIndex int

// root is always the first node.
const root NodeIndex = 0

type node struct {
	// children maps the next byte to the child's index.
	children map[byte]NodeIndex

	// prefix is the path from the root to this node.
	prefix string

	// isEnd indicates that prefix is itself a keyword.
	isEnd bool
}

// Trie holds a set of keywords.
type Trie struct {
	nodes []node
	words []string
}

// New makes a Trie and inserts the given keywords.
func New(words ...string) (*Trie, error) {
	t := &Trie{
		nodes: make([]node, 1, 64),
	}
	t.nodes[root] = node{children: make(map[byte]NodeIndex)}
	for _, w := range words {
		if err := t.Insert(w); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Trie) newNode(prefix string) NodeIndex {
	idx := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, node{
		children: make(map[byte]NodeIndex),
		prefix:   prefix,
	})
	return idx
}

// Insert adds a keyword.  Inserting the same keyword twice is
// harmless.
func (t *Trie) Insert(word string) error {
	if err := Check(word); err != nil {
		return err
	}

	current := root
	for i := 0; i < len(word); i++ {
		child, have := t.nodes[current].children[word[i]]
		if !have {
			child = t.newNode(word[:i+1])
			t.nodes[current].children[word[i]] = child
		}
		current = child
	}

	if !t.nodes[current].isEnd {
		t.nodes[current].isEnd = true
		t.words = append(t.words, word)
	}
	return nil
}

// Contains reports whether the given keyword was inserted.
func (t *Trie) Contains(word string) bool {
	current := root
	for i := 0; i < len(word); i++ {
		child, have := t.nodes[current].children[word[i]]
		if !have {
			return false
		}
		current = child
	}
	return t.nodes[current].isEnd
}

// Words returns the keywords in insertion order.
func (t *Trie) Words() []string {
	return append([]string(nil), t.words...)
}

// Len returns the number of nodes, including the root.
func (t *Trie) Len() int {
	return len(t.nodes)
}

// edges returns the children of a node in byte order.
func (t *Trie) edges(idx NodeIndex) []byte {
	n := t.nodes[idx]
	bs := make([]byte, 0, len(n.children))
	for b := range n.children {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	return bs
}

// DebugString returns a string representation of the trie for
// debugging purposes.  Ends of keywords are marked with '*'.
func (t *Trie) DebugString() string {
	var sb strings.Builder
	t.debug(&sb, root)
	return sb.String()
}

func (t *Trie) debug(sb *strings.Builder, idx NodeIndex) {
	if t.nodes[idx].isEnd {
		sb.WriteByte('*')
	}
	for _, b := range t.edges(idx) {
		sb.WriteByte(b)
		sb.WriteByte('(')
		t.debug(sb, t.nodes[idx].children[b])
		sb.WriteByte(')')
	}
}

// Check returns a *BadKeyword if the given keyword can't be compiled.
//
// A keyword can't be empty, and it can't start or end with a
// delimiter since a keyword is only recognized between delimiters.
func Check(word string) error {
	switch {
	case word == "":
		return &BadKeyword{word, "empty"}
	case core.IsDelimiter(word[0]):
		return &BadKeyword{word, "starts with a delimiter"}
	case core.IsDelimiter(word[len(word)-1]):
		return &BadKeyword{word, "ends with a delimiter"}
	}
	return nil
}

// BadKeyword occurs when a keyword can't be used.
type BadKeyword struct {
	Word   string
	Reason string
}

func (e *BadKeyword) Error() string {
	return `bad keyword "` + e.Word + `": ` + e.Reason
}
