package keywords

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Comcast/spamscan/core"
)

// region compiles the given keywords between a boundary, a word, and
// an absorbing flagged state.  '|' interrupts a keyword.
func region(t *testing.T, words ...string) *core.Graph {
	t.Helper()

	b := core.NewBuilder("keywords")
	var (
		boundary = b.State("boundary")
		word     = b.State("word")
		flagged  = b.State("flagged")
	)
	b.Go(flagged, core.Any(), flagged)
	require.NoError(t, b.Err)

	trie, err := New(words...)
	require.NoError(t, err)

	require.NoError(t, trie.Compile(b.G, Targets{
		Boundary: boundary,
		Word:     word,
		Flagged:  flagged,
		Interrupts: []core.Transition{
			{When: core.Char('|'), To: boundary},
		},
	}))

	g, err := b.Compile()
	require.NoError(t, err)
	return g
}

func flags(t *testing.T, g *core.Graph, in string) int {
	t.Helper()
	acc := core.NewAccumulators()
	_, err := g.Walk(context.Background(), strings.NewReader(in), acc, nil)
	require.NoError(t, err)
	return len(acc.Flagged)
}

var defaults = []string{
	"win", "winner", "winners", "winnings",
	"free stuff", "free access", "free software", "free trials", "free vacation",
}

func TestKeywordMatching(t *testing.T) {
	g := region(t, defaults...)

	tests := []struct {
		in      string
		flagged bool
	}{
		{"win ", true},
		{"you win now", true},
		{`say "win" twice`, true},
		{"you win", false},
		{"you win!", false},
		{"winning streak", false},
		{"winnings are nice", true},
		{"the winners ", true},
		{"a winner ", true},
		{"winne ", false},
		{"awin ", false},
		{"freewin ", false},
		{"free software now", true},
		{"free soft now", false},
		{"free  stuff ", false},
		{"free stuffing ", false},
		{"free win prizes", true},
		{"free vacation\"", true},
		{"free trial ", false},
		{"wi|n ", false},
		{"win|win ", true},
		{"win|", false},
		{"Win ", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := flags(t, g, tt.in)
			if tt.flagged {
				assert.Equal(t, 1, n)
			} else {
				assert.Equal(t, 0, n)
			}
		})
	}
}

func TestSharedPrefixes(t *testing.T) {
	trie, err := New("win", "winners", "winnings")
	require.NoError(t, err)
	assert.Equal(t, "w(i(n(*n(e(r(s(*)))i(n(g(s(*))))))))", trie.DebugString())
	assert.Equal(t, 12, trie.Len())
	assert.True(t, trie.Contains("win"))
	assert.False(t, trie.Contains("winn"))
	assert.False(t, trie.Contains("winnerss"))

	g := region(t, "win", "winners", "winnings")
	assert.Equal(t, 3+11, g.Len())

	h, have := g.Lookup(StateName("winn"))
	require.True(t, have)
	s, _ := g.State(h)

	var whens []string
	for _, tr := range s.Transitions {
		whens = append(whens, tr.When.String()+">"+g.NameOf(tr.To))
	}
	assert.Equal(t, []string{
		"'e'>kw[winne]",
		"'i'>kw[winni]",
		"'|'>boundary",
		"delim>boundary",
		"*>word",
	}, whens)

	h, _ = g.Lookup(StateName("win"))
	s, _ = g.State(h)
	require.NotEmpty(t, s.Transitions)
	assert.Equal(t, core.Delim(), s.Transitions[0].When)
	assert.Equal(t, core.Flag, s.Transitions[0].Do)
	assert.Equal(t, "flagged", g.NameOf(s.Transitions[0].To))
}

func TestDelimiterRestart(t *testing.T) {
	g := region(t, "free stuff", "fun")

	h, have := g.Lookup(StateName("free "))
	require.True(t, have)
	s, _ := g.State(h)

	// The root's 'f' (a restart) and its own 's', in byte order.
	require.True(t, len(s.Transitions) >= 2)
	assert.Equal(t, "kw[f]", g.NameOf(s.Transitions[0].To))
	assert.Equal(t, "kw[free s]", g.NameOf(s.Transitions[1].To))

	assert.Equal(t, 1, flags(t, g, "free fun "))
	assert.Equal(t, 1, flags(t, g, "free stuff "))
}

func TestOverlappingPhrases(t *testing.T) {
	tests := []struct {
		words   []string
		in      string
		flagged bool
	}{
		{[]string{"free stuff", "software"}, "software ", true},
		{[]string{"free stuff", "software"}, "free software ", true},
		{[]string{"free stuff", "software"}, "free stuff ", true},
		{[]string{"free stuff", "software"}, "free soft ", false},
		{[]string{"free win", "winner"}, "free winner ", true},
		{[]string{"free win", "winner"}, "free win ", true},
		{[]string{"free win", "winner"}, "free winne ", false},
		{[]string{"a b c", "b c d"}, "a b c d ", true},
		{[]string{"a b c", "b c d"}, "a b d ", false},
		{[]string{"a b c", "b c d", "c"}, "a b x c ", true},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.words, ",")+"/"+tt.in, func(t *testing.T) {
			g := region(t, tt.words...)
			n := flags(t, g, tt.in)
			if tt.flagged {
				assert.Equal(t, 1, n)
			} else {
				assert.Equal(t, 0, n)
			}
		})
	}

	g := region(t, "free stuff", "software")
	_, have := g.Lookup(StateName("free s", "s"))
	assert.True(t, have)
	_, have = g.Lookup(StateName("s"))
	assert.True(t, have)
}

func TestInterruptingKeyword(t *testing.T) {
	trie, err := New("win", "w|n")
	require.NoError(t, err)

	b := core.NewBuilder("keywords")
	boundary := b.State("boundary")
	err = trie.Compile(b.G, Targets{
		Boundary: boundary,
		Interrupts: []core.Transition{
			{When: core.Char('|'), To: boundary},
		},
	})
	var bad *BadKeyword
	require.True(t, errors.As(err, &bad))
	assert.Equal(t, "w|n", bad.Word)
}

func TestDuplicatesAndOrder(t *testing.T) {
	trie, err := New("b", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, trie.Words())
	assert.Equal(t, "a(*)b(*)", trie.DebugString())
}

func TestBadKeywords(t *testing.T) {
	for _, w := range []string{"", " win", "win ", `"win`, `win"`} {
		_, err := New(w)
		var bad *BadKeyword
		require.True(t, errors.As(err, &bad), "%q", w)
		assert.Equal(t, w, bad.Word)
	}
	require.NoError(t, Check("free stuff"))
}

func TestCompileIntoCompiledGraph(t *testing.T) {
	g, err := core.TicketGraph()
	require.NoError(t, err)

	trie, err := New("win")
	require.NoError(t, err)

	err = trie.Compile(g, Targets{})
	var compiled *core.GraphCompiled
	require.True(t, errors.As(err, &compiled))
}

func TestRead(t *testing.T) {
	in := `# spam phrases
win
"free stuff", "free access"

   winners
"free, as in beer"
`
	words, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"win", "free stuff", "free access", "winners", "free, as in beer"}, words)

	_, err = Read(strings.NewReader(`"unterminated`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
