package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparators(t *testing.T) {
	tests := []struct {
		c    Comparator
		yes  string
		no   string
		name string
	}{
		{Any(), "a \x00\xff<", "", "*"},
		{Char('<'), "<", "a >", "'<'"},
		{Digits(), "0123456789", "a /:", "digit"},
		{Space(), " \t\r\n", "a\"\v", "ws"},
		{Delim(), " \"", "\t\na'", "delim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < len(tt.yes); i++ {
				assert.True(t, tt.c.Matches(tt.yes[i]), "%q", tt.yes[i])
			}
			for i := 0; i < len(tt.no); i++ {
				assert.False(t, tt.c.Matches(tt.no[i]), "%q", tt.no[i])
			}
			assert.Equal(t, tt.name, tt.c.String())

			c, err := ParseComparator(tt.c.String())
			require.NoError(t, err)
			assert.Equal(t, tt.c, c)
		})
	}
}

func TestParseComparatorEscapes(t *testing.T) {
	for _, b := range []byte{'\n', '\'', '"', '\\', 0, 0xe9} {
		c, err := ParseComparator(Char(b).String())
		require.NoError(t, err)
		assert.Equal(t, Char(b), c)
	}

	for _, bad := range []string{"", "'", "'ab'", "anything", "exact"} {
		_, err := ParseComparator(bad)
		assert.Error(t, err, bad)
	}
}

func TestActions(t *testing.T) {
	acc := NewAccumulators()
	acc.ID = 99

	ResetID.Exec(acc, 'x')
	assert.Equal(t, 0, acc.ID)

	for _, d := range []byte("0042") {
		FoldDigit.Exec(acc, d)
	}
	assert.Equal(t, 42, acc.ID)

	Flag.Exec(acc, ' ')
	FoldDigit.Exec(acc, '7')
	Flag.Exec(acc, ' ')
	NoAction.Exec(acc, '9')

	assert.Equal(t, 427, acc.ID)
	assert.Equal(t, []int{42, 427}, acc.Drain())
	assert.Nil(t, acc.Drain())

	ResetID.Exec(acc, 'x')
	for _, d := range []byte("99999999999999999999999") {
		FoldDigit.Exec(acc, d)
	}
	assert.Equal(t, MaxID, acc.ID)

	ResetID.Exec(acc, 'x')
	for _, d := range []byte("2147483647") {
		FoldDigit.Exec(acc, d)
	}
	assert.Equal(t, MaxID, acc.ID)
	FoldDigit.Exec(acc, '0')
	assert.Equal(t, MaxID, acc.ID)
}

func TestStepNoMatchIsNotStart(t *testing.T) {
	g := NewGraph("loop")
	start, err := g.AddState("start")
	require.NoError(t, err)
	require.NoError(t, g.AddTransition(start, Char('a'), start, NoAction))
	require.NoError(t, g.Compile())

	to, err := g.Step(start, 'a', nil)
	require.NoError(t, err)
	assert.Equal(t, start, to)

	to, err = g.Step(start, 'b', nil)
	require.NoError(t, err)
	assert.Equal(t, NoMatch, to)
	assert.NotEqual(t, g.Start, to)
	assert.Equal(t, "<none>", g.NameOf(to))

	_, err = g.Step(Handle(7), 'a', nil)
	var unknown *UnknownState
	require.True(t, errors.As(err, &unknown))
}

// Swapping two Transitions that both match a symbol changes which one
// fires.
func TestTransitionOrderMatters(t *testing.T) {
	build := func(specificFirst bool) *Graph {
		g := NewGraph("order")
		s, _ := g.AddState("s")
		digit, _ := g.AddState("digit")
		other, _ := g.AddState("other")
		if specificFirst {
			require.NoError(t, g.AddTransition(s, Digits(), digit, FoldDigit))
			require.NoError(t, g.AddTransition(s, Any(), other, NoAction))
		} else {
			require.NoError(t, g.AddTransition(s, Any(), other, NoAction))
			require.NoError(t, g.AddTransition(s, Digits(), digit, FoldDigit))
		}
		require.NoError(t, g.Compile())
		return g
	}

	acc := NewAccumulators()

	g := build(true)
	s, _ := g.Lookup("s")
	to, err := g.Step(s, '5', acc)
	require.NoError(t, err)
	assert.Equal(t, "digit", g.NameOf(to))
	assert.Equal(t, 5, acc.ID)

	acc = NewAccumulators()
	g = build(false)
	to, err = g.Step(s, '5', acc)
	require.NoError(t, err)
	assert.Equal(t, "other", g.NameOf(to))
	assert.Equal(t, 0, acc.ID, "a transition that didn't fire must not act")

	st, _ := g.State(s)
	assert.Equal(t, 0, st.Resolve('5'))
}

func TestGraphConstruction(t *testing.T) {
	g := NewGraph("g")
	a, err := g.AddState("a")
	require.NoError(t, err)

	_, err = g.AddState("a")
	var dup *DuplicateState
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "a", dup.Name)

	err = g.AddTransition(a, Any(), Handle(3), NoAction)
	var unknown *UnknownState
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, Handle(3), unknown.Handle)

	err = g.AddTransition(NoMatch, Any(), a, NoAction)
	require.True(t, errors.As(err, &unknown))

	require.NoError(t, g.AddTransition(a, Any(), a, NoAction))
	require.NoError(t, g.Compile())
	require.NoError(t, g.Compile())
	assert.True(t, g.Compiled())

	_, err = g.AddState("b")
	var compiled *GraphCompiled
	require.True(t, errors.As(err, &compiled))
	require.True(t, errors.As(g.AddTransition(a, Any(), a, NoAction), &compiled))

	h, have := g.Lookup("a")
	assert.True(t, have)
	assert.Equal(t, a, h)
	_, have = g.Lookup("b")
	assert.False(t, have)

	cp := g.Copy()
	assert.False(t, cp.Compiled())
	_, err = cp.AddState("b")
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 2, cp.Len())
}

func TestCompileEmpty(t *testing.T) {
	err := NewGraph("empty").Compile()
	var unknown *UnknownState
	require.True(t, errors.As(err, &unknown))
}

func TestGraphJSON(t *testing.T) {
	g, err := TicketGraph()
	require.NoError(t, err)

	js, err := json.Marshal(g)
	require.NoError(t, err)

	var x struct {
		Name   string `json:"name"`
		States []struct {
			Name        string `json:"name"`
			Transitions []struct {
				When string `json:"when"`
				To   int    `json:"to"`
				Do   string `json:"do"`
			} `json:"transitions"`
		} `json:"states"`
	}
	require.NoError(t, json.Unmarshal(js, &x))
	assert.Equal(t, "tickets", x.Name)
	require.Len(t, x.States, 3)
	assert.Equal(t, "'#'", x.States[0].Transitions[0].When)
	assert.Equal(t, "reset", x.States[0].Transitions[0].Do)
	assert.Equal(t, "digit", x.States[1].Transitions[0].When)
	assert.Equal(t, "*", x.States[0].Transitions[1].When)

	var back Graph
	require.NoError(t, json.Unmarshal(js, &back))
	require.NoError(t, back.Compile())
	h, have := back.Lookup("num")
	require.True(t, have)
	assert.Equal(t, Handle(2), h)
}

func TestStateCatchAll(t *testing.T) {
	g, err := TicketGraph()
	require.NoError(t, err)
	for _, s := range g.States {
		assert.True(t, s.CatchAll(), s.Name)
		assert.False(t, s.Terminal(), s.Name)
	}
}
