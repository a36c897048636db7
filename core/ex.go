package core

// TicketGraph makes an example Graph that's useful to have around.
//
// It recognizes tickets like "#123!" in arbitrary text: '#' starts a
// ticket, digits build its number, and '!' flags it.  Anything else
// goes back to the start.  For example, "see #12! and #7?" flags 12
// only.
func TicketGraph() (*Graph, error) {
	g := NewGraph("tickets")
	g.Doc = "Flags `#NNN!` tickets."

	var (
		start, _ = g.AddState("start")
		hash, _  = g.AddState("hash")
		num, _   = g.AddState("num")
	)

	edges := []struct {
		from Handle
		when Comparator
		to   Handle
		do   Action
	}{
		{start, Char('#'), hash, ResetID},
		{start, Any(), start, NoAction},

		{hash, Digits(), num, FoldDigit},
		{hash, Char('#'), hash, ResetID},
		{hash, Any(), start, NoAction},

		{num, Digits(), num, FoldDigit},
		{num, Char('!'), start, Flag},
		{num, Char('#'), hash, ResetID},
		{num, Any(), start, NoAction},
	}

	for _, e := range edges {
		if err := g.AddTransition(e.from, e.when, e.to, e.do); err != nil {
			return nil, err
		}
	}

	if err := g.Compile(); err != nil {
		return nil, err
	}

	return g, nil
}
