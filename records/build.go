package records

import (
	"strconv"

	"github.com/Comcast/spamscan/core"
	"github.com/Comcast/spamscan/keywords"
)

// Names of the framing States.  Chains of States for tags get names
// like "openDoc_2".
const (
	StartState        = "start"
	DocState          = "doc"
	DocIDState        = "docid"
	IDState           = "id"
	IDDigitsState     = "id-digits"
	IDSpaceState      = "id-space"
	HeaderState       = "header"
	HeaderEOLState    = "header-eol"
	DelimitedState    = "delimited"
	NotDelimitedState = "not-delimited"
	SpamState         = "isSpam"
)

type compiler struct {
	*core.Builder
}

// chain adds a State for each proper, non-empty prefix of text.  The
// returned Transition enters the chain on text[0] and is for the
// caller to add wherever the chain can start.  Reading the rest of
// text leads to the given State, and the last Transition does the
// given Action.
//
// A chain State that reads text[0] again restarts the chain.  Any
// other mismatch is up to fallback.
func (c *compiler) chain(name, text string, to core.Handle, do core.Action, fallback func(core.Handle)) core.Transition {
	if len(text) == 1 {
		return core.Transition{When: core.Char(text[0]), To: to, Do: do}
	}

	hs := make([]core.Handle, len(text)-1)
	for i := range hs {
		hs[i] = c.State(name + "_" + strconv.Itoa(i))
	}

	for i, h := range hs {
		next := text[i+1]
		if i+1 < len(hs) {
			c.Go(h, core.Char(next), hs[i+1])
		} else {
			c.Edge(h, core.Char(next), to, do)
		}
		if next != text[0] {
			c.Go(h, core.Char(text[0]), hs[0])
		}
		fallback(h)
	}

	return core.Transition{When: core.Char(text[0]), To: hs[0]}
}

// Build compiles a Grammar to a Graph.
//
// The Graph has a framing layer for the tags and the record ID and a
// keyword layer (see keywords.Trie.Compile) for record bodies.  Every
// framing State falls back to the start State on unexpected input,
// so a damaged record doesn't spoil the records after it.  After a
// record is flagged, the Graph ignores keywords until the close tag,
// so a record is flagged at most once.
//
// Every State of the resulting Graph has a catch-all Transition.
func Build(gr *Grammar) (*core.Graph, error) {
	if err := gr.Validate(); err != nil {
		return nil, err
	}

	trie, err := keywords.New(gr.Keywords...)
	if err != nil {
		return nil, err
	}

	name := gr.Name
	if name == "" {
		name = "records"
	}
	c := &compiler{core.NewBuilder(name)}
	c.G.Doc = gr.Doc

	var (
		start     = c.State(StartState)
		doc       = c.State(DocState)
		docid     = c.State(DocIDState)
		digits    = c.State(IDDigitsState)
		space     = c.State(IDSpaceState)
		header    = c.State(HeaderState)
		headerEOL = c.State(HeaderEOLState)
		delimited = c.State(DelimitedState)
		word      = c.State(NotDelimitedState)
		spam      = c.State(SpamState)

		toStart = func(h core.Handle) { c.Go(h, core.Any(), start) }
	)

	// <DOC>
	openDoc := c.chain("openDoc", gr.OpenTag, doc, core.ResetID, toStart)
	c.Edges(start, []core.Transition{openDoc})
	toStart(start)

	// <DOCID>
	openDocID := c.chain("openDocID", gr.IDOpenTag, docid, core.NoAction, toStart)
	c.Go(doc, core.Space(), doc)
	c.Edges(doc, []core.Transition{openDocID})
	toStart(doc)

	// msg
	c.Go(docid, core.Space(), docid)
	if gr.IDPrefix == "" {
		c.Edge(docid, core.Digits(), digits, core.FoldDigit)
	} else {
		id := c.State(IDState)
		prefix := c.chain("idPrefix", gr.IDPrefix, id, core.NoAction, toStart)
		c.Edges(docid, []core.Transition{prefix})
		c.Edge(id, core.Digits(), digits, core.FoldDigit)
		toStart(id)
	}
	toStart(docid)

	// 00042</DOCID>
	closeDocID := c.chain("closeDocID", gr.IDCloseTag, header, core.NoAction, toStart)
	c.Edge(digits, core.Digits(), digits, core.FoldDigit)
	c.Edges(digits, []core.Transition{closeDocID})
	c.Go(digits, core.Space(), space)
	toStart(digits)
	c.Go(space, core.Space(), space)
	c.Edges(space, []core.Transition{closeDocID})
	toStart(space)

	// Skip header lines until an empty line.
	c.Go(header, core.Char('\n'), headerEOL)
	c.Go(header, core.Any(), header)
	c.Go(headerEOL, core.Char('\n'), delimited)
	c.Go(headerEOL, core.Space(), headerEOL)
	c.Go(headerEOL, core.Any(), header)

	// Body.
	closeDoc := c.chain("closeDoc", gr.CloseTag, start, core.NoAction, func(h core.Handle) {
		c.Go(h, core.Delim(), delimited)
		c.Go(h, core.Any(), word)
	})
	if c.Err != nil {
		return nil, c.Err
	}
	if err := trie.Compile(c.G, keywords.Targets{
		Boundary:   delimited,
		Word:       word,
		Flagged:    spam,
		Interrupts: []core.Transition{closeDoc},
	}); err != nil {
		return nil, err
	}

	// Once spam, always spam until </DOC>.
	closeDocSpam := c.chain("closeDocSpam", gr.CloseTag, start, core.NoAction, func(h core.Handle) {
		c.Go(h, core.Any(), spam)
	})
	c.Edges(spam, []core.Transition{closeDocSpam})
	c.Go(spam, core.Any(), spam)

	return c.Compile()
}
