package core

import (
	"context"
	"io"
)

var (
	// DefaultControl will be used by Graph.Walk if the given
	// control is nil.
	DefaultControl = &Control{}
)

// StopReason represents the possible reasons for a Walk to terminate.
type StopReason int

const (
	Done      StopReason = iota // Consumed all input.
	Unmatched                   // No Transition for a symbol.
	Limited                     // Too many symbols.
	Canceled                    // Context done.
	ReadError                   // The input failed.
)

func (r StopReason) String() string {
	switch r {
	case Done:
		return "done"
	case Unmatched:
		return "unmatched"
	case Limited:
		return "limited"
	case Canceled:
		return "canceled"
	case ReadError:
		return "read error"
	}
	return "unknown"
}

// Stride represents one symbol that Walk consumed (or failed to
// consume).
type Stride struct {
	// From is the State that consumed the symbol.
	From Handle `json:"from"`

	// To is the next State, which is NoMatch if no Transition
	// matched.
	To Handle `json:"to"`

	// Symbol is what was consumed.
	Symbol byte `json:"symbol"`

	// Offset is the position of Symbol in the input.
	Offset int64 `json:"offset"`

	// Action is the Action (if any) of the Transition taken.
	Action Action `json:"action,omitempty"`
}

// Control influences how Walk() operates.
type Control struct {
	// Limit is the maximum number of symbols that a Walk() can
	// consume.  Zero means no limit.
	Limit int64

	// Trace, if not nil, is called for every Stride.
	Trace func(g *Graph, s Stride)

	// End, if not nil, is called once when the input is
	// exhausted.
	End func(g *Graph)
}

// Walked summarizes a Walk().
type Walked struct {
	// Symbols is the number of symbols consumed.
	Symbols int64 `json:"symbols"`

	// At is the current State when the Walk stopped.  If
	// StoppedBecause is Unmatched, At is the State that had no
	// Transition for the last symbol.
	At Handle `json:"at"`

	// StoppedBecause reports the reason why the Walk stopped.
	StoppedBecause StopReason `json:"stoppedBecause"`

	// Error stores the error that stopped the Walk (if any).
	Error error `json:"-"`
}

// Walk consumes symbols from the given reader until io.EOF.
//
// Walk starts at the Graph's Start State.  Each symbol is given to
// the current State's Step, and the result becomes the current State.
// If no Transition matches, Walk stops and returns an
// *UnhandledSymbol.  Whatever Actions already did to acc stays done.
//
// The returned Walked is never nil.
func (g *Graph) Walk(ctx context.Context, r io.ByteReader, acc *Accumulators, c *Control) (*Walked, error) {
	if c == nil {
		c = DefaultControl
	}
	if acc == nil {
		acc = NewAccumulators()
	}

	walked := &Walked{
		At: g.Start,
	}

	if !g.compiled {
		walked.StoppedBecause = Unmatched
		walked.Error = &GraphNotCompiled{g}
		return walked, walked.Error
	}

	stop := func(why StopReason, err error) (*Walked, error) {
		walked.StoppedBecause = why
		walked.Error = err
		return walked, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return stop(Canceled, err)
		}

		s, have := g.State(walked.At)
		if !have {
			// We hope we never get here since Compile checked
			// every destination.
			return stop(Unmatched, &UnknownState{g, walked.At})
		}

		if 0 < c.Limit && c.Limit <= walked.Symbols {
			return stop(Limited, nil)
		}

		sym, err := r.ReadByte()
		if err == io.EOF {
			if c.End != nil {
				c.End(g)
			}
			return stop(Done, nil)
		}
		if err != nil {
			return stop(ReadError, err)
		}

		t := s.take(sym, acc)
		stride := Stride{
			From:   walked.At,
			To:     t.To,
			Symbol: sym,
			Offset: walked.Symbols,
			Action: t.Do,
		}

		walked.Symbols++

		if c.Trace != nil {
			c.Trace(g, stride)
		}

		if stride.To == NoMatch {
			return stop(Unmatched, &UnhandledSymbol{
				Graph:  g,
				State:  stride.From,
				Symbol: sym,
				Offset: stride.Offset,
			})
		}

		walked.At = stride.To
	}
}
