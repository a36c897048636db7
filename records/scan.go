package records

import (
	"bufio"
	"context"
	"io"

	"github.com/Comcast/spamscan/core"
)

// Result summarizes a Scan.
type Result struct {
	// Flagged are the IDs of spam records in the order they were
	// flagged.
	Flagged []int `json:"flagged"`

	// Symbols is the number of bytes consumed.
	Symbols int64 `json:"symbols"`

	// Records is the number of open tags seen.
	Records int `json:"records"`

	// StoppedBecause is why the Walk stopped.
	StoppedBecause string `json:"stoppedBecause"`
}

// Scan walks the Graph over the input.
//
// The Result is never nil.  When the scan fails, the Result has the
// IDs that were flagged before the failure.
func Scan(ctx context.Context, g *core.Graph, r io.Reader, c *core.Control) (*Result, error) {
	br, is := r.(io.ByteReader)
	if !is {
		br = bufio.NewReader(r)
	}

	res := &Result{}

	ctl := core.Control{}
	if c != nil {
		ctl = *c
	}
	trace := ctl.Trace
	ctl.Trace = func(g *core.Graph, s core.Stride) {
		if s.Action == core.ResetID {
			res.Records++
		}
		if trace != nil {
			trace(g, s)
		}
	}

	acc := core.NewAccumulators()
	walked, err := g.Walk(ctx, br, acc, &ctl)

	res.Flagged = acc.Drain()
	if res.Flagged == nil {
		res.Flagged = []int{}
	}
	res.Symbols = walked.Symbols
	res.StoppedBecause = walked.StoppedBecause.String()

	return res, err
}
