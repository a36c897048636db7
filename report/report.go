// Package report tells somebody which records were spam.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Comcast/spamscan/records"

	"github.com/fatih/color"
)

// Reporter publishes the Result of a scan.
type Reporter interface {
	Report(ctx context.Context, input string, res *records.Result) error
}

// Header starts the line written by Stdio.
const Header = "The following messages were spam:"

// Stdio writes the flagged IDs on one line:
//
//	The following messages were spam: 1 3
type Stdio struct {
	W io.Writer

	// Color highlights the IDs even when the output isn't a
	// terminal.
	Color bool
}

func (s *Stdio) Report(ctx context.Context, input string, res *records.Result) error {
	var style *color.Color
	if s.Color {
		style = color.New(color.FgRed, color.Bold)
		style.EnableColor()
	}
	line := Header
	for _, id := range res.Flagged {
		x := strconv.Itoa(id)
		if style != nil {
			x = style.Sprint(x)
		}
		line += " " + x
	}
	_, err := fmt.Fprintln(s.W, line)
	return err
}

// Reporters reports to each Reporter in turn and stops at the first
// error.
type Reporters []Reporter

func (rs Reporters) Report(ctx context.Context, input string, res *records.Result) error {
	for _, r := range rs {
		if err := r.Report(ctx, input, res); err != nil {
			return err
		}
	}
	return nil
}
