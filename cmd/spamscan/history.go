package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Comcast/spamscan/records"
	"github.com/Comcast/spamscan/report"
	"github.com/Comcast/spamscan/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type historyOpts struct {
	db         string
	consistent bool
	forget     bool
}

func newHistoryCmd(a *app) *cobra.Command {
	var o historyOpts

	cmd := &cobra.Command{
		Use:   "history [input]",
		Short: "Show the stored scans of an input",
		Long: `History lists the scans of the given input (default "-" for stdin)
that "scan --db" stored.

With --consistent, history instead reports the IDs that every stored
scan flagged.  With --forget, history then deletes the input's scans.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if 0 < len(args) {
				input = args[0]
			}
			return a.history(cmd.Context(), &o, input)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.db, "db", "", "bbolt file with scan history")
	fs.BoolVar(&o.consistent, "consistent", false, "Report the IDs flagged by every scan")
	fs.BoolVar(&o.forget, "forget", false, "Delete the input's history afterwards")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// ids renders IDs the way report.Stdio does.
func ids(xs []int) string {
	ss := make([]string, len(xs))
	for i, x := range xs {
		ss[i] = strconv.Itoa(x)
	}
	return strings.Join(ss, " ")
}

func (a *app) history(ctx context.Context, o *historyOpts, input string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := a.store(ctx, o.db)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			a.logger.Warn("closing storage", zap.Error(err))
		}
	}()

	srs, err := st.GetScans(ctx, input)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(a.stdout)

	if o.consistent {
		res := &records.Result{Flagged: storage.Flagged(srs)}
		if err := (&report.Stdio{W: out}).Report(ctx, input, res); err != nil {
			return err
		}
	} else {
		for _, sr := range srs {
			fmt.Fprintf(out, "%d %s", sr.Seq, sr.At.UTC().Format(time.RFC3339))
			if sr.Grammar != "" {
				fmt.Fprintf(out, " grammar: %s", sr.Grammar)
			}
			if sr.Result != nil {
				fmt.Fprintf(out, " records: %d flagged: %s", sr.Result.Records, ids(sr.Result.Flagged))
			}
			if sr.Error != "" {
				fmt.Fprintf(out, " error: %s", sr.Error)
			}
			fmt.Fprintln(out)
		}
	}

	if o.forget {
		if err := st.RemScans(ctx, input); err != nil {
			return err
		}
		fmt.Fprintf(out, "Forgot %d scans of %s\n", len(srs), input)
	}

	return out.Flush()
}
