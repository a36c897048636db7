package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Comcast/spamscan/core"
	"github.com/Comcast/spamscan/records"
	"github.com/Comcast/spamscan/report"
	"github.com/Comcast/spamscan/storage"
	"github.com/Comcast/spamscan/storage/bolt"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scanOpts struct {
	trace bool
	color bool
	limit int64
	db    string

	mqttBroker   string
	mqttTopic    string
	mqttClientID string
}

func newScanCmd(a *app) *cobra.Command {
	var o scanOpts

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Scan records and report the IDs of spam records",
		Long: `Scan reads records from the given file, from stdin if the file is "-",
or from ` + DefaultInput + ` if no file is given and that file exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scan(cmd.Context(), &o, args)
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(&o.trace, "trace", "t", false, "Print every transition")
	fs.BoolVar(&o.color, "color", false, "Highlight flagged IDs")
	fs.Int64Var(&o.limit, "limit", 0, "Stop after this many bytes (0 means no limit)")
	fs.StringVar(&o.db, "db", "", "Optional bbolt file for scan history")
	fs.StringVar(&o.mqttBroker, "mqtt-broker", "", "Optional MQTT broker URL for publishing results")
	fs.StringVar(&o.mqttTopic, "mqtt-topic", "spamscan/results", "MQTT topic for results")
	fs.StringVar(&o.mqttClientID, "mqtt-client-id", "spamscan", "MQTT client id")

	return cmd
}

// input opens what scan should read.  The returned name is "-" for
// stdin.
func (a *app) input(args []string) (string, io.ReadCloser, error) {
	name := "-"
	if 0 < len(args) {
		name = args[0]
	} else if _, err := os.Stat(DefaultInput); err == nil {
		name = DefaultInput
	}
	if name == "-" {
		return name, io.NopCloser(a.stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return name, nil, err
	}
	return name, f, nil
}

// symbol renders a byte for a trace or an error message.
func symbol(c byte) string {
	if ' ' <= c && c < 0x7f {
		return string(c)
	}
	q := core.Quote(c)
	return q[1 : len(q)-1]
}

// tracer makes a Control that prints
//
//	"from"-c->"to"
//
// for each Stride and <end> at the end of the input.
func tracer(w *bufio.Writer) *core.Control {
	return &core.Control{
		Trace: func(g *core.Graph, s core.Stride) {
			fmt.Fprintf(w, "%q-%s->%q\n", g.NameOf(s.From), symbol(s.Symbol), g.NameOf(s.To))
		},
		End: func(g *core.Graph) {
			fmt.Fprintln(w, "<end>")
		},
	}
}

func (a *app) reporters(ctx context.Context, o *scanOpts) (report.Reporters, func(), error) {
	useColor := o.color
	if f, is := a.stdout.(*os.File); is && !o.color {
		useColor = isatty.IsTerminal(f.Fd()) && !color.NoColor
	}

	rs := report.Reporters{
		&report.Stdio{W: a.stdout, Color: useColor},
	}
	done := func() {}

	if o.mqttBroker != "" {
		m := report.NewMQTT(report.MQTTConf{
			Broker:   o.mqttBroker,
			ClientID: o.mqttClientID,
			Topic:    o.mqttTopic,
			QoS:      1,
		}, a.logger)
		if err := m.Start(ctx); err != nil {
			return nil, done, err
		}
		rs = append(rs, m)
		done = func() {
			if err := m.Stop(ctx); err != nil {
				a.logger.Warn("MQTT stop", zap.Error(err))
			}
		}
	}

	return rs, done, nil
}

// store opens the scan history in the given bbolt file.  No file
// means no history.
func (a *app) store(ctx context.Context, db string) (storage.Storage, error) {
	if db == "" {
		return &storage.NoopStorage{}, nil
	}
	s, err := bolt.NewStorage(db, a.logger)
	if err != nil {
		return nil, err
	}
	if err := s.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening %s: %w", db, err)
	}
	return s, nil
}

func (a *app) scan(ctx context.Context, o *scanOpts, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if 0 < a.timeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	gr, g, err := a.graph()
	if err != nil {
		return err
	}

	name, in, err := a.input(args)
	if err != nil {
		return err
	}
	defer in.Close()

	st, err := a.store(ctx, o.db)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			a.logger.Warn("closing storage", zap.Error(err))
		}
	}()

	out := bufio.NewWriter(a.stdout)
	defer out.Flush()

	ctl := &core.Control{}
	if o.trace {
		ctl = tracer(out)
	}
	ctl.Limit = o.limit

	a.logger.Debug("scanning", zap.String("input", name))
	then := time.Now()
	res, scanErr := records.Scan(ctx, g, bufio.NewReader(in), ctl)
	a.logger.Debug("scanned",
		zap.String("input", name),
		zap.Int64("symbols", res.Symbols),
		zap.Int("records", res.Records),
		zap.Ints("flagged", res.Flagged),
		zap.Duration("elapsed", time.Since(then)))

	sr := &storage.ScanRecord{
		Input:   name,
		Grammar: gr.Name,
		At:      then,
		Result:  res,
	}
	if scanErr != nil {
		sr.Error = scanErr.Error()
	}
	if err := st.WriteScan(ctx, sr); err != nil {
		a.logger.Error("storing scan", zap.Error(err))
	}

	if err := out.Flush(); err != nil {
		return err
	}

	if scanErr != nil {
		var unhandled *core.UnhandledSymbol
		if errors.As(scanErr, &unhandled) {
			return &exitError{
				code: 1,
				err:  errors.New("Error: Unhandled symbol: " + symbol(unhandled.Symbol)),
			}
		}
		return scanErr
	}

	rs, done, err := a.reporters(ctx, o)
	if err != nil {
		return err
	}
	defer done()

	return rs.Report(ctx, name, res)
}
