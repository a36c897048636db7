package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Comcast/spamscan/core"
	"github.com/Comcast/spamscan/records"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultInput is read by scan when no input is given and the file
// exists.
const DefaultInput = "messagefile.txt"

// app is what the commands share.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	grammarFile string
	debug       bool
	timeout     time.Duration

	logger *zap.Logger

	// build compiles a Grammar.  It's records.Build except in
	// tests that need a Graph that can fail.
	build func(*records.Grammar) (*core.Graph, error)
}

// exitError carries a specific exit status.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// grammar loads the grammar given by --grammar or the default one.
func (a *app) grammar() (*records.Grammar, error) {
	if a.grammarFile == "" {
		return records.DefaultGrammar(), nil
	}
	gr, err := records.LoadGrammar(a.grammarFile)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded grammar",
		zap.String("file", a.grammarFile),
		zap.Int("keywords", len(gr.Keywords)))
	return gr, nil
}

func (a *app) graph() (*records.Grammar, *core.Graph, error) {
	gr, err := a.grammar()
	if err != nil {
		return nil, nil, err
	}
	g, err := a.build(gr)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("built graph", zap.String("name", g.Name), zap.Int("states", g.Len()))
	return gr, g, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "spamscan",
		Short:         "spamscan - find spam in streams of <DOC> records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.debug)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.grammarFile, "grammar", "g", "", "Grammar file (YAML or JSON); default is the built-in <DOC> grammar")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Give up after this long (0 means never)")

	root.AddCommand(newScanCmd(a))
	root.AddCommand(newGraphCmd(a))
	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newGrammarCmd(a))
	root.AddCommand(newHistoryCmd(a))

	return root
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zap.NewNop(),
		build:  records.Build,
	}
}

// run executes the command line and returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return newApp(stdin, stdout, stderr).run(args)
}

func (a *app) run(args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		fmt.Fprintln(a.stderr, ee.Error())
		return ee.code
	}
	fmt.Fprintf(a.stderr, "Error: %s\n", err)
	return 2
}
