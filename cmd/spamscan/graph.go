package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Comcast/spamscan/core"
	"github.com/Comcast/spamscan/tools"

	"github.com/jsccast/yaml"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	var (
		output   string
		css      []string
		catchAll bool
	)

	cmd := &cobra.Command{
		Use:       "graph dot|mermaid|html|png",
		Short:     "Render the grammar's automaton",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dot", "mermaid", "html", "png"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := a.graph()
			if err != nil {
				return err
			}

			if args[0] == "png" {
				basename := output
				if basename == "" {
					basename = g.Name
				}
				pngname, err := tools.PNG(g, basename, core.NoMatch, core.NoMatch)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, pngname)
				return nil
			}

			var w io.Writer = a.stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch args[0] {
			case "dot":
				err = tools.Dot(g, w, core.NoMatch, core.NoMatch)
			case "mermaid":
				opts := tools.DefaultMermaidOpts
				opts.HideCatchAlls = !catchAll
				err = tools.Mermaid(g, w, &opts)
			case "html":
				err = tools.RenderGraphPage(g, w, css)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (or basename for png)")
	cmd.Flags().StringSliceVar(&css, "css", nil, "CSS files for html")
	cmd.Flags().BoolVar(&catchAll, "catch-alls", false, "Show catch-all edges in mermaid")

	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report problems with the grammar's automaton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := a.graph()
			if err != nil {
				return err
			}
			x, err := tools.Analyze(g)
			if err != nil {
				return err
			}
			bs, err := yaml.Marshal(&x)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s", bs)

			if strict && (!x.Total() || 0 < len(x.Errors) || 0 < len(x.Unreachable)) {
				return &exitError{code: 1, err: fmt.Errorf("%s has problems", g.Name)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if a State lacks a catch-all or is unreachable")

	return cmd
}
