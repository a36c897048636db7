package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Comcast/spamscan/records"

	"github.com/jsccast/yaml"
	"github.com/spf13/cobra"
)

func newGrammarCmd(a *app) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Work with grammar files",
	}

	def := &cobra.Command{
		Use:   "default",
		Short: "Print the built-in grammar as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := yaml.Marshal(records.DefaultGrammar())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s", bs)
			return nil
		},
	}

	yamlToJSON := &cobra.Command{
		Use:   "yamltojson",
		Short: "Convert a YAML grammar on stdin to JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gr, err := readGrammar(a.stdin)
			if err != nil {
				return err
			}
			var bs []byte
			if pretty {
				bs, err = json.MarshalIndent(gr, "", "  ")
			} else {
				bs, err = json.Marshal(gr)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s\n", bs)
			return nil
		},
	}
	yamlToJSON.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the JSON")

	jsonToYAML := &cobra.Command{
		Use:   "jsontoyaml",
		Short: "Convert a JSON grammar on stdin to YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := io.ReadAll(a.stdin)
			if err != nil {
				return err
			}
			var gr records.Grammar
			if err = json.Unmarshal(bs, &gr); err != nil {
				return err
			}
			if bs, err = yaml.Marshal(&gr); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s", bs)
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Check that the grammar given by --grammar compiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := a.graph()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s: %d states\n", g.Name, g.Len())
			return nil
		},
	}

	cmd.AddCommand(def, yamlToJSON, jsonToYAML, check)

	return cmd
}

func readGrammar(r io.Reader) (*records.Grammar, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return records.ParseGrammar(bs)
}
