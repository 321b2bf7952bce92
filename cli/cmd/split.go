package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vippsas/sqlscript/sqlparser"
)

// commandSummary is the yaml form of a command.
type commandSummary struct {
	Index     int      `yaml:"index"`
	Line      int      `yaml:"line"`
	Col       int      `yaml:"col"`
	Start     int      `yaml:"start"`
	End       int      `yaml:"end"`
	Delimiter string   `yaml:"delimiter,omitempty"`
	SQL       string   `yaml:"sql"`
	Errors    []string `yaml:"errors,omitempty"`
}

func summarize(cmd *sqlparser.Command) commandSummary {
	s := commandSummary{
		Index: cmd.Index,
		Line:  cmd.StartPos.Line,
		Col:   cmd.StartPos.Col,
		Start: cmd.StartOffset,
		End:   cmd.EndOffset,
		SQL:   cmd.SQL,
	}
	if cmd.Delimiter != nil {
		s.Delimiter = cmd.Delimiter.String()
	}
	for _, e := range cmd.Errors {
		s.Errors = append(s.Errors, e.Error())
	}
	return s
}

var (
	splitFormat string

	splitCmd = &cobra.Command{
		Use:   "split [file]",
		Short: "Split a script into statements and print them; reads stdin when no file (or -) is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			if splitFormat != "text" && splitFormat != "yaml" {
				return errors.Errorf("unknown format %q", splitFormat)
			}

			p, err := config.NewParser(logger)
			if err != nil {
				return err
			}
			if err := config.SetSource(p, file, cmd.InOrStdin()); err != nil {
				return err
			}
			if err := p.StartIterator(); err != nil {
				return err
			}
			defer p.Done()

			out := cmd.OutOrStdout()
			var summaries []commandSummary
			for {
				c, err := p.NextCommand()
				if err != nil {
					return err
				}
				if c == nil {
					break
				}
				if splitFormat == "yaml" {
					summaries = append(summaries, summarize(c))
					continue
				}
				fmt.Fprintln(out, c.SQL)
				fmt.Fprintln(out, "===")
			}

			if splitFormat == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(summaries); err != nil {
					return err
				}
				return enc.Close()
			}
			return nil
		},
	}
)

func init() {
	splitCmd.Flags().StringVarP(&splitFormat, "format", "f", "text", "output format: text or yaml")
	rootCmd.AddCommand(splitCmd)
}
