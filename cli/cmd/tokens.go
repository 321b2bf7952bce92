package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vippsas/sqlscript/sqlparser"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

var (
	tokensAll bool

	tokensCmd = &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a UTF-8 script with their positions; reads stdin when no file (or -) is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}
			file := "-"
			if len(args) == 1 {
				file = args[0]
			}

			var (
				input []byte
				err   error
			)
			if file == "-" {
				input, err = io.ReadAll(cmd.InOrStdin())
			} else {
				input, err = os.ReadFile(file)
			}
			if err != nil {
				return errors.Wrap(err, "could not read script")
			}

			parserType, err := config.ParserType()
			if err != nil {
				return err
			}
			opts := sqlparser.LookupProfile(parserType).Lexer
			if config.EscapedQuotes != nil {
				opts.CheckEscapedQuotes = *config.EscapedQuotes
			}

			out := cmd.OutOrStdout()
			var s sqldocument.Scanner = sqldocument.NewTokenScanner(sqldocument.FileRef(file), string(input), opts)
			for {
				tok := s.Next(!tokensAll, false)
				if tok.IsEOF() {
					return nil
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Pos, tok.Type, repr.String(tok.Text))
			}
		},
	}
)

func init() {
	tokensCmd.Flags().BoolVarP(&tokensAll, "all", "a", false, "include whitespace tokens")
	rootCmd.AddCommand(tokensCmd)
}
