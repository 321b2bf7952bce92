package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vippsas/sqlscript/sqlparser"
)

var (
	cursorCmd = &cobra.Command{
		Use:   "cursor <file> <offset>",
		Short: "Print the statement an editor cursor at the given byte offset is in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				_ = cmd.Help()
				return errors.New("need to specify arguments <file> <offset>")
			}
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "illegal offset %q", args[1])
			}

			p, err := config.NewParser(logger)
			if err != nil {
				return err
			}
			if err := config.SetSource(p, args[0], cmd.InOrStdin()); err != nil {
				return err
			}
			if err := p.ParseScript(); err != nil {
				return err
			}

			i := p.CommandIndexAtCursorPos(offset)
			if i == sqlparser.NotFound {
				return errors.Errorf("no statement at offset %d", offset)
			}
			c := p.Command(i)
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n%s\n", i, c.StartPos, p.CommandText(i))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(cursorCmd)
}
