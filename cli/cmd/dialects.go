package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vippsas/sqlscript/sqlparser"
)

var (
	dialectsCmd = &cobra.Command{
		Use:   "dialects",
		Short: "List the parser types with their block delimiters",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"dialect", "alternate", "@file"})
			for _, t := range sqlparser.ParserTypes() {
				profile := sqlparser.LookupProfile(t)
				alternate := "-"
				if !profile.AlternateDelimiter.IsEmpty() {
					alternate = profile.AlternateDelimiter.String()
				}
				table.Append([]string{t.String(), alternate, strconv.FormatBool(profile.SupportsIncludeShorthand)})
			}
			table.Render()
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(dialectsCmd)
}
