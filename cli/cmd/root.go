package cmd

import (
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqlscript",
		Short:        "sqlscript",
		SilenceUsage: true,
		Long: `CLI tool for splitting SQL scripts into the statements a database client would send,
the way SQL*Plus, psql, sqlcmd and the mysql client do. See README.md.`,
		PersistentPreRunE: setup,
	}

	configFile    string
	flags         Config
	escapedQuotes bool
	verbose       bool

	// resolved by setup from the config file and the flags
	config Config
	logger logrus.FieldLogger = logrus.StandardLogger()
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "configuration file; sqlscript.yaml or sqlscript.toml in the working directory is used when present")
	pf.StringVarP(&flags.Dialect, "dialect", "D", "", "parser type (oracle, postgres, sqlserver, mysql, db2, h2, standard) or database product id")
	pf.StringVar(&flags.Delimiter, "delimiter", "", "primary statement delimiter; append ;nl to only accept it alone on a line")
	pf.StringVar(&flags.Alternate, "alternate", "", "block delimiter, e.g. / or GO")
	pf.StringVar(&flags.Encoding, "encoding", "", "text encoding of script files (IANA name, default UTF-8)")
	pf.BoolVar(&flags.EmptyLine, "empty-line", false, "an empty line ends a statement")
	pf.BoolVar(&escapedQuotes, "escaped-quotes", false, `treat \' as an escaped quote inside string literals`)
	pf.StringVar(&flags.EmptyStatements, "empty-statements", "", "what to do with comment-only statements: fold, drop or keep")
	pf.BoolVar(&flags.LeadingWhitespace, "leading-whitespace", false, "include leading whitespace and comments in statement text")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log every statement found")
}

func setup(cmd *cobra.Command, args []string) error {
	std := logrus.StandardLogger()
	std.SetOutput(cmd.ErrOrStderr())
	if verbose {
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetLevel(logrus.WarnLevel)
	}
	logger = std.WithField("session", uuid.Must(uuid.NewV4()).String())

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	flags.EscapedQuotes = nil
	if changed("escaped-quotes") {
		v := escapedQuotes
		flags.EscapedQuotes = &v
	}
	config = cfg.Override(flags, changed)
	return nil
}
