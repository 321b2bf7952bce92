package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vippsas/sqlscript/sqlparser"
)

// Config holds the parser settings. It is read from sqlscript.yaml (or
// sqlscript.toml) and overridden by command line flags.
type Config struct {
	Dialect           string `yaml:"dialect" toml:"dialect"`
	Delimiter         string `yaml:"delimiter" toml:"delimiter"`
	Alternate         string `yaml:"alternate" toml:"alternate"`
	Encoding          string `yaml:"encoding" toml:"encoding"`
	EmptyLine         bool   `yaml:"emptyline" toml:"emptyline"`
	EscapedQuotes     *bool  `yaml:"escapedquotes" toml:"escapedquotes"`
	EmptyStatements   string `yaml:"emptystatements" toml:"emptystatements"`
	LeadingWhitespace bool   `yaml:"leadingwhitespace" toml:"leadingwhitespace"`
}

var defaultConfigFiles = []string{"sqlscript.yaml", "sqlscript.yml", "sqlscript.toml"}

// LoadConfig reads the configuration file at path. With an empty path the
// default file names are tried in the working directory, and no file at all
// gives the zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		for _, name := range defaultConfigFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return Config{}, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "could not read configuration")
	}
	var result Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(content, &result)
	} else {
		err = yaml.Unmarshal(content, &result)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid configuration in %s", path)
	}
	return result, nil
}

// Override returns c with every field whose flag was given replaced by the
// flag value.
func (c Config) Override(f Config, changed func(name string) bool) Config {
	if changed("dialect") {
		c.Dialect = f.Dialect
	}
	if changed("delimiter") {
		c.Delimiter = f.Delimiter
	}
	if changed("alternate") {
		c.Alternate = f.Alternate
	}
	if changed("encoding") {
		c.Encoding = f.Encoding
	}
	if changed("empty-line") {
		c.EmptyLine = f.EmptyLine
	}
	if f.EscapedQuotes != nil {
		c.EscapedQuotes = f.EscapedQuotes
	}
	if changed("empty-statements") {
		c.EmptyStatements = f.EmptyStatements
	}
	if changed("leading-whitespace") {
		c.LeadingWhitespace = f.LeadingWhitespace
	}
	return c
}

func (c Config) ParserType() (sqlparser.ParserType, error) {
	if strings.TrimSpace(c.Dialect) == "" {
		return sqlparser.Standard, nil
	}
	return sqlparser.ParseParserType(c.Dialect)
}

func parseEmptyStatementPolicy(name string) (sqlparser.EmptyStatementPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fold":
		return sqlparser.EmptyFold, nil
	case "drop":
		return sqlparser.EmptyDrop, nil
	case "keep":
		return sqlparser.EmptyKeep, nil
	}
	return sqlparser.EmptyFold, errors.Errorf("unknown empty statement policy %q; use fold, drop or keep", name)
}

// NewParser builds a script parser configured by c.
func (c Config) NewParser(logger logrus.FieldLogger) (*sqlparser.ScriptParser, error) {
	parserType, err := c.ParserType()
	if err != nil {
		return nil, err
	}
	policy, err := parseEmptyStatementPolicy(c.EmptyStatements)
	if err != nil {
		return nil, err
	}

	p := sqlparser.NewScriptParser(parserType,
		sqlparser.WithLogger(logger),
		sqlparser.WithEmptyLineIsDelimiter(c.EmptyLine),
	)
	if c.Delimiter != "" || c.Alternate != "" {
		delimiter := c.Delimiter
		if delimiter == "" {
			delimiter = ";"
		}
		if err := p.SetDelimiterDefinitions(delimiter, c.Alternate); err != nil {
			return nil, errors.Wrap(err, "invalid delimiter")
		}
	}
	if c.EscapedQuotes != nil {
		p.SetCheckEscapedQuotes(*c.EscapedQuotes)
	}
	p.SetEmptyStatementPolicy(policy)
	p.SetReturnLeadingWhitespace(c.LeadingWhitespace)
	return p, nil
}

// SetSource points p at a script file, or at in for "-" and no file.
func (c Config) SetSource(p *sqlparser.ScriptParser, file string, in io.Reader) error {
	if file == "" || file == "-" {
		p.SetReader(in)
		return nil
	}
	return p.SetFile(file, c.Encoding)
}
