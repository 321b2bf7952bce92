package sqlparser

import (
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// EmptyStatementPolicy decides what happens to statements that contain
// nothing but comments.
type EmptyStatementPolicy int

const (
	// EmptyFold drops comment-only statements ended by a delimiter and
	// keeps comments ended by a blank line as leading text of the next
	// statement.
	EmptyFold EmptyStatementPolicy = iota
	// EmptyDrop drops comment-only statements.
	EmptyDrop
	// EmptyKeep emits comment-only statements as commands.
	EmptyKeep
)

func (p EmptyStatementPolicy) String() string {
	switch p {
	case EmptyDrop:
		return "drop"
	case EmptyKeep:
		return "keep"
	}
	return "fold"
}

// lookaheadMargin is how far past a token the streaming source must have
// read before the token is classified; multi-word keywords and the line
// rules of single-line delimiters look ahead this far at most.
const lookaheadMargin = 256

// ScriptParser splits a SQL script into commands. It is configured with
// setters, then used either as a pull iterator (StartIterator, NextCommand,
// Done) or in batch (ParseScript, Command, CommandIndexAtCursorPos).
//
// A ScriptParser is not safe for concurrent use.
type ScriptParser struct {
	profile Profile
	logger  logrus.FieldLogger

	primary, alternate      sqldocument.Delimiter
	emptyLineIsDelimiter    bool
	checkEscapedQuotes      bool
	returnLeadingWhitespace bool
	storeText               bool
	emptyPolicy             EmptyStatementPolicy
	chunkSize               int

	source    scriptSource
	hasSource bool

	// iteration state
	buf        *scriptBuffer
	closer     io.Closer
	scanner    *sqldocument.TokenScanner
	tester     sqldocument.DelimiterTester
	current    sqldocument.Delimiter // primary delimiter, possibly changed by the script
	next       position
	index      int
	exhausted  bool
	forceStore bool

	commands []*Command
}

type Option func(*ScriptParser)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *ScriptParser) { p.SetLogger(logger) }
}

// WithChunkSize sets how many bytes a streaming source reads at a time.
func WithChunkSize(n int) Option {
	return func(p *ScriptParser) { p.chunkSize = n }
}

func WithDelimiters(primary, alternate sqldocument.Delimiter) Option {
	return func(p *ScriptParser) {
		p.primary = primary
		p.alternate = alternate
	}
}

func WithEmptyLineIsDelimiter(flag bool) Option {
	return func(p *ScriptParser) { p.emptyLineIsDelimiter = flag }
}

func NewScriptParser(parserType ParserType, opts ...Option) *ScriptParser {
	profile := LookupProfile(parserType)
	p := &ScriptParser{
		profile:            profile,
		logger:             discardLogger(),
		primary:            sqldocument.StandardDelimiter,
		alternate:          profile.AlternateDelimiter,
		checkEscapedQuotes: profile.Lexer.CheckEscapedQuotes,
		storeText:          true,
		chunkSize:          defaultChunkSize,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// NewScriptParserForDBID picks the parser type from a database product id.
func NewScriptParserForDBID(dbid string, opts ...Option) *ScriptParser {
	return NewScriptParser(ParserTypeForDBID(dbid), opts...)
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func (p *ScriptParser) ParserType() ParserType {
	return p.profile.Type
}

func (p *ScriptParser) SetLogger(logger logrus.FieldLogger) {
	if logger == nil {
		logger = discardLogger()
	}
	p.logger = logger
}

// SetScript parses text held in memory.
func (p *ScriptParser) SetScript(text string) {
	p.setSource(scriptSource{text: text})
}

// SetFile streams the script from a file in the given encoding ("" for
// UTF-8). The file is opened by StartIterator and closed by Done.
func (p *ScriptParser) SetFile(path, encodingName string) error {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return err
	}
	p.setSource(scriptSource{path: path, encoding: enc})
	return nil
}

// SetReader streams UTF-8 text from r. The parser never closes r.
func (p *ScriptParser) SetReader(r io.Reader) {
	p.setSource(scriptSource{reader: r})
}

func (p *ScriptParser) setSource(s scriptSource) {
	p.release()
	p.source = s
	p.hasSource = true
	p.commands = nil
}

// SetDelimiters sets the primary delimiter and the alternate (block)
// delimiter. The alternate may be the zero Delimiter for none.
func (p *ScriptParser) SetDelimiters(primary, alternate sqldocument.Delimiter) error {
	if primary.IsEmpty() {
		return sqldocument.ErrEmptyDelimiter
	}
	p.primary = primary
	p.alternate = alternate
	return nil
}

// SetDelimiterDefinitions parses the delimiters with ParseDelimiter. An
// empty alternate keeps the dialect default.
func (p *ScriptParser) SetDelimiterDefinitions(primary, alternate string) error {
	d, err := sqldocument.ParseDelimiter(primary)
	if err != nil {
		return err
	}
	alt := p.profile.AlternateDelimiter
	if strings.TrimSpace(alternate) != "" {
		if alt, err = sqldocument.ParseDelimiter(alternate); err != nil {
			return err
		}
	}
	return p.SetDelimiters(d, alt)
}

func (p *ScriptParser) Delimiters() (primary, alternate sqldocument.Delimiter) {
	return p.primary, p.alternate
}

// SetEmptyLineIsDelimiter makes a blank line end a statement.
func (p *ScriptParser) SetEmptyLineIsDelimiter(flag bool) {
	p.emptyLineIsDelimiter = flag
}

// SetCheckEscapedQuotes makes \' an escaped quote inside string literals.
func (p *ScriptParser) SetCheckEscapedQuotes(flag bool) {
	p.checkEscapedQuotes = flag
}

// SetReturnLeadingWhitespace includes the whitespace and comments before a
// statement in its text.
func (p *ScriptParser) SetReturnLeadingWhitespace(flag bool) {
	p.returnLeadingWhitespace = flag
}

// SetStoreStatementText controls whether Command.SQL is filled in. Without
// it commands carry offsets only.
func (p *ScriptParser) SetStoreStatementText(flag bool) {
	p.storeText = flag
}

func (p *ScriptParser) SetEmptyStatementPolicy(policy EmptyStatementPolicy) {
	p.emptyPolicy = policy
}

// StartIterator opens the source and resets the iteration. Every
// successful StartIterator must be paired with Done.
func (p *ScriptParser) StartIterator() error {
	p.release()
	if !p.hasSource {
		return ErrNoSource
	}
	buf, closer, err := p.source.open(p.chunkSize)
	if err != nil {
		return &ScriptError{Path: p.source.name(), Err: err}
	}
	p.buf = buf
	p.closer = closer

	opts := p.profile.Lexer
	opts.CheckEscapedQuotes = p.checkEscapedQuotes
	p.scanner = sqldocument.NewTokenScanner(sqldocument.FileRef(p.source.path), "", opts)
	p.current = p.primary
	p.resetTester()
	p.next = position{offset: 0, line: 1, col: 1}
	p.index = 0
	p.exhausted = false
	p.logger.WithFields(logrus.Fields{
		"source":    p.source.name(),
		"dialect":   p.profile.Type.String(),
		"delimiter": p.primary.String(),
		"alternate": p.alternate.String(),
	}).Debug("sqlscript: start")
	return nil
}

func (p *ScriptParser) resetTester() {
	p.tester = p.profile.NewTester()
	p.tester.SetDelimiters(p.current, p.alternate)
}

// Done releases the source. It is safe to call more than once.
func (p *ScriptParser) Done() error {
	return p.release()
}

func (p *ScriptParser) release() error {
	var err error
	if p.closer != nil {
		err = p.closer.Close()
	}
	p.closer = nil
	p.buf = nil
	p.scanner = nil
	return err
}

// NextCommand returns the next command, or nil at the end of the script.
// Errors are I/O or decoding failures of the source; malformed SQL is
// never an error.
func (p *ScriptParser) NextCommand() (*Command, error) {
	if p.buf == nil {
		return nil, ErrNotStarted
	}
	for !p.exhausted {
		res, ok := p.scanStatement()
		if !ok {
			if err := p.buf.more(p.buf.end() - p.next.offset); err != nil {
				offset := p.buf.end()
				_ = p.release()
				return nil, &ScriptError{Path: p.source.name(), Offset: offset, Err: err}
			}
			p.resetTester()
			continue
		}

		if newPrimary, changed := p.tester.StatementFinished(); changed {
			p.logger.WithField("delimiter", newPrimary.String()).Debug("sqlscript: delimiter changed")
			p.current = newPrimary
			res.cmd = nil
		}
		p.next = res.next
		p.exhausted = res.end
		p.buf.discard(p.next.offset)

		if res.cmd != nil {
			res.cmd.Index = p.index
			p.index++
			p.logCommand(res.cmd)
			return res.cmd, nil
		}
	}
	return nil, nil
}

func (p *ScriptParser) logCommand(cmd *Command) {
	fields := logrus.Fields{
		"index": cmd.Index,
		"start": cmd.StartOffset,
		"end":   cmd.EndOffset,
	}
	if cmd.Delimiter != nil {
		fields["delimiter"] = cmd.Delimiter.String()
	}
	p.logger.WithFields(fields).Debug("sqlscript: command")
	for _, e := range cmd.Errors {
		p.logger.WithField("pos", e.Pos.String()).Warn(e.Message)
	}
}

// ParseScript splits the whole script and keeps the commands for random
// access. Statement text is always stored for streamed sources, since it
// cannot be sliced from them later.
func (p *ScriptParser) ParseScript() (err error) {
	p.forceStore = !p.source.inMemory()
	defer func() { p.forceStore = false }()
	if err := p.StartIterator(); err != nil {
		return err
	}
	defer func() {
		if doneErr := p.Done(); err == nil {
			err = doneErr
		}
	}()

	p.commands = nil
	for {
		cmd, err := p.NextCommand()
		if err != nil {
			return err
		}
		if cmd == nil {
			return nil
		}
		p.commands = append(p.commands, cmd)
	}
}

// Size is the number of commands found by ParseScript.
func (p *ScriptParser) Size() int {
	return len(p.commands)
}

func (p *ScriptParser) Commands() []*Command {
	return p.commands
}

// Command returns the i-th command, or nil when out of range.
func (p *ScriptParser) Command(i int) *Command {
	if i < 0 || i >= len(p.commands) {
		return nil
	}
	return p.commands[i]
}

// CommandText returns the statement text of the i-th command.
func (p *ScriptParser) CommandText(i int) string {
	cmd := p.Command(i)
	switch {
	case cmd == nil:
		return ""
	case cmd.HasText():
		return cmd.SQL
	case p.source.inMemory():
		return p.source.text[cmd.StartOffset:cmd.EndOffset]
	}
	return ""
}

// CommandIndexAtCursorPos maps an editor cursor offset to the index of the
// command it is in, or NotFound.
func (p *ScriptParser) CommandIndexAtCursorPos(pos int) int {
	return commandIndexAt(p.commands, pos)
}

// position is a place in the complete script.
type position struct {
	offset    int
	line, col int
}

func (p position) pos(file sqldocument.FileRef) sqldocument.Pos {
	return sqldocument.Pos{File: file, Line: p.line, Col: p.col}
}

func positionAfter(s *sqldocument.TokenScanner) position {
	stop := s.Stop()
	return position{offset: s.StopOffset(), line: stop.Line, col: stop.Col}
}

type scanResult struct {
	cmd  *Command // nil when the statement was dropped
	next position
	end  bool
}

// statement collects what has been seen of the statement being scanned.
type statement struct {
	start    position
	window   string // buffered text from start.offset on
	complete bool

	atLineStart    bool
	hasContent     bool // any non-whitespace token
	hasSignificant bool // any token other than whitespace and comments
	contentStart   int
	contentPos     sqldocument.Pos
	lastEnd        int
	lastStop       position
	errors         []sqldocument.Error
}

func (st *statement) note(tok sqldocument.Token, after position) {
	if !st.hasContent {
		st.hasContent = true
		st.contentStart = tok.Start
		st.contentPos = tok.Pos
	}
	if tok.IsSignificant() {
		st.hasSignificant = true
	}
	st.lastEnd = tok.End
	st.lastStop = after
}

func (st *statement) text(from, to int) string {
	return st.window[from-st.start.offset : to-st.start.offset]
}

// scanStatement scans one statement from p.next. It returns false when the
// buffered text ends before a decision can be made; the caller reads more
// and scans the statement again from its start.
func (p *ScriptParser) scanStatement() (scanResult, bool) {
	st := &statement{
		start:       p.next,
		window:      p.buf.from(p.next.offset),
		complete:    p.buf.complete(),
		atLineStart: p.next.col == 1,
	}
	windowEnd := p.buf.end()
	sc := p.scanner
	sc.Reset(st.window, st.start.offset, st.start.line, st.start.col)

	for {
		tt := sc.NextToken()
		if !st.complete && (tt == sqldocument.EOFToken || sc.StopOffset() > windowEnd-lookaheadMargin) {
			return scanResult{}, false
		}
		tok := sc.Current()
		if tok.IsEOF() {
			return p.finishAtEOF(st), true
		}
		if tok.IsError() {
			st.errors = append(st.errors, diagnostic(tok))
		}

		significant := tok.IsSignificant()
		isStart := significant && !st.hasSignificant
		p.tester.OnToken(tok, isStart)

		if isStart && p.tester.IsSingleLineStatement(tok, st.atLineStart) {
			return p.finishSingleLine(st, tok)
		}

		if tok.IsWhitespace() {
			if p.emptyLineIsDelimiter && strings.Count(tok.Text, "\n") >= 2 && st.hasContent && !p.insideBlock() {
				if res, ok := p.finishAtBlankLine(st); ok {
					return res, true
				}
			}
			if strings.Contains(tok.Text, "\n") {
				st.atLineStart = true
			}
			continue
		}

		if significant {
			m, ok := p.matchDelimiter(sc, st, tok)
			if !ok {
				return scanResult{}, false
			}
			if m.found {
				return p.finishAtDelimiter(st, m), true
			}
		}
		st.note(tok, positionAfter(sc))
		st.atLineStart = false
	}
}

// insideBlock is true while the tester holds back the primary delimiter.
func (p *ScriptParser) insideBlock() bool {
	return !p.tester.CurrentDelimiter().Equal(p.current)
}

type delimiterMatch struct {
	found     bool
	delimiter sqldocument.Delimiter
	start     int // where the delimiter starts
	after     position
}

// matchDelimiter tests whether a delimiter starts at tok. It returns false
// when the lookahead ran out of buffered text.
func (p *ScriptParser) matchDelimiter(sc *sqldocument.TokenScanner, st *statement, tok sqldocument.Token) (delimiterMatch, bool) {
	current := p.tester.CurrentDelimiter()
	candidates := []sqldocument.Delimiter{current}
	if p.tester.AlternateAlwaysTerminates() && !p.alternate.IsEmpty() && !p.alternate.Equal(current) {
		candidates = append(candidates, p.alternate)
	}
	for _, d := range candidates {
		if d.IsEmpty() {
			continue
		}
		m, ok := p.delimiterAt(sc, st, tok, d)
		if !ok || m.found {
			return m, ok
		}
	}
	return delimiterMatch{}, true
}

func (p *ScriptParser) delimiterAt(sc *sqldocument.TokenScanner, st *statement, tok sqldocument.Token, d sqldocument.Delimiter) (delimiterMatch, bool) {
	literal := d.Literal

	// "END$$": $ continues identifiers, so a symbolic delimiter can end up
	// glued to the end of one
	if tok.IsIdentifier() && !d.SingleLine && len(tok.Text) > len(literal) && isSymbolic(literal) &&
		d.EqualText(tok.Text[len(tok.Text)-len(literal):]) {
		st.note(tok, positionAfter(sc))
		st.lastEnd = tok.End - len(literal)
		return delimiterMatch{found: true, delimiter: d, start: st.lastEnd, after: positionAfter(sc)}, true
	}

	rest := st.window[tok.Start-st.start.offset:]
	if !d.HasPrefixOf(rest) {
		return delimiterMatch{}, true
	}

	// the literal may span several tokens ("$$" is two operators)
	la := sc.Clone()
	want := tok.Start + len(literal)
	for la.StopOffset() < want {
		tt := la.NextToken()
		if !st.complete && la.AtEndOfInput() {
			return delimiterMatch{}, false
		}
		if tt == sqldocument.EOFToken || tt == sqldocument.WhitespaceToken {
			return delimiterMatch{}, true
		}
	}
	if la.StopOffset() != want {
		return delimiterMatch{}, true
	}
	after := positionAfter(la)

	atLineEnd := true
	if d.SingleLine {
		var ok bool
		if atLineEnd, ok = lineEndsAt(la.Clone(), st.complete); !ok {
			return delimiterMatch{}, false
		}
	}
	if !d.Matches(rest[:len(literal)], st.atLineStart, atLineEnd) {
		return delimiterMatch{}, true
	}
	return delimiterMatch{found: true, delimiter: d, start: tok.Start, after: after}, true
}

// lineEndsAt reports whether only whitespace follows the scanner position
// up to the next line break or the end of the script.
func lineEndsAt(la *sqldocument.TokenScanner, complete bool) (bool, bool) {
	for {
		tt := la.NextToken()
		if !complete && la.AtEndOfInput() {
			return false, false
		}
		switch tt {
		case sqldocument.EOFToken:
			return true, true
		case sqldocument.WhitespaceToken:
			if strings.Contains(la.Token(), "\n") {
				return true, true
			}
		default:
			return false, true
		}
	}
}

func isSymbolic(literal string) bool {
	return strings.IndexFunc(literal, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}) == -1
}

func (p *ScriptParser) finishAtDelimiter(st *statement, m delimiterMatch) scanResult {
	res := scanResult{next: m.after}
	if !p.keep(st) {
		return res
	}
	d := m.delimiter
	res.cmd = p.newCommand(st, st.lastEnd, m.after.offset, &d)
	return res
}

func (p *ScriptParser) finishAtBlankLine(st *statement) (scanResult, bool) {
	if !st.hasSignificant {
		switch p.emptyPolicy {
		case EmptyFold:
			return scanResult{}, false
		case EmptyDrop:
			return scanResult{next: st.lastStop}, true
		}
	}
	d := sqldocument.BlankLineDelimiter
	return scanResult{
		cmd:  p.newCommand(st, st.lastEnd, st.lastEnd, &d),
		next: st.lastStop,
	}, true
}

// finishSingleLine ends a statement such as SQL*Plus "set serveroutput on"
// at the end of its line. The line is tokenized on its own so that the
// tester sees the arguments and a stray quote cannot run past the line.
func (p *ScriptParser) finishSingleLine(st *statement, tok sqldocument.Token) (scanResult, bool) {
	rel := tok.Start - st.start.offset
	nl := strings.IndexByte(st.window[rel:], '\n')
	if nl == -1 && !st.complete {
		return scanResult{}, false
	}
	lineEnd := len(st.window)
	if nl != -1 {
		lineEnd = rel + nl
	}
	line := st.window[rel:lineEnd]

	ls := sqldocument.NewTokenScanner(tok.Pos.File, "", p.scanner.Options())
	ls.Reset(line, tok.Start, tok.Pos.Line, tok.Pos.Col)
	ls.NextToken()
	for ls.NextToken() != sqldocument.EOFToken {
		p.tester.OnToken(ls.Current(), false)
	}

	text := strings.TrimRightFunc(line, unicode.IsSpace)
	delimEnd := tok.Start + len(text)
	end := delimEnd
	var delim *sqldocument.Delimiter
	if current := p.tester.CurrentDelimiter(); !current.IsEmpty() && !current.SingleLine {
		if trimmed := current.TrimFrom(text); len(trimmed) < len(text) {
			end = tok.Start + len(trimmed)
			delim = &current
		}
	}

	after := position{offset: delimEnd, line: tok.Pos.Line, col: tok.Pos.Col + len(text)}
	st.note(tok, after)
	st.lastEnd = end
	return scanResult{
		cmd:  p.newCommand(st, end, delimEnd, delim),
		next: after,
	}, true
}

func (p *ScriptParser) finishAtEOF(st *statement) scanResult {
	res := scanResult{
		next: positionAfter(p.scanner),
		end:  true,
	}
	// there is nothing left to fold comments into, so only EmptyDrop
	// loses a trailing comment-only fragment
	if st.hasContent && (st.hasSignificant || p.emptyPolicy != EmptyDrop) {
		res.cmd = p.newCommand(st, st.lastEnd, st.lastEnd, nil)
	}
	return res
}

// keep applies the empty statement policy to a statement ended by a
// delimiter.
func (p *ScriptParser) keep(st *statement) bool {
	if st.hasSignificant {
		return true
	}
	return st.hasContent && p.emptyPolicy == EmptyKeep
}

func (p *ScriptParser) newCommand(st *statement, end, delimiterEnd int, d *sqldocument.Delimiter) *Command {
	cmd := &Command{
		WhitespaceStart: st.start.offset,
		StartOffset:     st.contentStart,
		EndOffset:       end,
		DelimiterEnd:    delimiterEnd,
		Delimiter:       d,
		StartPos:        st.contentPos,
		Errors:          st.errors,
	}
	if p.returnLeadingWhitespace || !st.hasContent {
		cmd.StartOffset = st.start.offset
		cmd.StartPos = st.start.pos(sqldocument.FileRef(p.source.path))
	}
	if p.storeText || p.forceStore {
		text := st.text(cmd.StartOffset, end)
		if p.buf.streaming() {
			text = strings.Clone(text)
		}
		cmd.SQL = text
	}
	return cmd
}
