package sqldocument

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"

	"github.com/vippsas/sqlscript/sqlparser/internal/utils"
)

// LexerOptions selects the dialect-dependent lexical rules. The zero value
// is plain standard SQL.
type LexerOptions struct {
	// BracketIdentifiers makes [Some;Table] a single identifier (SQL Server).
	// Without it [ and ] are separators.
	BracketIdentifiers bool
	// BacktickIdentifiers makes `name` a single identifier (MySQL).
	BacktickIdentifiers bool
	// HashComments adds # as a line comment (MySQL).
	HashComments bool
	// DollarQuoting scans $tag$ ... $tag$ as one string literal (Postgres).
	DollarQuoting bool
	// NestedComments allows /* /* */ */ nesting (Postgres).
	NestedComments bool
	// EscapeStrings scans E'...' with backslash escapes (Postgres).
	EscapeStrings bool
	// CheckEscapedQuotes treats \' inside '...' as an escaped quote.
	CheckEscapedQuotes bool
	// VariablePrefix makes @name a single identifier (SQL Server). Without it
	// @ is an operator, which is what the @file include shorthand relies on.
	VariablePrefix bool
	// AlternativeQuoting scans Oracle q'[...]' literals.
	AlternativeQuoting bool
	// Keywords overrides the reserved-word vocabulary.
	Keywords *KeywordSet
}

type ScannerInput struct {
	input string
	file  FileRef
}

func (si *ScannerInput) SetInput(input []byte) {
	si.input = string(input)
}

func (si *ScannerInput) SetFile(file FileRef) {
	si.file = file
}

// TokenScanner is the maximal-munch lexer shared by all dialects.
type TokenScanner struct {
	ScannerInput
	opts     LexerOptions
	keywords *KeywordSet

	base       int       // offset of input[0] in the complete script
	startIndex int       // Byte index where current token starts
	curIndex   int       // Current byte position in Input
	tokenType  TokenType // Type of the current token

	startLine        int // Line number (0-indexed) where current token starts
	stopLine         int // Line number (0-indexed) where current token ends
	indexAtStartLine int // Byte index at the start of startLine (after newline)
	indexAtStopLine  int // Byte index at the start of stopLine (after newline)

	reservedWord string // Normalised lowercase keyword if the token is a reserved word
}

var _ Scanner = (*TokenScanner)(nil)

// NewTokenScanner creates a scanner positioned before the first token of
// input; call NextToken() to advance.
func NewTokenScanner(file FileRef, input string, opts LexerOptions) *TokenScanner {
	s := &TokenScanner{opts: opts, keywords: opts.Keywords}
	if s.keywords == nil {
		s.keywords = DefaultKeywords
	}
	s.SetFile(file)
	s.input = input
	return s
}

// Options returns the lexical rules in effect.
func (s *TokenScanner) Options() LexerOptions {
	return s.opts
}

// SetCheckEscapedQuotes toggles whether \' escapes a quote inside '...'.
func (s *TokenScanner) SetCheckEscapedQuotes(flag bool) {
	s.opts.CheckEscapedQuotes = flag
}

func (s *TokenScanner) SetInput(input []byte) {
	s.Reset(string(input), 0, 1, 1)
}

func (s *TokenScanner) Reset(input string, offset, line, col int) {
	s.input = input
	s.base = offset
	s.startIndex, s.curIndex = 0, 0
	s.tokenType = 0
	s.startLine, s.stopLine = line-1, line-1
	// a negative index makes the column arithmetic in Start()/Stop() work
	// for an input that does not begin at column 1
	s.indexAtStartLine, s.indexAtStopLine = -(col - 1), -(col - 1)
	s.reservedWord = ""
}

// Clone returns a copy of the scanner at its current position.
// This is used for look-ahead where we need to tentatively
// scan tokens without committing to consuming them.
func (s TokenScanner) Clone() *TokenScanner {
	result := new(TokenScanner)
	*result = s
	return result
}

func (s *TokenScanner) Input() string {
	return s.input
}

// TokenType returns the type of the current token.
func (s *TokenScanner) TokenType() TokenType {
	return s.tokenType
}

// Token returns the text of the current token as a substring of Input.
func (s *TokenScanner) Token() string {
	return s.input[s.startIndex:s.curIndex]
}

// TokenLower returns the current token text converted to lowercase.
func (s *TokenScanner) TokenLower() string {
	return strings.ToLower(s.Token())
}

func (s *TokenScanner) ReservedWord() string {
	return s.reservedWord
}

func (s *TokenScanner) StartOffset() int {
	return s.base + s.startIndex
}

func (s *TokenScanner) StopOffset() int {
	return s.base + s.curIndex
}

// AtEndOfInput is true when the current token reaches the end of the
// buffered input.
func (s *TokenScanner) AtEndOfInput() bool {
	return s.curIndex >= len(s.input)
}

// Start returns the position where the current token begins.
// Line and column are 1-indexed.
func (s *TokenScanner) Start() Pos {
	return Pos{
		Line: s.startLine + 1,
		Col:  s.startIndex - s.indexAtStartLine + 1,
		File: s.file,
	}
}

// Stop returns the position where the current token ends.
// Line and column are 1-indexed.
func (s *TokenScanner) Stop() Pos {
	return Pos{
		Line: s.stopLine + 1,
		Col:  s.curIndex - s.indexAtStopLine + 1,
		File: s.file,
	}
}

func (s *TokenScanner) Current() Token {
	return Token{
		Type:    s.tokenType,
		Text:    s.Token(),
		Start:   s.StartOffset(),
		End:     s.StopOffset(),
		Pos:     s.Start(),
		Keyword: s.reservedWord,
	}
}

// bumpLine increments the line counter and records the byte position
// after the newline character. The offset parameter is the position
// of the newline within the current scan operation.
func (s *TokenScanner) bumpLine(offset int) {
	s.stopLine++
	s.indexAtStopLine = s.curIndex + offset + 1
}

// SkipWhitespaceComments advances past any whitespace and comment tokens.
// Stops when a non-whitespace, non-comment token is encountered.
func (s *TokenScanner) SkipWhitespaceComments() {
	for {
		switch s.TokenType() {
		case WhitespaceToken, BlockCommentToken, LineCommentToken, UnclosedCommentErrorToken:
		default:
			return
		}
		s.NextToken()
	}
}

// SkipWhitespace advances past any whitespace tokens.
// Unlike SkipWhitespaceComments, this preserves comments.
func (s *TokenScanner) SkipWhitespace() {
	for s.TokenType() == WhitespaceToken {
		s.NextToken()
	}
}

// NextNonWhitespaceToken advances to the next token and then skips
// any whitespace, returning the type of the first non-whitespace token.
func (s *TokenScanner) NextNonWhitespaceToken() TokenType {
	s.NextToken()
	s.SkipWhitespace()
	return s.TokenType()
}

// NextNonWhitespaceCommentToken advances to the next token and then skips
// any whitespace and comments, returning the type of the first significant token.
func (s *TokenScanner) NextNonWhitespaceCommentToken() TokenType {
	s.NextToken()
	s.SkipWhitespaceComments()
	return s.TokenType()
}

func (s *TokenScanner) Next(skipWhitespace, skipComments bool) Token {
	for {
		s.NextToken()
		t := s.Current()
		if skipWhitespace && t.IsWhitespace() {
			continue
		}
		if skipComments && t.IsComment() {
			continue
		}
		return t
	}
}

// NextToken scans the next token and advances the scanner's position.
func (s *TokenScanner) NextToken() TokenType {
	s.tokenType = s.nextToken()
	if s.tokenType.isErrorToken() {
		utils.DPrint("error token %s at offset %d: %.20q\n", s.tokenType, s.StartOffset(), s.Token())
	}
	return s.tokenType
}

func (tt TokenType) isErrorToken() bool {
	return tt >= UnclosedStringErrorToken && tt <= GenericErrorToken
}

func (s *TokenScanner) peek(offset int) (rune, int) {
	return utf8.DecodeRuneInString(s.input[s.curIndex+offset:])
}

func (s *TokenScanner) nextToken() TokenType {
	s.startIndex = s.curIndex
	s.reservedWord = ""
	s.startLine = s.stopLine
	s.indexAtStartLine = s.indexAtStopLine
	r, w := s.peek(0)

	// First, decisions that can be made after one character:
	switch {
	case r == utf8.RuneError && w == 0:
		return EOFToken
	case r == utf8.RuneError && w == 1:
		// not UTF-8; skip the byte so the caller can go on
		s.curIndex += w
		return GenericErrorToken
	case unicode.IsSpace(r):
		// do not advance s.curIndex here; scanWhitespace needs to see any \n
		return s.scanWhitespace()
	case r == '(' || r == ')' || r == ',' || r == ';' || r == '*':
		s.curIndex += w
		return SeparatorToken
	case r == '[':
		s.curIndex += w
		if s.opts.BracketIdentifiers {
			return s.scanUntilSingleDoubleEscapes(']', IdentifierToken, UnclosedStringErrorToken)
		}
		return SeparatorToken
	case r == ']':
		s.curIndex += w
		return SeparatorToken
	case r == '\'':
		s.curIndex += w
		return s.scanStringLiteral()
	case r == '"':
		s.curIndex += w
		return s.scanUntilSingleDoubleEscapes('"', IdentifierToken, UnclosedStringErrorToken)
	case r == '`' && s.opts.BacktickIdentifiers:
		s.curIndex += w
		return s.scanUntilSingleDoubleEscapes('`', IdentifierToken, UnclosedStringErrorToken)
	case r == '#' && s.opts.HashComments:
		s.curIndex += w
		return s.scanLineComment()
	case r >= '0' && r <= '9':
		return s.scanNumber()
	}

	// OK, we need to peek 1 character to make a decision
	r2, w2 := s.peek(w)

	switch {
	case r == '-' && r2 == '-':
		s.curIndex += w + w2
		return s.scanLineComment()
	case r == '/' && r2 == '*':
		s.curIndex += w + w2
		return s.scanBlockComment()
	case r == '.' && r2 >= '0' && r2 <= '9':
		return s.scanNumber()
	case r == ':' && r2 != '=' && r2 != ':':
		s.curIndex += w
		return SeparatorToken
	}

	if r == '$' {
		if r2 == '[' || r2 == '{' {
			if tt, ok := s.scanPlaceholder(r2); ok {
				return tt
			}
		}
		if s.opts.DollarQuoting {
			if tt, ok := s.scanDollarQuoted(); ok {
				return tt
			}
		}
	}
	if r2 == '\'' {
		if tt, ok := s.scanPrefixedLiteral(r, w, w2); ok {
			return tt
		}
	}
	if s.isIdentifierStart(r) {
		s.curIndex += w
		s.scanIdentifier()
		return s.classifyIdentifier()
	}
	return s.scanOperator()
}

func (s *TokenScanner) isIdentifierStart(r rune) bool {
	return xid.Start(r) || r == '_' || r == '＿' ||
		(s.opts.VariablePrefix && (r == '@' || r == '#'))
}

// scanIdentifier assumes first character of an identifier has been identified,
// and scans to the end
func (s *TokenScanner) scanIdentifier() {
	s.curIndex = s.identifierEnd(s.curIndex)
}

func (s *TokenScanner) identifierEnd(from int) int {
	for i, r := range s.input[from:] {
		if !s.isIdentifierContinue(r) {
			return from + i
		}
	}
	return len(s.input)
}

func (s *TokenScanner) isIdentifierContinue(r rune) bool {
	switch {
	case xid.Continue(r), r == '$', unicode.Is(unicode.Cf, r):
		return true
	case r == '#':
		return !s.opts.HashComments
	case r == '@':
		return s.opts.VariablePrefix
	}
	return false
}

// classifyIdentifier checks if the current token is a reserved word, and
// if it starts a multi-word keyword, extends the token over the remaining
// words.
func (s *TokenScanner) classifyIdentifier() TokenType {
	word := strings.ToLower(s.Token())
	if strings.HasPrefix(word, "@") || strings.HasPrefix(word, "#") {
		return IdentifierToken
	}
	for _, rest := range s.keywords.continuations(word) {
		if end, ok := s.matchWords(s.curIndex, rest); ok {
			for i, r := range s.input[s.curIndex:end] {
				if r == '\n' {
					s.bumpLine(i)
				}
			}
			s.curIndex = end
			s.reservedWord = word + " " + strings.Join(rest, " ")
			return ReservedWordToken
		}
	}
	if s.keywords.IsReserved(word) {
		s.reservedWord = word
		return ReservedWordToken
	}
	return IdentifierToken
}

// matchWords checks that words follow position pos, each preceded by
// whitespace, and returns the end of the last word.
func (s *TokenScanner) matchWords(pos int, words []string) (int, bool) {
	for _, want := range words {
		wsEnd := pos
		for wsEnd < len(s.input) {
			r, w := utf8.DecodeRuneInString(s.input[wsEnd:])
			if !unicode.IsSpace(r) {
				break
			}
			wsEnd += w
		}
		if wsEnd == pos {
			return 0, false
		}
		end := s.identifierEnd(wsEnd)
		if !strings.EqualFold(s.input[wsEnd:end], want) {
			return 0, false
		}
		pos = end
	}
	return pos, true
}

// scanLineComment assumes one has advanced over -- or #. The trailing \n
// is not part of the token; it becomes whitespace.
func (s *TokenScanner) scanLineComment() TokenType {
	end := strings.IndexByte(s.input[s.curIndex:], '\n')
	if end == -1 {
		s.curIndex = len(s.input)
	} else {
		s.curIndex += end
		// keep a \r belonging to a \r\n line break out of the comment
		if s.curIndex > s.startIndex && s.input[s.curIndex-1] == '\r' {
			s.curIndex--
		}
	}
	return LineCommentToken
}

// scanBlockComment assumes one has advanced over '/*'
func (s *TokenScanner) scanBlockComment() TokenType {
	depth := 1
	text := s.input[s.curIndex:]
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			s.bumpLine(i)
		case '*':
			if i+1 < len(text) && text[i+1] == '/' {
				depth--
				i++
				if depth == 0 || !s.opts.NestedComments {
					s.curIndex += i + 1
					return BlockCommentToken
				}
			}
		case '/':
			if s.opts.NestedComments && i+1 < len(text) && text[i+1] == '*' {
				depth++
				i++
			}
		}
	}
	s.curIndex = len(s.input)
	return UnclosedCommentErrorToken
}

func (s *TokenScanner) scanWhitespace() TokenType {
	for i, r := range s.input[s.curIndex:] {
		if r == '\n' {
			s.bumpLine(i)
		}
		if !unicode.IsSpace(r) {
			s.curIndex += i
			return WhitespaceToken
		}
	}
	// eof
	s.curIndex = len(s.input)
	return WhitespaceToken
}

// scanStringLiteral assumes one has scanned the opening quote
func (s *TokenScanner) scanStringLiteral() TokenType {
	if s.opts.CheckEscapedQuotes {
		return s.scanBackslashString()
	}
	return s.scanUntilSingleDoubleEscapes('\'', StringLiteralToken, UnclosedStringErrorToken)
}

// DRY helper to handle '', "", ]] and `` escapes
func (s *TokenScanner) scanUntilSingleDoubleEscapes(
	endmarker rune,
	tokenType TokenType,
	unterminatedTokenType TokenType,
) TokenType {
	skipnext := false
	for i, r := range s.input[s.curIndex:] {
		if skipnext {
			skipnext = false
			continue
		}
		if r == '\n' {
			s.bumpLine(i)
		}
		if r == endmarker {
			r2, _ := utf8.DecodeRuneInString(s.input[s.curIndex+i+1:]) // r2 may be RuneError if eof
			if r2 == endmarker {
				// we have a double endmarker; this is used as escape
				skipnext = true
			} else {
				s.curIndex += i + 1
				return tokenType
			}
		}
	}
	s.curIndex = len(s.input)
	return unterminatedTokenType
}

// scanBackslashString scans a '...' literal where both '' and \' escape a
// quote.
func (s *TokenScanner) scanBackslashString() TokenType {
	text := s.input[s.curIndex:]
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			s.bumpLine(i)
		case '\\':
			if i+1 < len(text) && text[i+1] == '\n' {
				s.bumpLine(i + 1)
			}
			i++
		case '\'':
			if i+1 < len(text) && text[i+1] == '\'' {
				i++
				continue
			}
			s.curIndex += i + 1
			return StringLiteralToken
		}
	}
	s.curIndex = len(s.input)
	return UnclosedStringErrorToken
}

// scanPrefixedLiteral handles a letter directly followed by a quote:
// B'0101', N'text', X'1F', E'te\'xt' and Oracle q'[text]'.
func (s *TokenScanner) scanPrefixedLiteral(r rune, w, w2 int) (TokenType, bool) {
	switch unicode.ToLower(r) {
	case 'b':
		s.curIndex += w + w2
		return s.scanBitString(), true
	case 'n', 'x':
		s.curIndex += w + w2
		return s.scanStringLiteral(), true
	case 'e':
		if !s.opts.EscapeStrings {
			return 0, false
		}
		s.curIndex += w + w2
		saved := s.opts.CheckEscapedQuotes
		s.opts.CheckEscapedQuotes = true
		tt := s.scanStringLiteral()
		s.opts.CheckEscapedQuotes = saved
		return tt, true
	case 'q':
		if !s.opts.AlternativeQuoting {
			return 0, false
		}
		return s.scanAlternativeQuote(w + w2)
	}
	return 0, false
}

// scanBitString assumes one has advanced over B'
func (s *TokenScanner) scanBitString() TokenType {
	valid := true
	for i, r := range s.input[s.curIndex:] {
		switch r {
		case '\'':
			s.curIndex += i + 1
			if !valid {
				return BadBitStringErrorToken
			}
			return BitStringLiteralToken
		case '0', '1':
		case '\n':
			s.bumpLine(i)
			valid = false
		default:
			valid = false
		}
	}
	s.curIndex = len(s.input)
	return UnclosedBitStringErrorToken
}

var closingQuoteChar = map[rune]rune{'[': ']', '(': ')', '{': '}', '<': '>'}

// scanAlternativeQuote scans q'<c>...<c>' where an opening bracket is
// closed by its counterpart. prefix is the width of q'.
func (s *TokenScanner) scanAlternativeQuote(prefix int) (TokenType, bool) {
	open, w := s.peek(prefix)
	if open == utf8.RuneError || unicode.IsSpace(open) {
		return 0, false
	}
	closing, ok := closingQuoteChar[open]
	if !ok {
		closing = open
	}
	s.curIndex += prefix + w
	end := string(closing) + "'"
	idx := strings.Index(s.input[s.curIndex:], end)
	if idx == -1 {
		s.bumpLines(s.input[s.curIndex:])
		s.curIndex = len(s.input)
		return UnclosedStringErrorToken, true
	}
	s.bumpLines(s.input[s.curIndex : s.curIndex+idx])
	s.curIndex += idx + len(end)
	return StringLiteralToken, true
}

func (s *TokenScanner) bumpLines(text string) {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.bumpLine(i)
		}
	}
}

// scanPlaceholder scans $[name] or ${name}; the $ has not been consumed.
func (s *TokenScanner) scanPlaceholder(open rune) (TokenType, bool) {
	closing := ']'
	if open == '{' {
		closing = '}'
	}
	rest := s.input[s.curIndex+2:]
	for i, r := range rest {
		if r == closing {
			if i == 0 {
				return 0, false
			}
			s.curIndex += 2 + i + 1
			return VariablePlaceholderToken, true
		}
		if unicode.IsSpace(r) || r == ';' {
			return 0, false
		}
	}
	return 0, false
}

// scanDollarQuoted scans $tag$ ... $tag$; the $ has not been consumed.
// A $ that does not open a tag is left to the operator scanner, and $1 style
// positional parameters become identifiers.
func (s *TokenScanner) scanDollarQuoted() (TokenType, bool) {
	rest := s.input[s.curIndex+1:]
	if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		end := 1
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		s.curIndex += 1 + end
		return IdentifierToken, true
	}
	tagEnd := -1
	for i, r := range rest {
		if r == '$' {
			tagEnd = i
			break
		}
		if !(xid.Continue(r) || r == '_') || (i == 0 && r >= '0' && r <= '9') {
			return 0, false
		}
	}
	if tagEnd == -1 {
		return 0, false
	}
	endTag := "$" + rest[:tagEnd] + "$"
	s.curIndex += len(endTag)

	idx := strings.Index(s.input[s.curIndex:], endTag)
	if idx == -1 {
		s.bumpLines(s.input[s.curIndex:])
		s.curIndex = len(s.input)
		return UnclosedStringErrorToken, true
	}
	s.bumpLines(s.input[s.curIndex : s.curIndex+idx])
	s.curIndex += idx + len(endTag)
	return StringLiteralToken, true
}

var numberRegexp = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

func (s *TokenScanner) scanNumber() TokenType {
	loc := numberRegexp.FindStringSubmatchIndex(s.input[s.curIndex:])
	if len(loc) == 0 {
		panic("should always have a match according to regex and conditions in caller")
	}
	text := s.input[s.curIndex : s.curIndex+loc[1]]
	s.curIndex += loc[1]
	if strings.ContainsAny(text, ".eE") {
		return FloatLiteralToken
	}
	return IntegerLiteralToken
}

// longest first within each leading character
var multiCharOperators = []string{
	"->>", "<=>", "<>", "<=", ">=", "!=", "||", ":=", "::", "=>", "->", "**", "<<", ">>",
	"^=", "~=", "!~", "~*", "&&", "@>", "<@",
}

func (s *TokenScanner) scanOperator() TokenType {
	rest := s.input[s.curIndex:]
	for _, op := range multiCharOperators {
		if strings.HasPrefix(rest, op) {
			s.curIndex += len(op)
			return OperatorToken
		}
	}
	_, w := utf8.DecodeRuneInString(rest)
	s.curIndex += w
	return OperatorToken
}
