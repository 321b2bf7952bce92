package sqldocument

// Scanner defines the interface for lexical scanning of SQL source code.
//
// The scanner is a cursor into the input buffer: NextToken() advances and
// the accessors describe the token under the cursor. All dialects share the
// TokenScanner implementation and differ only in their LexerOptions.
type Scanner interface {
	// TokenType returns the type of the current token.
	TokenType() TokenType

	// Token returns the text of the current token.
	Token() string

	// TokenLower returns the current token text converted to lowercase.
	TokenLower() string

	// ReservedWord returns the normalised lowercase reserved word if the
	// current token is a ReservedWordToken, or an empty string otherwise.
	ReservedWord() string

	// Start returns the position where the current token begins.
	Start() Pos

	// Stop returns the position where the current token ends.
	Stop() Pos

	// StartOffset and StopOffset return the byte offsets of the current
	// token in the complete script.
	StartOffset() int
	StopOffset() int

	// Current returns a snapshot of the current token.
	Current() Token

	// NextToken scans the next token and advances the scanner's position.
	NextToken() TokenType

	// Next advances and returns the next token, optionally skipping
	// whitespace and/or comment tokens.
	Next(skipWhitespace, skipComments bool) Token

	// NextNonWhitespaceToken advances to the next non-whitespace token.
	NextNonWhitespaceToken() TokenType

	// NextNonWhitespaceCommentToken advances to the next significant token.
	NextNonWhitespaceCommentToken() TokenType

	// SkipWhitespace advances past any whitespace tokens.
	SkipWhitespace()

	// SkipWhitespaceComments advances past any whitespace and comment tokens.
	SkipWhitespaceComments()

	// Reset restarts scanning of input. offset, line and col describe where
	// input[0] sits in the complete script (line and col are 1-indexed).
	Reset(input string, offset, line, col int)

	// Set the scanner's input to the given byte slice.
	SetInput([]byte)

	// Set the scanner's input file reference.
	SetFile(FileRef)
}
