package sqldocument

import (
	"strings"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	EOFToken TokenType = iota + 1

	ReservedWordToken
	IdentifierToken
	OperatorToken
	// SeparatorToken is one of ( ) [ ] , ; * :
	SeparatorToken

	IntegerLiteralToken
	FloatLiteralToken
	StringLiteralToken
	BitStringLiteralToken

	LineCommentToken
	BlockCommentToken
	WhitespaceToken

	// VariablePlaceholderToken is a $[name] or ${name} substitution
	// placeholder. It is scanned as one token so that a delimiter character
	// adjacent to it can never split a statement.
	VariablePlaceholderToken

	// Error tokens cover the rest of the input they could not make sense
	// of. They are never fatal; the parser keeps going with them.
	UnclosedStringErrorToken
	UnclosedCommentErrorToken
	UnclosedBitStringErrorToken
	BadBitStringErrorToken
	GenericErrorToken

	lastToken
)

func (tt TokenType) GoString() string {
	return tokenToDescription[tt]
}

func (tt TokenType) String() string {
	return tokenToDescription[tt]
}

func init() {
	// make sure we panic if a description isn't declared
	for tt := TokenType(1); tt != lastToken; tt++ {
		if tokenToDescription[tt] == "" {
			panic("you have not updated tokenToDescription")
		}
	}
}

var tokenToDescription = map[TokenType]string{
	EOFToken: "EOFToken",

	ReservedWordToken: "ReservedWordToken",
	IdentifierToken:   "IdentifierToken",
	OperatorToken:     "OperatorToken",
	SeparatorToken:    "SeparatorToken",

	IntegerLiteralToken:   "IntegerLiteralToken",
	FloatLiteralToken:     "FloatLiteralToken",
	StringLiteralToken:    "StringLiteralToken",
	BitStringLiteralToken: "BitStringLiteralToken",

	LineCommentToken:  "LineCommentToken",
	BlockCommentToken: "BlockCommentToken",
	WhitespaceToken:   "WhitespaceToken",

	VariablePlaceholderToken: "VariablePlaceholderToken",

	UnclosedStringErrorToken:    "UnclosedStringErrorToken",
	UnclosedCommentErrorToken:   "UnclosedCommentErrorToken",
	UnclosedBitStringErrorToken: "UnclosedBitStringErrorToken",
	BadBitStringErrorToken:      "BadBitStringErrorToken",
	GenericErrorToken:           "GenericErrorToken",
}

// Token is an immutable snapshot of one scanned token.
//
// Start and End are byte offsets into the complete script, half-open, so
// that script[Start:End] == Text.
type Token struct {
	Type  TokenType
	Text  string
	Start int
	End   int
	Pos   Pos

	// Keyword is the lowercase, single-space normalised form of a
	// reserved word ("create or replace"); empty for other tokens.
	Keyword string
}

func (t Token) IsWhitespace() bool {
	return t.Type == WhitespaceToken
}

// IsComment is true for comments, including an unterminated block comment.
func (t Token) IsComment() bool {
	switch t.Type {
	case LineCommentToken, BlockCommentToken, UnclosedCommentErrorToken:
		return true
	}
	return false
}

func (t Token) IsIdentifier() bool {
	return t.Type == IdentifierToken
}

func (t Token) IsLiteral() bool {
	switch t.Type {
	case IntegerLiteralToken, FloatLiteralToken, StringLiteralToken, BitStringLiteralToken:
		return true
	}
	return false
}

func (t Token) IsOperator() bool {
	return t.Type == OperatorToken
}

func (t Token) IsSeparator() bool {
	return t.Type == SeparatorToken
}

func (t Token) IsReservedWord() bool {
	return t.Type == ReservedWordToken
}

func (t Token) IsError() bool {
	switch t.Type {
	case UnclosedStringErrorToken, UnclosedCommentErrorToken, UnclosedBitStringErrorToken,
		BadBitStringErrorToken, GenericErrorToken:
		return true
	}
	return false
}

func (t Token) IsEOF() bool {
	return t.Type == EOFToken
}

// IsSignificant is false for whitespace and comments, which never take part
// in keyword detection. Optimizer hints (/*+ ... */, --+ ...) are comments
// and therefore not significant either.
func (t Token) IsSignificant() bool {
	return !t.IsWhitespace() && !t.IsComment() && !t.IsEOF()
}

// Contents returns the upper-cased keyword for reserved words and the
// verbatim text for everything else.
func (t Token) Contents() string {
	if t.Keyword != "" {
		return strings.ToUpper(t.Keyword)
	}
	return t.Text
}

// Is compares the token case-insensitively against a keyword or word,
// e.g. t.Is("create or replace").
func (t Token) Is(word string) bool {
	if t.Keyword != "" {
		return strings.EqualFold(t.Keyword, word)
	}
	return strings.EqualFold(t.Text, word)
}

// NewlineCount returns the number of line breaks in the token text.
func (t Token) NewlineCount() int {
	return strings.Count(t.Text, "\n")
}
