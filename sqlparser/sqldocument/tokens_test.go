package sqldocument

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScannerInput_SetInput(t *testing.T) {
	si := &ScannerInput{}
	si.SetInput([]byte("SELECT * FROM table"))
	assert.Equal(t, "SELECT * FROM table", si.input)
}

func TestScannerInput_SetFile(t *testing.T) {
	si := &ScannerInput{}
	si.SetFile(FileRef("test.sql"))
	assert.Equal(t, FileRef("test.sql"), si.file)
}

func TestTokenScanner_Token(t *testing.T) {
	ts := &TokenScanner{}
	ts.input = "SELECT * FROM table"
	ts.startIndex = 0
	ts.curIndex = 6

	assert.Equal(t, "SELECT", ts.Token())
	assert.Equal(t, "select", ts.TokenLower())
}

func TestTokenScanner_Offsets(t *testing.T) {
	ts := &TokenScanner{}
	ts.input = "SELECT * FROM table"
	ts.base = 100
	ts.startIndex = 7
	ts.curIndex = 8

	assert.Equal(t, 107, ts.StartOffset())
	assert.Equal(t, 108, ts.StopOffset())
	assert.False(t, ts.AtEndOfInput())

	ts.curIndex = len(ts.input)
	assert.True(t, ts.AtEndOfInput())
}

func TestTokenScanner_Start(t *testing.T) {
	ts := &TokenScanner{}
	ts.file = FileRef("test.sql")
	ts.startLine = 2         // 0-indexed
	ts.startIndex = 15       // byte position
	ts.indexAtStartLine = 10 // byte position at start of line

	pos := ts.Start()

	assert.Equal(t, 3, pos.Line) // 1-indexed
	assert.Equal(t, 6, pos.Col)  // 15 - 10 + 1 = 6
	assert.Equal(t, FileRef("test.sql"), pos.File)
}

func TestTokenScanner_Stop(t *testing.T) {
	ts := &TokenScanner{}
	ts.file = FileRef("test.sql")
	ts.stopLine = 3         // 0-indexed
	ts.curIndex = 25        // byte position
	ts.indexAtStopLine = 20 // byte position at start of line

	pos := ts.Stop()

	assert.Equal(t, 4, pos.Line) // 1-indexed
	assert.Equal(t, 6, pos.Col)  // 25 - 20 + 1 = 6
	assert.Equal(t, FileRef("test.sql"), pos.File)
}

func TestTokenScanner_BumpLine(t *testing.T) {
	ts := &TokenScanner{}
	ts.curIndex = 10
	ts.stopLine = 0

	ts.bumpLine(5)

	assert.Equal(t, 1, ts.stopLine)
	assert.Equal(t, 16, ts.indexAtStopLine) // 10 + 5 + 1 = 16
}

func TestTokenScanner_Reset(t *testing.T) {
	ts := NewTokenScanner("test.sql", "", LexerOptions{})
	ts.Reset("select", 40, 3, 7)
	ts.NextToken()

	assert.Equal(t, Pos{File: "test.sql", Line: 3, Col: 7}, ts.Start())
	assert.Equal(t, Pos{File: "test.sql", Line: 3, Col: 13}, ts.Stop())
	assert.Equal(t, 40, ts.StartOffset())
	assert.Equal(t, 46, ts.StopOffset())
}

func TestTokenScanner_ScanBlockComment(t *testing.T) {
	t.Run("simple comment", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "/* comment */"
		ts.curIndex = 2 // after /*

		tokenType := ts.scanBlockComment()

		assert.Equal(t, BlockCommentToken, tokenType)
		assert.Equal(t, len(ts.input), ts.curIndex)
	})

	t.Run("multiline comment with newlines", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "/* line1\nline2\nline3 */"
		ts.curIndex = 2

		tokenType := ts.scanBlockComment()

		assert.Equal(t, BlockCommentToken, tokenType)
		assert.Equal(t, 2, ts.stopLine) // Two newlines
	})

	t.Run("unterminated comment", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "/* unterminated"
		ts.curIndex = 2

		tokenType := ts.scanBlockComment()

		assert.Equal(t, UnclosedCommentErrorToken, tokenType)
		assert.Equal(t, len(ts.input), ts.curIndex)
	})

	t.Run("nesting is off by default", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "/* a /* b */ c */"
		ts.curIndex = 2

		tokenType := ts.scanBlockComment()

		assert.Equal(t, BlockCommentToken, tokenType)
		assert.Equal(t, 12, ts.curIndex)
	})

	t.Run("nested", func(t *testing.T) {
		ts := &TokenScanner{opts: LexerOptions{NestedComments: true}}
		ts.input = "/* a /* b */ c */"
		ts.curIndex = 2

		tokenType := ts.scanBlockComment()

		assert.Equal(t, BlockCommentToken, tokenType)
		assert.Equal(t, len(ts.input), ts.curIndex)
	})
}

func TestTokenScanner_ScanLineComment(t *testing.T) {
	t.Run("regular comment", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "-- this is a comment\nSELECT"
		ts.curIndex = 2 // after --

		tokenType := ts.scanLineComment()

		assert.Equal(t, LineCommentToken, tokenType)
		assert.Equal(t, 20, ts.curIndex) // before newline
	})

	t.Run("crlf", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "-- comment\r\nSELECT"
		ts.curIndex = 2

		ts.scanLineComment()

		assert.Equal(t, 10, ts.curIndex)
	})

	t.Run("comment at end of file", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "-- comment at EOF"
		ts.curIndex = 2

		tokenType := ts.scanLineComment()

		assert.Equal(t, LineCommentToken, tokenType)
		assert.Equal(t, len(ts.input), ts.curIndex)
	})
}

func TestTokenScanner_ScanWhitespace(t *testing.T) {
	t.Run("spaces and tabs", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "   \t  SELECT"
		ts.curIndex = 0

		tokenType := ts.scanWhitespace()

		assert.Equal(t, WhitespaceToken, tokenType)
		assert.Equal(t, 6, ts.curIndex) // before 'S'
	})

	t.Run("with newlines", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "  \n  \n  SELECT"
		ts.curIndex = 0

		tokenType := ts.scanWhitespace()

		assert.Equal(t, WhitespaceToken, tokenType)
		assert.Equal(t, 2, ts.stopLine) // Two newlines
	})

	t.Run("only whitespace", func(t *testing.T) {
		ts := &TokenScanner{}
		ts.input = "   \t  \n"
		ts.curIndex = 0

		tokenType := ts.scanWhitespace()

		assert.Equal(t, WhitespaceToken, tokenType)
		assert.Equal(t, len(ts.input), ts.curIndex)
	})
}

func TestTokenScanner_SkipWhitespaceComments(t *testing.T) {
	ts := NewTokenScanner("test.sql", "  -- c\n /* d */ SELECT", LexerOptions{})
	ts.NextToken()

	ts.SkipWhitespaceComments()

	assert.Equal(t, ReservedWordToken, ts.TokenType())
	assert.Equal(t, "select", ts.ReservedWord())
}

func TestTokenScanner_NextNonWhitespaceToken(t *testing.T) {
	ts := NewTokenScanner("test.sql", "a  \n -- c\nb", LexerOptions{})
	ts.NextToken()

	assert.Equal(t, LineCommentToken, ts.NextNonWhitespaceToken())
	assert.Equal(t, IdentifierToken, ts.NextNonWhitespaceCommentToken())
	assert.Equal(t, "b", ts.Token())
	assert.Equal(t, EOFToken, ts.NextNonWhitespaceCommentToken())
}

func TestTokenScanner_Next(t *testing.T) {
	ts := NewTokenScanner("test.sql", "select /* c */ 1", LexerOptions{})

	assert.Equal(t, "select", ts.Next(true, true).Text)
	assert.Equal(t, "/* c */", ts.Next(true, false).Text)
	assert.Equal(t, " ", ts.Next(false, false).Text)
	assert.Equal(t, Token{
		Type:  IntegerLiteralToken,
		Text:  "1",
		Start: 15,
		End:   16,
		Pos:   Pos{File: "test.sql", Line: 1, Col: 16},
	}, ts.Next(true, true))
	assert.True(t, ts.Next(true, true).IsEOF())
}

func TestToken_Predicates(t *testing.T) {
	kw := Token{Type: ReservedWordToken, Text: "Create  Or\nReplace", Keyword: "create or replace"}
	assert.True(t, kw.IsReservedWord())
	assert.True(t, kw.IsSignificant())
	assert.True(t, kw.Is("CREATE OR REPLACE"))
	assert.Equal(t, "CREATE OR REPLACE", kw.Contents())
	assert.Equal(t, 1, kw.NewlineCount())

	ident := Token{Type: IdentifierToken, Text: "MyTable"}
	assert.True(t, ident.Is("mytable"))
	assert.Equal(t, "MyTable", ident.Contents())

	unclosed := Token{Type: UnclosedCommentErrorToken, Text: "/* x"}
	assert.True(t, unclosed.IsComment())
	assert.True(t, unclosed.IsError())
	assert.False(t, unclosed.IsSignificant())

	assert.True(t, Token{Type: BitStringLiteralToken}.IsLiteral())
	assert.False(t, Token{Type: WhitespaceToken}.IsSignificant())
	assert.Equal(t, "UnclosedStringErrorToken", UnclosedStringErrorToken.String())
}
