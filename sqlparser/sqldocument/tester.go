package sqldocument

import (
	"slices"
	"strings"
)

// DelimiterTester decides, while a statement is being scanned, which
// delimiter terminates it. One tester instance follows one script; it is
// fed every token of the current statement and told when the statement
// has been emitted.
type DelimiterTester interface {
	// SetDelimiters configures the primary and the alternate (block)
	// delimiter. The alternate may be the zero Delimiter.
	SetDelimiters(primary, alternate Delimiter)

	// OnToken is called for every token of the statement, in order.
	// isStartOfStatement is true for the first significant token.
	OnToken(t Token, isStartOfStatement bool)

	// CurrentDelimiter is the delimiter to test for right now. The zero
	// Delimiter means nothing terminates the statement at this point.
	CurrentDelimiter() Delimiter

	// AlternateAlwaysTerminates reports whether the alternate delimiter
	// ends a statement even when no block is open (SQL*Plus "/", GO).
	AlternateAlwaysTerminates() bool

	// IsSingleLineStatement reports whether a statement starting with t
	// ends at the end of its line without any delimiter.
	IsSingleLineStatement(t Token, isStartOfLine bool) bool

	// StatementFinished resets the per-statement state. If the finished
	// statement changed the primary delimiter for the rest of the script
	// (MySQL's DELIMITER command), the new delimiter is returned.
	StatementFinished() (newPrimary Delimiter, changed bool)
}

// BlockState tracks whether a block-opening construct was seen since the
// last statement boundary.
type BlockState int

const (
	Idle BlockState = iota
	BlockOpen
)

func (b BlockState) String() string {
	if b == BlockOpen {
		return "BlockOpen"
	}
	return "Idle"
}

// Open moves to BlockOpen; it is a no-op when a block is already open.
func (b *BlockState) Open() {
	*b = BlockOpen
}

// Reset moves back to Idle once the statement is finished.
func (b *BlockState) Reset() {
	*b = Idle
}

func (b BlockState) IsOpen() bool {
	return b == BlockOpen
}

// StandardTester always uses the primary delimiter.
type StandardTester struct {
	primary Delimiter

	// IncludeShorthand makes "@file" a single-line statement.
	IncludeShorthand bool
}

var _ DelimiterTester = (*StandardTester)(nil)

func NewStandardTester() *StandardTester {
	return &StandardTester{primary: StandardDelimiter, IncludeShorthand: true}
}

func (s *StandardTester) SetDelimiters(primary, alternate Delimiter) {
	s.primary = primary
}

func (s *StandardTester) OnToken(t Token, isStartOfStatement bool) {}

func (s *StandardTester) CurrentDelimiter() Delimiter {
	return s.primary
}

func (s *StandardTester) AlternateAlwaysTerminates() bool {
	return false
}

func (s *StandardTester) IsSingleLineStatement(t Token, isStartOfLine bool) bool {
	return s.IncludeShorthand && isIncludeShorthand(t)
}

func (s *StandardTester) StatementFinished() (Delimiter, bool) {
	return Delimiter{}, false
}

func isIncludeShorthand(t Token) bool {
	return t.Type == OperatorToken && (t.Text == "@" || t.Text == "@@")
}

// BlockTriggers is the keyword table a BlockTester matches statements
// against. All words are lowercase and use the normalised multi-word form
// produced by the scanner ("create or replace", "package body").
type BlockTriggers struct {
	// FirstWords open a block when they start the statement.
	FirstWords []string
	// CreateVerbs start a statement whose object type decides.
	CreateVerbs []string
	// CreateModifiers may appear between the create verb and the type.
	CreateModifiers []string
	// CreateTypes open a block when they follow a create verb.
	CreateTypes []string
	// WithTypes open a block when they directly follow a leading WITH.
	WithTypes []string
	// SingleLineCommands end at the end of their line without a
	// delimiter when they start a line.
	SingleLineCommands []string
	// UnknownModifierLimit is how many unlisted tokens may sit between the
	// create verb and the type (MySQL's DEFINER=`user`@`host`).
	UnknownModifierLimit int
}

// BlockTester switches to the alternate delimiter while a block opened by
// one of its triggers is being scanned.
type BlockTester struct {
	primary, alternate Delimiter
	state              BlockState

	triggers           BlockTriggers
	includeShorthand   bool
	alternateAlways    bool
	firstWord          string
	significantTokens  int
	skippedModifiers   int
	lookingForTrigger  bool
	singleLineCommands map[string]struct{}
}

var _ DelimiterTester = (*BlockTester)(nil)

type BlockTesterOption func(*BlockTester)

// WithIncludeShorthand makes "@file" a single-line statement.
func WithIncludeShorthand() BlockTesterOption {
	return func(b *BlockTester) { b.includeShorthand = true }
}

// WithAlternateAlwaysTerminates lets the alternate delimiter end any
// statement, not only open blocks.
func WithAlternateAlwaysTerminates() BlockTesterOption {
	return func(b *BlockTester) { b.alternateAlways = true }
}

func NewBlockTester(triggers BlockTriggers, opts ...BlockTesterOption) *BlockTester {
	b := &BlockTester{
		primary:            StandardDelimiter,
		triggers:           triggers,
		singleLineCommands: make(map[string]struct{}, len(triggers.SingleLineCommands)),
	}
	for _, c := range triggers.SingleLineCommands {
		b.singleLineCommands[c] = struct{}{}
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *BlockTester) SetDelimiters(primary, alternate Delimiter) {
	b.primary = primary
	b.alternate = alternate
}

func (b *BlockTester) Primary() Delimiter {
	return b.primary
}

func (b *BlockTester) Alternate() Delimiter {
	return b.alternate
}

func (b *BlockTester) State() BlockState {
	return b.state
}

// FirstWord is the lowercase first significant word of the statement.
func (b *BlockTester) FirstWord() string {
	return b.firstWord
}

// OpenBlock forces the block state; used by dialect testers that detect
// blocks on their own.
func (b *BlockTester) OpenBlock() {
	b.state.Open()
}

func (b *BlockTester) OnToken(t Token, isStartOfStatement bool) {
	if !t.IsSignificant() {
		return
	}
	if isStartOfStatement {
		b.significantTokens = 0
	}
	b.significantTokens++
	word := tokenWord(t)

	if b.significantTokens == 1 {
		b.firstWord = word
		b.lookingForTrigger = false
		b.skippedModifiers = 0
		switch {
		case slices.Contains(b.triggers.FirstWords, word):
			b.state.Open()
		case slices.Contains(b.triggers.CreateVerbs, word), word == "with" && len(b.triggers.WithTypes) > 0:
			b.lookingForTrigger = true
		}
		return
	}
	if !b.lookingForTrigger || b.state.IsOpen() {
		return
	}

	if b.firstWord == "with" {
		if slices.Contains(b.triggers.WithTypes, word) {
			b.state.Open()
		}
		b.lookingForTrigger = false
		return
	}
	if slices.Contains(b.triggers.CreateModifiers, word) {
		return
	}
	if slices.Contains(b.triggers.CreateTypes, word) {
		b.state.Open()
	} else if b.skippedModifiers < b.triggers.UnknownModifierLimit {
		b.skippedModifiers++
		return
	}
	b.lookingForTrigger = false
}

func (b *BlockTester) CurrentDelimiter() Delimiter {
	if b.state.IsOpen() && !b.alternate.IsEmpty() {
		return b.alternate
	}
	return b.primary
}

func (b *BlockTester) AlternateAlwaysTerminates() bool {
	return b.alternateAlways
}

func (b *BlockTester) IsSingleLineStatement(t Token, isStartOfLine bool) bool {
	if b.includeShorthand && isIncludeShorthand(t) {
		return true
	}
	if !isStartOfLine {
		return false
	}
	_, ok := b.singleLineCommands[tokenWord(t)]
	return ok
}

func (b *BlockTester) StatementFinished() (Delimiter, bool) {
	b.state.Reset()
	b.firstWord = ""
	b.significantTokens = 0
	b.skippedModifiers = 0
	b.lookingForTrigger = false
	return Delimiter{}, false
}

// tokenWord is the lowercase word a token stands for; reserved words use
// their normalised form.
func tokenWord(t Token) string {
	if t.Keyword != "" {
		return t.Keyword
	}
	return strings.ToLower(t.Text)
}

// TokenWord exports tokenWord for the dialect testers.
func TokenWord(t Token) string {
	return tokenWord(t)
}
