package sqlparser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const defaultChunkSize = 64 * 1024

// scriptSource describes where the script text comes from. It is opened
// once per iteration session.
type scriptSource struct {
	text     string
	path     string
	encoding encoding.Encoding
	reader   io.Reader
}

func (s scriptSource) name() string {
	switch {
	case s.path != "":
		return s.path
	case s.reader != nil:
		return "<reader>"
	}
	return "<script>"
}

func (s scriptSource) inMemory() bool {
	return s.path == "" && s.reader == nil
}

// lookupEncoding resolves an IANA encoding name; "" is UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// open starts reading the source. The returned closer is nil for sources
// the parser does not own.
func (s scriptSource) open(chunkSize int) (*scriptBuffer, io.Closer, error) {
	switch {
	case s.path != "":
		f, err := os.Open(s.path)
		if err != nil {
			return nil, nil, err
		}
		// BOMOverride drops a byte order mark and honours it over the
		// configured encoding
		decoder := unicode.BOMOverride(s.encoding.NewDecoder())
		return newReaderBuffer(transform.NewReader(f, decoder), chunkSize), f, nil
	case s.reader != nil:
		return newReaderBuffer(s.reader, chunkSize), nil, nil
	}
	return newStringBuffer(s.text), nil, nil
}

// scriptBuffer is the window of script text the parser works on. For an
// in-memory script it holds everything. For a reader it holds the text from
// the start of the pending statement to what has been read so far; more()
// appends to it and discard() drops emitted statements.
type scriptBuffer struct {
	text string
	base int // offset of text[0] in the complete script

	reader    io.Reader
	pending   []byte // incomplete UTF-8 sequence held back from the last read
	eof       bool
	chunkSize int
}

func newStringBuffer(s string) *scriptBuffer {
	return &scriptBuffer{text: s, eof: true}
}

func newReaderBuffer(r io.Reader, chunkSize int) *scriptBuffer {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &scriptBuffer{reader: r, chunkSize: chunkSize}
}

func (b *scriptBuffer) streaming() bool {
	return b.reader != nil
}

// complete is true once the whole script is in the buffer.
func (b *scriptBuffer) complete() bool {
	return b.eof
}

func (b *scriptBuffer) end() int {
	return b.base + len(b.text)
}

// from returns the buffered text starting at offset.
func (b *scriptBuffer) from(offset int) string {
	return b.text[offset-b.base:]
}

func (b *scriptBuffer) discard(offset int) {
	if !b.streaming() || offset <= b.base {
		return
	}
	b.text = b.text[offset-b.base:]
	b.base = offset
}

// more reads at least min bytes, or up to the end of the input.
func (b *scriptBuffer) more(min int) error {
	if b.eof {
		return nil
	}
	want := max(b.chunkSize, min)
	buf := make([]byte, len(b.pending)+want)
	copy(buf, b.pending)
	n, err := io.ReadFull(b.reader, buf[len(b.pending):])
	buf = buf[:len(b.pending)+n]
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		b.eof = true
	default:
		return err
	}

	keep := 0
	if !b.eof {
		keep = incompleteRuneSuffix(buf)
	}
	b.pending = append(b.pending[:0], buf[len(buf)-keep:]...)
	b.text += string(buf[:len(buf)-keep])
	return nil
}

// incompleteRuneSuffix returns the length of a UTF-8 sequence cut off at
// the end of buf.
func incompleteRuneSuffix(buf []byte) int {
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
		if utf8.RuneStart(buf[i]) {
			if utf8.FullRune(buf[i:]) {
				return 0
			}
			return len(buf) - i
		}
	}
	return 0
}
