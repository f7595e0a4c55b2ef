package tokenizer

import (
	"bytes"

	"github.com/withastro/htmltokenizer/internal/loc"
)

var (
	commentStart = []byte("<!--")
	commentEnd   = []byte("-->")
	doctypeStart = []byte("<!DOCTYPE")
	cdataStart   = []byte("<![CDATA[")
	cdataEnd     = []byte("]]>")
)

// scanner is the read-only view of the buffer being tokenized. Its methods
// are the classifiers of the state machine: each one tests the bytes at the
// cursor and reports how many of them match, without moving the cursor.
type scanner struct {
	buf    []byte
	cursor int
}

func (s scanner) eos() bool {
	return s.cursor >= len(s.buf)
}

func (s scanner) remaining() int {
	return len(s.buf) - s.cursor
}

func (s scanner) isChar(c byte) bool {
	return s.remaining() >= 1 && s.buf[s.cursor] == c
}

func (s scanner) isQuote() (byte, bool) {
	if s.isChar('\'') || s.isChar('"') {
		return s.buf[s.cursor], true
	}
	return 0, false
}

// run returns the length of the longest run at the cursor whose bytes all
// satisfy accept.
func (s scanner) run(accept func(c byte) bool) (int, bool) {
	n := 0
	for i := s.cursor; i < len(s.buf) && accept(s.buf[i]); i++ {
		n++
	}
	return n, n != 0
}

func (s scanner) isText() (int, bool) {
	return s.run(func(c byte) bool { return c != '<' })
}

func (s scanner) hasPrefix(prefix []byte) bool {
	return s.remaining() >= len(prefix) && bytes.Equal(s.buf[s.cursor:s.cursor+len(prefix)], prefix)
}

func (s scanner) hasPrefixFold(prefix []byte) bool {
	return s.remaining() >= len(prefix) && equalFoldASCII(s.buf[s.cursor:s.cursor+len(prefix)], prefix)
}

func (s scanner) isCommentStart() bool {
	return s.hasPrefix(commentStart)
}

func (s scanner) isDoctype() bool {
	return s.hasPrefixFold(doctypeStart)
}

func (s scanner) isCDATAStart() bool {
	return s.hasPrefixFold(cdataStart)
}

// isTagStart matches "<" or "</" followed by a non-empty tag name made of
// alphanumerics and ':'. length covers the whole match; name is the span of
// the tag name inside the buffer.
func (s scanner) isTagStart() (length int, closing bool, name loc.Span, ok bool) {
	if !s.isChar('<') {
		return 0, false, loc.Span{}, false
	}
	length = 1
	if s.cursor+1 < len(s.buf) && s.buf[s.cursor+1] == '/' {
		closing = true
		length++
	}
	name.Start = s.cursor + length
	name.End = name.Start
	for name.End < len(s.buf) && (isAlnum(s.buf[name.End]) || s.buf[name.End] == ':') {
		name.End++
	}
	length += name.Len()
	return length, closing, name, !name.Empty()
}

func (s scanner) isTagName() (int, bool) {
	return s.run(func(c byte) bool {
		return !isSpace(c) && c != '>' && c != '/'
	})
}

func (s scanner) isWhitespace() (int, bool) {
	return s.run(isSpace)
}

func (s scanner) isAttributeName() (int, bool) {
	return s.run(func(c byte) bool {
		return isAlnum(c) || c == ':' || c == '-' || c == '_' || c == '.'
	})
}

func (s scanner) isUnquotedValue() (int, bool) {
	return s.run(func(c byte) bool {
		return !isSpace(c) && c != '>'
	})
}

func (s scanner) isAttributeString(quote byte) (int, bool) {
	return s.run(func(c byte) bool { return c != quote })
}

// findTerminator reports how many bytes precede the next occurrence of the
// 3-byte terminator. A remainder shorter than the terminator never matches.
func (s scanner) findTerminator(terminator []byte) (int, bool) {
	if s.remaining() < len(terminator) {
		return 0, false
	}
	i := bytes.Index(s.buf[s.cursor:], terminator)
	return i, i >= 0
}

func (s scanner) isCommentEnd() (int, bool) {
	return s.findTerminator(commentEnd)
}

func (s scanner) isCDATAEnd() (int, bool) {
	return s.findTerminator(cdataEnd)
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// equalFoldASCII reports whether a and b are equal under ASCII case folding.
// Bytes outside A-Z are compared exactly.
func equalFoldASCII(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}
