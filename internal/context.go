package tokenizer

import (
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/net/html/atom"
)

// A Context is one state of the tokenizer's nested state machine. The active
// context is the top of the context stack.
type Context uint8

const (
	// NoContext marks an unused stack slot.
	NoContext Context = iota
	// HTMLContext is normal content. It is always the bottom of the stack.
	HTMLContext
	// OpenTagContext follows "<" or "</" until the tag name is complete.
	OpenTagContext
	// AttributesContext is inside a tag, between attributes.
	AttributesContext
	AttributeNameContext
	// AttributeValueContext follows "=" until a value has been read.
	AttributeValueContext
	// AttributeStringContext is inside a quoted attribute value.
	AttributeStringContext
	CommentContext
	CDATAContext
	// RCDATAContext, RawTextContext and ScriptDataContext scan the same way:
	// everything is text until the closing tag of the element that opened
	// them. They are kept apart so consumers can tell which element they are
	// in.
	RCDATAContext
	RawTextContext
	ScriptDataContext
	// PlaintextContext never ends.
	PlaintextContext
)

var contextNames = [...]string{
	NoContext:              "none",
	HTMLContext:            "html",
	OpenTagContext:         "open_tag",
	AttributesContext:      "attributes",
	AttributeNameContext:   "attribute_name",
	AttributeValueContext:  "attribute_value",
	AttributeStringContext: "attribute_string",
	CommentContext:         "comment",
	CDATAContext:           "cdata",
	RCDATAContext:          "rcdata",
	RawTextContext:         "rawtext",
	ScriptDataContext:      "script_data",
	PlaintextContext:       "plaintext",
}

func (c Context) String() string {
	if int(c) < len(contextNames) {
		return contextNames[c]
	}
	return "Invalid(" + strconv.Itoa(int(c)) + ")"
}

// IsRaw reports whether c is one of the content modes entered after the
// start tag of a raw text element.
func (c Context) IsRaw() bool {
	switch c {
	case RCDATAContext, RawTextContext, ScriptDataContext, PlaintextContext:
		return true
	}
	return false
}

// DefaultMaxDepth is the context stack capacity used when Options.MaxDepth is
// below 2, too small to hold any context above the root. Well-formed and malformed input alike never nest deeper than five.
const DefaultMaxDepth = 16

var (
	// ErrContextOverflow is returned when a push would exceed the stack capacity.
	ErrContextOverflow = errors.New("context stack overflow")
	// ErrContextUnderflow is returned when a pop would remove the root context.
	ErrContextUnderflow = errors.New("context stack underflow")
)

// contextStack is a fixed-capacity stack of contexts. Slot 0 holds
// HTMLContext and is never popped. starts and calls record the buffer offset
// and the Tokenize run at which each context was entered.
type contextStack struct {
	slots  []Context
	starts []int
	calls  []int
	top    int
}

func newContextStack(capacity int) contextStack {
	if capacity < 2 {
		capacity = DefaultMaxDepth
	}
	s := contextStack{
		slots:  make([]Context, capacity),
		starts: make([]int, capacity),
		calls:  make([]int, capacity),
	}
	s.reset()
	return s
}

func (s *contextStack) reset() {
	for i := range s.slots {
		s.slots[i] = NoContext
		s.starts[i] = 0
		s.calls[i] = 0
	}
	s.top = 0
	s.slots[0] = HTMLContext
}

func (s *contextStack) current() Context {
	return s.slots[s.top]
}

func (s *contextStack) start() int {
	return s.starts[s.top]
}

func (s *contextStack) call() int {
	return s.calls[s.top]
}

func (s *contextStack) depth() int {
	return s.top + 1
}

func (s *contextStack) push(c Context, at, call int) error {
	if s.top+1 >= len(s.slots) {
		return errors.Wrapf(ErrContextOverflow, "cannot enter %s at depth %d", c, s.depth())
	}
	s.top++
	s.slots[s.top] = c
	s.starts[s.top] = at
	s.calls[s.top] = call
	return nil
}

func (s *contextStack) pop() error {
	if s.top == 0 {
		return errors.Wrapf(ErrContextUnderflow, "cannot leave %s", s.current())
	}
	s.slots[s.top] = NoContext
	s.starts[s.top] = 0
	s.calls[s.top] = 0
	s.top--
	return nil
}

// longestContentModeTag is the length of "plaintext", the longest name in
// the content mode table.
const longestContentModeTag = 9

// contentMode returns the context entered after the start tag name, or
// NoContext when the element has normal content. name is matched
// case-insensitively.
func contentMode(name []byte) Context {
	if len(name) == 0 || len(name) > longestContentModeTag {
		return NoContext
	}
	var lower [longestContentModeTag]byte
	for i, c := range name {
		lower[i] = lowerASCII(c)
	}
	switch atom.Lookup(lower[:len(name)]) {
	case atom.Title, atom.Textarea:
		return RCDATAContext
	case atom.Style, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes, atom.Listing:
		return RawTextContext
	case atom.Script:
		return ScriptDataContext
	case atom.Plaintext:
		return PlaintextContext
	}
	return NoContext
}
