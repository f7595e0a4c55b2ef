package tokenizer

import (
	"strconv"

	"github.com/withastro/htmltokenizer/internal/loc"
)

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// TextToken is a run of content bytes: text between tags, the body of a
	// comment, CDATA section or raw text element, or a quoted attribute value.
	TextToken TokenType = iota
	// CommentStartToken is the "<!--" that opens a comment.
	CommentStartToken
	// CommentEndToken is the "-->" that closes a comment.
	CommentEndToken
	// TagStartToken is the "<" that opens a tag, or the whole "<!DOCTYPE".
	TagStartToken
	// TagNameToken is the "div" in "<div>".
	TagNameToken
	// CDATAStartToken is the "<![CDATA[" that opens a CDATA section.
	CDATAStartToken
	// CDATAEndToken is the "]]>" that closes a CDATA section.
	CDATAEndToken
	WhitespaceToken
	// AttributeNameToken is the "k" in "<div k=v>".
	AttributeNameToken
	// SolidusToken is a "/" in "</a>" or "<br/>".
	SolidusToken
	// EqualToken is the "=" between an attribute name and its value.
	EqualToken
	// TagEndToken is the ">" that closes a tag.
	TagEndToken
	// AttributeValueStartToken is the opening quote of a quoted value.
	AttributeValueStartToken
	// AttributeValueEndToken is the closing quote of a quoted value.
	AttributeValueEndToken
	// AttributeUnquotedValueToken is the "v" in "<div k=v>".
	AttributeUnquotedValueToken
	// MalformedToken covers the rest of the buffer once nothing matches.
	MalformedToken
)

var tokenTypeNames = [...]string{
	TextToken:                   "text",
	CommentStartToken:           "comment_start",
	CommentEndToken:             "comment_end",
	TagStartToken:               "tag_start",
	TagNameToken:                "tag_name",
	CDATAStartToken:             "cdata_start",
	CDATAEndToken:               "cdata_end",
	WhitespaceToken:             "whitespace",
	AttributeNameToken:          "attribute_name",
	SolidusToken:                "solidus",
	EqualToken:                  "equal",
	TagEndToken:                 "tag_end",
	AttributeValueStartToken:    "attribute_value_start",
	AttributeValueEndToken:      "attribute_value_end",
	AttributeUnquotedValueToken: "attribute_unquoted_value",
	MalformedToken:              "malformed",
}

// String returns the snake_case name of the TokenType, e.g. "tag_start".
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// TokenTypes lists every TokenType in declaration order.
func TokenTypes() []TokenType {
	types := make([]TokenType, len(tokenTypeNames))
	for i := range tokenTypeNames {
		types[i] = TokenType(i)
	}
	return types
}

// ParseTokenType returns the TokenType whose String is name.
func ParseTokenType(name string) (TokenType, bool) {
	for i, s := range tokenTypeNames {
		if s == name {
			return TokenType(i), true
		}
	}
	return 0, false
}

// A Token is a TokenType and the span of the scanned buffer it covers.
// Offsets are relative to the buffer passed to the Tokenize call that
// produced the token.
type Token struct {
	Type TokenType
	Loc  loc.Span
}

func (t Token) Len() int {
	return t.Loc.Len()
}

// Bytes returns the slice of buf covered by the token. buf must be the buffer
// the token was produced from.
func (t Token) Bytes(buf []byte) []byte {
	return buf[t.Loc.Start:t.Loc.End]
}

// String returns a representation like "tag_name[1,4)".
func (t Token) String() string {
	return t.Type.String() + "[" + strconv.Itoa(t.Loc.Start) + "," + strconv.Itoa(t.Loc.End) + ")"
}
