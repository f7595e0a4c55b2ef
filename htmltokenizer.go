// Package htmltokenizer splits HTML into a flat stream of lexical tokens.
//
// The tokenizer walks a simplified subset of the HTML5 tokenization
// algorithm in a single pass. It reports tag delimiters, tag names,
// attribute fragments, text runs, comments and CDATA sections as byte
// spans of the input, without decoding character references or building a
// tree. Input it cannot scan ends the stream with one MalformedToken that
// covers the rest of the buffer.
package htmltokenizer

import (
	tokenizer "github.com/withastro/htmltokenizer/internal"
	"github.com/withastro/htmltokenizer/internal/handler"
)

type (
	Tokenizer = tokenizer.Tokenizer
	Options   = tokenizer.Options
	Token     = tokenizer.Token
	TokenType = tokenizer.TokenType
	Context   = tokenizer.Context
	Handler   = handler.Handler
)

const (
	TextToken                   = tokenizer.TextToken
	CommentStartToken           = tokenizer.CommentStartToken
	CommentEndToken             = tokenizer.CommentEndToken
	TagStartToken               = tokenizer.TagStartToken
	TagNameToken                = tokenizer.TagNameToken
	CDATAStartToken             = tokenizer.CDATAStartToken
	CDATAEndToken               = tokenizer.CDATAEndToken
	WhitespaceToken             = tokenizer.WhitespaceToken
	AttributeNameToken          = tokenizer.AttributeNameToken
	SolidusToken                = tokenizer.SolidusToken
	EqualToken                  = tokenizer.EqualToken
	TagEndToken                 = tokenizer.TagEndToken
	AttributeValueStartToken    = tokenizer.AttributeValueStartToken
	AttributeValueEndToken      = tokenizer.AttributeValueEndToken
	AttributeUnquotedValueToken = tokenizer.AttributeUnquotedValueToken
	MalformedToken              = tokenizer.MalformedToken
)

const (
	HTMLContext            = tokenizer.HTMLContext
	OpenTagContext         = tokenizer.OpenTagContext
	AttributesContext      = tokenizer.AttributesContext
	AttributeNameContext   = tokenizer.AttributeNameContext
	AttributeValueContext  = tokenizer.AttributeValueContext
	AttributeStringContext = tokenizer.AttributeStringContext
	CommentContext         = tokenizer.CommentContext
	CDATAContext           = tokenizer.CDATAContext
	RCDATAContext          = tokenizer.RCDATAContext
	RawTextContext         = tokenizer.RawTextContext
	ScriptDataContext      = tokenizer.ScriptDataContext
	PlaintextContext       = tokenizer.PlaintextContext
)

const DefaultMaxDepth = tokenizer.DefaultMaxDepth

var (
	ErrContextOverflow  = tokenizer.ErrContextOverflow
	ErrContextUnderflow = tokenizer.ErrContextUnderflow
	ErrTagNameTooLong   = tokenizer.ErrTagNameTooLong
	ErrReentrant        = tokenizer.ErrReentrant
)

// NewTokenizer returns a Tokenizer in normal content.
func NewTokenizer() *Tokenizer {
	return tokenizer.NewTokenizer()
}

func NewTokenizerWithOptions(opts Options) *Tokenizer {
	return tokenizer.NewTokenizerWithOptions(opts)
}

// NewTokenizerFragment returns a Tokenizer for the inner HTML of a
// contextTag element.
func NewTokenizerFragment(contextTag string) *Tokenizer {
	return tokenizer.NewTokenizerFragment(contextTag)
}

// NewHandler returns a diagnostics collector for source. Set it as
// Options.Handler to receive warnings about malformed input.
func NewHandler(source string, filename string) *Handler {
	return handler.NewHandler(source, filename)
}

// Tokenize scans buf with a new Tokenizer and returns its tokens.
func Tokenize(buf []byte) ([]Token, error) {
	return tokenizer.Tokenize(buf)
}

// ParseTokenType returns the token type named name, such as "tag_start".
func ParseTokenType(name string) (TokenType, bool) {
	return tokenizer.ParseTokenType(name)
}

// TokenTypes returns every token type in declaration order.
func TokenTypes() []TokenType {
	return tokenizer.TokenTypes()
}
