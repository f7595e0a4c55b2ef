package printer

import (
	tokenizer "github.com/withastro/htmltokenizer/internal"
)

const (
	ansiReset     = "\x1b[0m"
	ansiDelimiter = "\x1b[36m"
	ansiTagName   = "\x1b[1;34m"
	ansiAttribute = "\x1b[33m"
	ansiValue     = "\x1b[32m"
	ansiComment   = "\x1b[90m"
	ansiCDATA     = "\x1b[35m"
	ansiMalformed = "\x1b[4;31m"
)

// region is the construct a text token belongs to.
type region uint8

const (
	contentRegion region = iota
	valueRegion
	commentRegion
	cdataRegion
)

// PrintToHighlight writes the source with ANSI color escapes around each
// token. Text keeps the color of the comment, CDATA section or quoted
// attribute value it appears in.
func PrintToHighlight(source []byte, tokens []tokenizer.Token, opts Options) PrintResult {
	p := newPrinter(source, opts)
	in := contentRegion
	for _, tok := range tokens {
		color := ""
		switch tok.Type {
		case tokenizer.TagStartToken, tokenizer.TagEndToken, tokenizer.SolidusToken, tokenizer.EqualToken:
			color = ansiDelimiter
		case tokenizer.TagNameToken:
			color = ansiTagName
		case tokenizer.AttributeNameToken:
			color = ansiAttribute
		case tokenizer.AttributeValueStartToken:
			color, in = ansiValue, valueRegion
		case tokenizer.AttributeValueEndToken:
			color, in = ansiValue, contentRegion
		case tokenizer.AttributeUnquotedValueToken:
			color = ansiValue
		case tokenizer.CommentStartToken:
			color, in = ansiComment, commentRegion
		case tokenizer.CommentEndToken:
			// Text after the terminator is still comment text.
			color = ansiComment
		case tokenizer.CDATAStartToken:
			color, in = ansiCDATA, cdataRegion
		case tokenizer.CDATAEndToken:
			color = ansiCDATA
		case tokenizer.MalformedToken:
			color = ansiMalformed
		case tokenizer.TextToken:
			switch in {
			case valueRegion:
				color = ansiValue
			case commentRegion:
				color = ansiComment
			case cdataRegion:
				color = ansiCDATA
			}
		}
		if !p.keep(tok) {
			continue
		}
		if color == "" {
			p.printBytes(p.text(tok))
			continue
		}
		p.print(color)
		p.printBytes(p.text(tok))
		p.print(ansiReset)
	}
	return p.result()
}
